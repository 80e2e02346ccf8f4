package tagging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/metadata"
	"assetconsole/pkg/models"
	"assetconsole/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router  *gin.Engine
	backend *MockBackend
	token   string
}

func setupRouter(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, security.Configure("test-secret"))

	token, err := security.GenerateJWT(models.Operator{Username: "ops", BackendToken: "backend-token"})
	require.NoError(t, err)

	backend := new(MockBackend)
	service, _ := setupService(backend)
	router := gin.New()
	NewBindingHandler(service, NewRegistry(time.Minute, zap.NewNop())).RegisterRoutes(router)

	return &testServer{router: router, backend: backend, token: token}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createSession(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/binding/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	return snapshot.ID
}

type sessionResponse struct {
	Session Snapshot `json:"session"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Field   string   `json:"field"`
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBindingFlowOverHTTP(t *testing.T) {
	server := setupRouter(t)
	expectCatalog(server.backend)
	server.backend.On("ListTags", mock.Anything).Return(models.TagHistory{
		monitorTag("SYS-MON-0001", metadata.StatusConfirmed),
		monitorTag("SYS-MON-0002", metadata.StatusConfirmed),
	}, nil).Once()

	id := server.createSession(t)

	w := server.do(t, http.MethodPut, "/binding/sessions/"+id+"/asset", `{"assetName":"Monitor"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSession(t, w)
	assert.Equal(t, "SYS-MON-0003", resp.Session.Draft.SerialNumber)
	assert.Equal(t, 1, resp.Session.Remaining)

	w = server.do(t, http.MethodPatch, "/binding/sessions/"+id+"/draft", `{"rfidValue":"E200341201"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "E200341201", decodeSession(t, w).Session.Draft.RFIDValue)

	server.backend.On("ConfirmTag", mock.Anything, mock.Anything).Return(&models.ConfirmResult{Success: true}, nil).Once()
	server.backend.On("ListTags", mock.Anything).Return(models.TagHistory{
		monitorTag("SYS-MON-0001", metadata.StatusConfirmed),
		monitorTag("SYS-MON-0002", metadata.StatusConfirmed),
		monitorTag("SYS-MON-0003", metadata.StatusConfirmed),
	}, nil).Once()

	w = server.do(t, http.MethodPost, "/binding/sessions/"+id+"/confirm", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeSession(t, w)
	assert.Equal(t, "All bindings completed!", resp.Message)
	assert.Equal(t, StateIdle, resp.Session.State)

	w = server.do(t, http.MethodDelete, "/binding/sessions/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = server.do(t, http.MethodGet, "/binding/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectNothingToBindOverHTTP(t *testing.T) {
	server := setupRouter(t)
	expectCatalog(server.backend)
	server.backend.On("ListTags", mock.Anything).Return(models.TagHistory{
		monitorTag("SYS-MON-0001", metadata.StatusConfirmed),
		monitorTag("SYS-MON-0002", metadata.StatusConfirmed),
		monitorTag("SYS-MON-0003", metadata.StatusConfirmed),
	}, nil).Once()

	id := server.createSession(t)
	w := server.do(t, http.MethodPut, "/binding/sessions/"+id+"/asset", `{"assetName":"Monitor"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSession(t, w)
	assert.Equal(t, custom_error.ErrNothingToBind.Error(), resp.Message)
	assert.Equal(t, StateIdle, resp.Session.State)
}

func TestHandlerErrorMapping(t *testing.T) {
	server := setupRouter(t)
	id := server.createSession(t)

	w := server.do(t, http.MethodPost, "/binding/sessions/"+id+"/confirm", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	server.backend.On("ListReceivedLineItems", mock.Anything).
		Return(nil, &custom_error.BackendError{Op: "list received line items", Status: 500, Message: "down"}).Once()
	w = server.do(t, http.MethodPut, "/binding/sessions/"+id+"/asset", `{"assetName":"Monitor"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	server.backend.On("ListReceivedLineItems", mock.Anything).Return(lineItems(), nil).Once()
	w = server.do(t, http.MethodPut, "/binding/sessions/"+id+"/asset", `{"assetName":"Keyboard"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "assetName", decodeSession(t, w).Field)

	w = server.do(t, http.MethodPatch, "/binding/sessions/"+id+"/draft", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = server.do(t, http.MethodGet, "/binding/sessions/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionsRequireToken(t *testing.T) {
	server := setupRouter(t)
	server.token = ""

	w := server.do(t, http.MethodPost, "/binding/sessions", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionsAreScopedToOperator(t *testing.T) {
	server := setupRouter(t)
	id := server.createSession(t)

	other, err := security.GenerateJWT(models.Operator{Username: "someone-else"})
	require.NoError(t, err)
	server.token = other

	w := server.do(t, http.MethodGet, "/binding/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSelectableAssetsOverHTTP(t *testing.T) {
	server := setupRouter(t)
	server.backend.On("ListReceivedLineItems", mock.Anything).Return(lineItems(), nil).Once()

	w := server.do(t, http.MethodGet, "/binding/assets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"assets":["Monitor","Laptop"]}`, w.Body.String())
}

func TestVerifyTagCodeOverHTTP(t *testing.T) {
	server := setupRouter(t)
	server.token = ""

	code := metadata.EncodeTagCode("SYS-MON-0003")
	w := server.do(t, http.MethodGet, "/tags/verify?code="+url.QueryEscape(code), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"serialNo":"SYS-MON-0003"`)

	w = server.do(t, http.MethodGet, "/tags/verify?code="+url.QueryEscape("QR-***"), "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
