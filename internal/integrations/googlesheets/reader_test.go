package googlesheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func newTestReader(t *testing.T, handler http.HandlerFunc) *Reader {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	return NewReaderWithService(service, zap.NewNop())
}

func TestValuesToRows(t *testing.T) {
	rows := ValuesToRows([][]interface{}{
		{"AssetName", "SerialNo"},
		{" Laptop ", nil, 12},
	})

	assert.Equal(t, [][]string{
		{"AssetName", "SerialNo"},
		{"Laptop", "", "12"},
	}, rows)
}

func TestReadRows(t *testing.T) {
	reader := newTestReader(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "/spreadsheets/sheet-1/values/"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"A1:D2","majorDimension":"ROWS","values":[["AssetName","SerialNo","RFIDNo","QRCode"],["Laptop","SYS-LAP-0001","E200",""]]}`))
	})

	rows, err := reader.ReadRows(context.Background(), "sheet-1", "A1:D2")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SYS-LAP-0001", rows[1][1])
}

func TestReadRowsEmptyRange(t *testing.T) {
	reader := newTestReader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"A1:D2","majorDimension":"ROWS"}`))
	})

	rows, err := reader.ReadRows(context.Background(), "sheet-1", "A1:D2")
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestReadRowsError(t *testing.T) {
	reader := newTestReader(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	})

	_, err := reader.ReadRows(context.Background(), "missing", "A1:D2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read spreadsheet")
}
