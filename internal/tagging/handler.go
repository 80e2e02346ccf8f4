package tagging

import (
	"errors"
	"net/http"

	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/security"

	"github.com/gin-gonic/gin"
)

type BindingHandler struct {
	service  *BindingService
	registry *Registry
}

func NewBindingHandler(service *BindingService, registry *Registry) *BindingHandler {
	return &BindingHandler{
		service:  service,
		registry: registry,
	}
}

func (h *BindingHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/tags/verify", h.VerifyTagCode)

	protectedRoutes := router.Group("/binding")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/assets", h.GetSelectableAssets)
		protectedRoutes.POST("/sessions", h.CreateSession)
		protectedRoutes.GET("/sessions/:id", h.GetSession)
		protectedRoutes.PUT("/sessions/:id/asset", h.SelectAsset)
		protectedRoutes.PATCH("/sessions/:id/draft", h.EditDraft)
		protectedRoutes.POST("/sessions/:id/confirm", h.ConfirmBinding)
		protectedRoutes.DELETE("/sessions/:id", h.CloseSession)
	}
}

func (h *BindingHandler) GetSelectableAssets(c *gin.Context) {
	assets, err := h.service.SelectableAssets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

func (h *BindingHandler) CreateSession(c *gin.Context) {
	session := h.registry.Create(security.OperatorFromContext(c).Username)

	c.JSON(http.StatusCreated, session.Snapshot())
}

func (h *BindingHandler) GetSession(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *BindingHandler) SelectAsset(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req struct {
		AssetName string `json:"assetName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	snapshot, err := h.service.Select(c.Request.Context(), session, req.AssetName)
	if errors.Is(err, custom_error.ErrNothingToBind) {
		c.JSON(http.StatusOK, gin.H{"session": snapshot, "message": err.Error()})
		return
	}
	if err != nil {
		respondErrorWithSession(c, err, snapshot)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": snapshot})
}

func (h *BindingHandler) EditDraft(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var changes DraftChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	snapshot, err := h.service.Edit(session, changes)
	if err != nil {
		respondErrorWithSession(c, err, snapshot)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": snapshot})
}

func (h *BindingHandler) ConfirmBinding(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	snapshot, err := h.service.Confirm(c.Request.Context(), session)
	if err != nil {
		respondErrorWithSession(c, err, snapshot)
		return
	}

	message := "RFID Binding confirmed successfully!"
	if snapshot.Completed {
		message = "All bindings completed!"
	}

	c.JSON(http.StatusOK, gin.H{"session": snapshot, "message": message})
}

func (h *BindingHandler) CloseSession(c *gin.Context) {
	err := h.registry.Delete(c.Param("id"), security.OperatorFromContext(c).Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Binding session closed"})
}

func (h *BindingHandler) VerifyTagCode(c *gin.Context) {
	code := c.Query("code")

	serial, err := h.service.Verify(code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"qrCode": code, "serialNo": serial})
}

func (h *BindingHandler) lookup(c *gin.Context) (*Session, bool) {
	session, err := h.registry.Get(c.Param("id"), security.OperatorFromContext(c).Username)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return session, true
}

func respondError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.AbortWithStatusJSON(status, body)
}

func respondErrorWithSession(c *gin.Context, err error, snapshot Snapshot) {
	status, body := errorBody(err)
	body["session"] = snapshot
	c.AbortWithStatusJSON(status, body)
}

func errorBody(err error) (int, gin.H) {
	var validationErr *custom_error.ValidationError
	var decodeErr *custom_error.DecodeError
	var backendErr *custom_error.BackendError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, gin.H{"error": validationErr.Message, "field": validationErr.Field}
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity, gin.H{"error": "Tag code is not verifiable", "details": decodeErr.Error()}
	case errors.As(err, &backendErr):
		return http.StatusBadGateway, gin.H{"error": err.Error(), "details": backendErr.Message}
	case errors.Is(err, custom_error.ErrSessionNotFound):
		return http.StatusNotFound, gin.H{"error": err.Error()}
	case errors.Is(err, custom_error.ErrConfirmInFlight), errors.Is(err, custom_error.ErrInvalidState):
		return http.StatusConflict, gin.H{"error": err.Error()}
	default:
		return http.StatusInternalServerError, gin.H{"error": "Unexpected error", "details": err.Error()}
	}
}
