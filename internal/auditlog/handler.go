package auditlog

import (
	"net/http"

	"assetconsole/pkg/auditlog"
	"assetconsole/pkg/models"
	"assetconsole/pkg/security"

	"github.com/gin-gonic/gin"
)

type SerialLogReader interface {
	GetSerialLog(serial string) ([]models.AuditLog, error)
}

type AuditLogHandler struct {
	repository SerialLogReader
}

func NewAuditLogHandler(repository SerialLogReader) *AuditLogHandler {
	return &AuditLogHandler{repository: repository}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("/binding/audit")
	protectedRoutes.Use(security.JWTMiddleware())
	protectedRoutes.GET("/:serial", h.GetSerialLog)
}

// GetSerialLog lists the recorded bindings of one serial. More than one
// confirm or duplicate entry means the serial was issued twice.
func (h *AuditLogHandler) GetSerialLog(c *gin.Context) {
	serial := c.Param("serial")

	logs, err := h.repository.GetSerialLog(serial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audit log", "details": err.Error()})
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	duplicated := false
	for _, entry := range logs {
		if entry.Action == auditlog.ActionDuplicate {
			duplicated = true
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{"serialNo": serial, "entries": logs, "duplicated": duplicated})
}
