package tagimport

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/security"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RowSource reads raw rows from a remote spreadsheet.
type RowSource interface {
	ReadRows(ctx context.Context, spreadsheetID string, readRange string) ([][]string, error)
}

type ImportHandler struct {
	importer *Importer
	sheets   RowSource
}

// NewImportHandler registers the Google Sheets route only when sheets is not nil.
func NewImportHandler(importer *Importer, sheets RowSource) *ImportHandler {
	return &ImportHandler{importer: importer, sheets: sheets}
}

func (h *ImportHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("/tags/import")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/template", h.DownloadTemplate)
		protectedRoutes.POST("", h.ImportWorkbook)
		if h.sheets != nil {
			protectedRoutes.POST("/sheets", h.ImportSheet)
		}
	}
}

func (h *ImportHandler) DownloadTemplate(c *gin.Context) {
	buf, err := BuildTemplate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build template", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+TemplateName+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ImportHandler) ImportWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file", "details": err.Error()})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .xlsx files are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read file", "details": err.Error()})
		return
	}
	defer file.Close()

	values, err := ReadWorkbook(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workbook", "details": err.Error()})
		return
	}

	h.runImport(c, values)
}

func (h *ImportHandler) ImportSheet(c *gin.Context) {
	var req struct {
		SpreadsheetID string `json:"spreadsheetId" binding:"required"`
		Range         string `json:"range"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	if req.Range == "" {
		req.Range = "A1:D"
	}

	values, err := h.sheets.ReadRows(c.Request.Context(), req.SpreadsheetID, req.Range)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Cannot read spreadsheet", "details": err.Error()})
		return
	}

	h.runImport(c, values)
}

func (h *ImportHandler) runImport(c *gin.Context, values [][]string) {
	operator := security.OperatorFromContext(c).Username

	report, err := h.importer.Import(c.Request.Context(), operator, values)
	if err == nil {
		c.JSON(http.StatusOK, report)
		return
	}

	var validationErr *custom_error.ValidationError
	var backendErr *custom_error.BackendError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Message, "field": validationErr.Field, "report": report})
	case errors.As(err, &backendErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "details": backendErr.Message, "report": report})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed", "details": err.Error()})
	}
}
