package backend

import (
	"context"
	"encoding/json"
	"io"

	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/models"

	"go.uber.org/zap"
)

func (c *Client) ListTags(ctx context.Context) (models.TagHistory, error) {
	tags, err := getList[models.Tag](ctx, c, "list tags", tagListPath)
	if err != nil {
		return nil, err
	}
	return models.TagHistory(tags), nil
}

func (c *Client) ConfirmTag(ctx context.Context, payload models.TagDraftPayload) (*models.ConfirmResult, error) {
	const op = "confirm tag"

	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(bindPath)
	if err := c.checkResponse(op, resp, err); err != nil {
		return nil, err
	}

	result, rejected := confirmOutcome(resp.Body())
	if rejected {
		message := result.Message
		if message == "" {
			message = "Failed to confirm binding"
		}
		return result, &custom_error.BackendError{Op: op, Status: resp.StatusCode(), Message: message}
	}

	c.logger.Info("tag confirmed",
		zap.String("asset_name", payload.AssetName),
		zap.String("serial", payload.SerialNumber),
	)

	return result, nil
}

// confirmOutcome reads a 2xx BindRFID body. Only an explicit "success": false
// is a rejection; empty, plain text or message-only bodies mean the tag was stored.
func confirmOutcome(body []byte) (*models.ConfirmResult, bool) {
	var decoded struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &decoded); err != nil {
		return &models.ConfirmResult{Success: true}, false
	}

	result := &models.ConfirmResult{Success: true, Message: decoded.Message}
	if decoded.Success != nil && !*decoded.Success {
		result.Success = false
		return result, true
	}

	return result, false
}

// BulkImportTags uploads a tagging spreadsheet as multipart field "file".
func (c *Client) BulkImportTags(ctx context.Context, filename string, file io.Reader) (*models.ImportResult, error) {
	const op = "bulk import tags"

	resp, err := c.request(ctx).
		SetFileReader("file", filename, file).
		Post(uploadPath)
	if err := c.checkResponse(op, resp, err); err != nil {
		return nil, err
	}

	var result models.ImportResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &custom_error.BackendError{Op: op, Status: resp.StatusCode(), Message: "unreadable import response", Err: err}
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = "Failed to upload Excel file"
		}
		return &result, &custom_error.BackendError{Op: op, Status: resp.StatusCode(), Message: message}
	}

	return &result, nil
}
