package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	custom_error "assetconsole/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	tagListPath    = "/RFIDBinding/AssetTaggingList"
	bindPath       = "/RFIDBinding/BindRFID"
	uploadPath     = "/RFIDBinding/UploadAssetExcel"
	assetListPath  = "/Asset/AssetList"
	grnListPath    = "/GRN/GRNList"
	loginPath      = "/Login/Login"
	defaultTimeout = 30 * time.Second
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the asset management REST backend. It holds no state
// besides the HTTP connection pool.
type Client struct {
	rest   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		rest:   rest,
		logger: logger,
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rest.R().SetContext(ctx)
	if token, ok := TokenFromContext(ctx); ok {
		req.SetAuthToken(token)
	}
	return req
}

// checkResponse turns transport failures and non 2xx answers into a BackendError.
func (c *Client) checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Warn("backend call failed", zap.String("op", op), zap.Error(err))
		return &custom_error.BackendError{Op: op, Err: err}
	}

	if resp.IsError() {
		message := errorMessage(resp.Body())
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		c.logger.Warn("backend call rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode()),
			zap.String("message", message),
		)
		return &custom_error.BackendError{Op: op, Status: resp.StatusCode(), Message: message}
	}

	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Message         string `json:"message"`
		ResponseMessage string `json:"responseMessage"`
		Error           string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	switch {
	case payload.Message != "":
		return payload.Message
	case payload.ResponseMessage != "":
		return payload.ResponseMessage
	default:
		return payload.Error
	}
}

func getList[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	resp, err := c.request(ctx).Get(path)
	if err := c.checkResponse(op, resp, err); err != nil {
		return nil, err
	}

	envelope, err := decodeList[T](resp.Body())
	if err != nil {
		return nil, &custom_error.BackendError{Op: op, Status: resp.StatusCode(), Message: err.Error(), Err: err}
	}

	c.logger.Debug("backend list fetched",
		zap.String("op", op),
		zap.Stringer("shape", envelope.Kind),
		zap.Int("count", len(envelope.Items)),
	)

	return envelope.Items, nil
}
