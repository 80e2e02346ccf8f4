package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/models"
)

const invalidCredentials = "Invalid username or password"

// Login checks operator credentials against the backend. The backend may answer
// 200 with only a responseMessage when the credentials are wrong.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	const op = "login"

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Username: username, Password: password}).
		Post(loginPath)
	if err := c.checkResponse(op, resp, err); err != nil {
		return nil, err
	}

	var result models.LoginResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &custom_error.BackendError{Op: op, Status: resp.StatusCode(), Message: "unreadable login response", Err: err}
	}

	if result.Token == "" || strings.Contains(strings.ToLower(result.ResponseMessage), "invalid") {
		message := result.ResponseMessage
		if message == "" {
			message = invalidCredentials
		}
		return nil, &custom_error.BackendError{Op: op, Status: http.StatusUnauthorized, Message: message}
	}

	return &result, nil
}
