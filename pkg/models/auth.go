package models

import "encoding/json"

type LoginRequest struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}

// LoginResult mirrors the backend login answer; a missing token means rejected credentials.
type LoginResult struct {
	Token           string          `json:"token,omitempty"`
	ResponseMessage string          `json:"responseMessage,omitempty"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// Operator is the authenticated console user carried in the session token.
type Operator struct {
	Username     string
	BackendToken string
}
