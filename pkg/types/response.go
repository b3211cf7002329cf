package types

import "encoding/json"

// SuccessEnvelope is the `{data, message?, success}` shape every storefront endpoint returns.
type SuccessEnvelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// RawEnvelope defers decoding of data until the caller knows the payload type.
type RawEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Success bool            `json:"success"`
}

// HasData reports whether the envelope carried a non-null data member.
func (e RawEnvelope) HasData() bool {
	trimmed := string(e.Data)
	return trimmed != "" && trimmed != "null"
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Error   APIError `json:"error"`
}
