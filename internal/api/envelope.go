package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion identifies the envelope wire format so clients can detect
// incompatible changes.
const envelopeVersion = 1

// Envelope is the wire wrapper around every JSON response body.
type Envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps response bodies in the versioned envelope.
// Error bodies keep their code and details at the top level so clients don't
// have to unwrap nested structures.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 0
	}
	success := code < 400

	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Details: apiErr.Details,
		}, nil
	}

	return &Envelope{
		V:       envelopeVersion,
		Success: success,
		Data:    v,
	}, nil
}
