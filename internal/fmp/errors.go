package fmp

import (
	"encoding/json"
	"fmt"
)

// UpstreamError is returned when FMP answers with a non-2xx status.
// It preserves the upstream status code and body verbatim.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	// FMP error payloads look like {"Error Message": "..."}
	var errResp struct {
		Message string `json:"Error Message"`
	}
	if json.Unmarshal(e.Body, &errResp) == nil && errResp.Message != "" {
		return fmt.Sprintf("fmp returned %d: %s", e.StatusCode, errResp.Message)
	}
	return fmt.Sprintf("fmp returned %d: %s", e.StatusCode, string(e.Body))
}

// UnavailableError is returned when the request never produced an FMP
// response: connection failures, timeouts, and cancelled contexts.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("fmp unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
