package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResp is the JSON error envelope returned by the assistant API.
type ErrorResp struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	errCodeBadRequest = "BAD_REQUEST"
	errCodeConflict   = "CONFLICT"
	errCodeInternal   = "INTERNAL"
)

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, code, message string) {
	statusCode := http.StatusInternalServerError
	switch code {
	case errCodeBadRequest:
		statusCode = http.StatusBadRequest
	case errCodeConflict:
		statusCode = http.StatusConflict
	}
	respondJSON(w, statusCode, ErrorResp{Error: ErrorDetail{Code: code, Message: message}})
}
