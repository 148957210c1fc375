// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorBody is the JSON shape for every non-2xx response.
// It mirrors the { "message": ... } envelope the clients already consume.
type errorBody struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a { "message": msg } body with the given status code.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Message: msg})
}

// WriteValidation writes a 400 with a human-readable validation message.
// Validation failures are never retried; the caller must fix the request.
func WriteValidation(w http.ResponseWriter, msg string) {
	WriteMessage(w, http.StatusBadRequest, msg)
}

// WriteUnauthorized writes a 401.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteMessage(w, http.StatusUnauthorized, "authentication required")
}

// WriteForbidden writes a 403.
func WriteForbidden(w http.ResponseWriter) {
	WriteMessage(w, http.StatusForbidden, "you don't have permission to do that")
}

// WriteNotFound writes a 404 with a resource-specific message.
func WriteNotFound(w http.ResponseWriter, msg string) {
	WriteMessage(w, http.StatusNotFound, msg)
}

// ErrorLogger logs internal failures and writes the corresponding 500
// response. Handlers hold one so the public message and the logged detail
// stay separate: clients get a generic message, operators get the error.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the given zap logger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// LogServerError logs the failure with request context and writes a 500
// with the public message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, publicMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	WriteMessage(w, http.StatusInternalServerError, publicMsg)
}
