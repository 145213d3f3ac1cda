package response

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"planets-catalog/internal/shared/errors"
)

const maxBodyBytes = 1 << 20

// ErrorResponse represents the JSON error response sent to clients
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// Error logs an error and sends a JSON error response to the client.
// Handlers must not log the same error again.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	statusCode := StatusCode(errorType)

	logError(logger, r, err, errorType, statusCode)

	message := err.Error()
	if errorType == errors.ErrorTypeInternal {
		message = "internal server error"
	}

	sendErrorResponse(w, errorType, message, statusCode)
}

// StatusCode maps error types to HTTP status codes
func StatusCode(errorType errors.ErrorType) int {
	switch errorType {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	case errors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrorTypeForbidden:
		return http.StatusForbidden
	case errors.ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrorTypeUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case errors.ErrorTypeExternal:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(logger *slog.Logger, r *http.Request, err error, errorType errors.ErrorType, statusCode int) {
	logCtx := logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"request_id", r.Header.Get("X-Request-ID"),
		"error_type", errorType,
		"status_code", statusCode,
	)

	switch errorType {
	case errors.ErrorTypeNotFound, errors.ErrorTypeValidation, errors.ErrorTypeMethodNotAllowed, errors.ErrorTypeUnsupportedMediaType:
		logCtx.Debug("Client error", "error", err)
	case errors.ErrorTypeUnauthorized, errors.ErrorTypeForbidden, errors.ErrorTypeRateLimited:
		logCtx.Warn("Authorization error", "error", err)
	case errors.ErrorTypeConflict:
		logCtx.Info("Conflict error", "error", err)
	case errors.ErrorTypeExternal:
		logCtx.Error("External service error", "error", err)
	default:
		logCtx.Error("Internal server error", "error", err)
	}
}

func sendErrorResponse(w http.ResponseWriter, errorType errors.ErrorType, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:     string(errorType),
		Message:   message,
		Code:      statusCode,
		RequestID: w.Header().Get("X-Request-ID"),
	}

	// status code is already written; nothing left to report to
	_ = json.NewEncoder(w).Encode(resp)
}

// Success sends a JSON success response to the client. The body is encoded
// before the status is written so an unencodable value becomes a 500.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	var body []byte
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			slog.Error("Failed to encode response", "component", "response", "error", err)
			sendErrorResponse(w, errors.ErrorTypeInternal, "internal server error", http.StatusInternalServerError)
			return
		}
		body = append(encoded, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		// status code is already written; nothing left to report to
		_, _ = w.Write(body)
	}
}

// NoContent sends an empty 204 response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON reads a size-limited application/json body holding exactly one
// value into dst, rejecting unknown fields. Requiring the JSON media type
// keeps simple cross-site form posts from reaching write handlers.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return errors.UnsupportedMediaType("request body must be application/json")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.WrapValidation("invalid JSON in request body", err)
	}
	if decoder.Decode(&struct{}{}) != io.EOF {
		return errors.Validation("request body must contain a single JSON value")
	}
	return nil
}
