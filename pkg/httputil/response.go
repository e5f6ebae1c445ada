package httputil

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Content types written by the API.
const (
	ContentTypeJSON = "application/json"
	ContentTypeSVG  = "image/svg+xml"
)

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// StatusFor returns the HTTP status that corresponds to err.
func StatusFor(err error) int {
	if errs.IsValidation(err) {
		return http.StatusBadRequest
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeNotFound, errs.ErrCodeLayoutNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorBody]. Errors without a code are
// reported as INTERNAL_ERROR and their text is not exposed.
func WriteError(w http.ResponseWriter, err error) {
	body := ErrorBody{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if body.Code == "" {
		body.Code = errs.ErrCodeInternal
		body.Message = "internal error"
	}
	WriteJSON(w, StatusFor(err), body)
}

// WriteBytes writes a pre-rendered body with the given content type.
func WriteBytes(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
