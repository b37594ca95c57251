package server

import (
	"net/http"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusCode maps an error to the HTTP status it is reported with.
func StatusCode(err error) int {
	switch code := errors.GetCode(err); {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeDegenerateGeometry, code == errors.ErrCodeNotConverged:
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	id := GetRequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "err", err)
	} else {
		s.logger.Debug("request rejected", "id", id, "status", status, "err", err)
	}

	body := errorBody{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: id,
	}
	if status == http.StatusInternalServerError && body.Code == "" {
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}
