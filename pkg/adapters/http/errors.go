package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/strumyk/internal/compiler"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/schema"
)

var (
	// ErrUnsupported is reported with 501 when the server lacks a loader or a store.
	ErrUnsupported = errors.New("not supported by this server")
	// ErrMissingNet is returned when a request carries neither a document nor a name.
	ErrMissingNet = errors.New("either document or name is required")
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var decodeErr *compiler.DecodeError
	var aggr *schema.AggregateError
	switch {
	case errors.Is(err, domain.ErrNetNotFound), errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRunConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStructural), errors.Is(err, ErrMissingNet),
		errors.As(err, &decodeErr), errors.As(err, &aggr):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// errorBody flattens the typed errors into the JSON error shape.
func errorBody(err error) *ErrorResponse {
	body := &ErrorResponse{Message: err.Error()}

	var se *domain.SoundnessError
	var st *domain.StructuralError
	var rc *domain.InvalidRunConfigurationError
	switch {
	case errors.As(err, &se):
		body.Kind = string(se.Kind)
		body.IDs = se.IDs
	case errors.As(err, &st):
		body.Kind = "structural"
		for _, issue := range st.Issues {
			body.Issues = append(body.Issues, issue.String())
		}
	case errors.As(err, &rc):
		body.Kind = "invalid_run_configuration"
		body.Field = rc.Field
	}
	for _, v := range schema.ValidationErrors(err) {
		body.Issues = append(body.Issues, v.Error())
	}
	return body
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Warn(op+" rejected", "error", err, "status", status)
	}
	writeJSON(w, status, errorBody(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
