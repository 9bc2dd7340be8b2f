package delivery_http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err, "path", r.URL.Path)
	}
}

// RespondWithDetail writes a detail-keyed error body, the shape used for
// auth failures, missing resources and forbidden operations.
func RespondWithDetail(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, map[string]string{"detail": message})
}

// RespondWithField writes a field-keyed validation error body, pointing
// the client at the offending request field.
func RespondWithField(w http.ResponseWriter, r *http.Request, status int, field, message string) {
	RespondWithJSON(w, r, status, map[string]string{field: message})
}

// DecodeJSON decodes a request body into dest, rejecting unknown shapes
// with a plain error the handler can map to a 400.
func DecodeJSON(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}

// firstInvalidField maps a validator error to the lowercased name of the
// first failing field so responses can be keyed the way clients expect.
func firstInvalidField(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", false
	}
	field := verrs[0].Field()
	if len(field) > 0 {
		field = string(field[0]|0x20) + field[1:]
	}
	return field, true
}
