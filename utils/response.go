package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

// FieldError is one entry of a validation failure list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "error": msg})
}

func RespondWithFieldErrors(w http.ResponseWriter, errs []FieldError) {
	RespondWithJSON(w, http.StatusBadRequest, M{"success": false, "errors": errs})
}

// RespondServerError hides internal detail from the caller.
func RespondServerError(w http.ResponseWriter) {
	RespondWithError(w, http.StatusInternalServerError, "Server Error")
}
