package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/peervault/peervault/internal/shared/errors"
	pkgapi "github.com/peervault/peervault/pkg/api"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// WriteSuccess writes a successful response envelope.
func WriteSuccess[T any](w http.ResponseWriter, status int, data T) {
	WriteJSON(w, status, pkgapi.Response[T]{
		Success: true,
		Data:    &data,
	})
}

// WriteErrorResponse maps an error to an HTTP status and writes the
// error envelope. Domain errors carry their stable code through to the
// client; anything else becomes an opaque internal error.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetRequestID(r.Context())

	code := apperrors.ErrCodeInternal
	message := "internal server error"
	var metadata map[string]any

	var de apperrors.DomainError
	if errors.As(err, &de) {
		code = de.Code()
		message = de.Error()
		metadata = de.Metadata()
	}

	WriteJSON(w, statusForCode(code), pkgapi.Response[any]{
		Success: false,
		Error: &pkgapi.ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Metadata:  metadata,
		},
	})
}

func statusForCode(code string) int {
	switch code {
	case apperrors.ErrCodePeerNotFound, apperrors.ErrCodeGroupNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodePeerConflict, apperrors.ErrCodePeerKeyConflict, apperrors.ErrCodeGroupConflict:
		return http.StatusConflict
	case apperrors.ErrCodePeerValidation, apperrors.ErrCodeGroupValidation,
		apperrors.ErrCodeValidation, apperrors.ErrCodeBundleInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
