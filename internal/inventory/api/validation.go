package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/peervault/peervault/internal/shared/errors"
)

// maxBodySize caps request bodies at 8 MiB. Import bundles are the
// largest payload this service accepts.
const maxBodySize = 8 << 20

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field errors into one DomainError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ToDomainError converts field errors into a validation DomainError
// with the offending fields attached as metadata.
func (v ValidationErrors) ToDomainError() error {
	de := apperrors.NewBaseError("api", apperrors.ErrCodeValidation, v.Error(), false, nil)
	var out apperrors.DomainError = de
	for _, e := range v {
		out = out.WithMetadata(e.Field, e.Message)
	}
	return out
}

// ParseJSONRequest decodes and bounds a JSON request body.
func ParseJSONRequest(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return apperrors.NewBaseError("api", apperrors.ErrCodeValidation, "failed to read request body", false, err)
	}
	if len(body) == 0 {
		return apperrors.NewBaseError("api", apperrors.ErrCodeValidation, "request body is empty", false, nil)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewBaseError("api", apperrors.ErrCodeValidation, "invalid JSON in request body", false, err)
	}
	return nil
}

// ReadBody reads a raw request body with the same size bound.
func ReadBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, apperrors.NewBundleError(apperrors.ErrCodeBundleInvalid, "failed to read request body", err)
	}
	return body, nil
}
