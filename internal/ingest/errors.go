package ingest

import (
	"errors"
	"fmt"
)

// ValidationError reports the first missing required field of a single-posting
// payload. The message is the user-facing wire error.
type ValidationError struct{ Field string }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Campo obrigatório ausente: %s", e.Field)
}

// IsValidation reports whether err is a client-side validation failure
// (mapped to HTTP 400 by the handler), unwrapping as needed.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
