package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DecodeJSON decodes a request body into dst, rejecting unknown fields and
// trailing garbage. Declared fields are type-checked by the decoder, so a
// wrong-typed field is a validation error, not a silent coercion.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty: %w", ErrValidation)
		}
		return fmt.Errorf("invalid request payload: %s: %w", err.Error(), ErrValidation)
	}

	// A second value in the body means the payload was not a single object.
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object: %w", ErrValidation)
	}
	return nil
}
