package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSON decodes a JSON document onto v in strict mode: unknown fields and
// trailing data are rejected. The payload is expected to be syntactically
// valid already; syntax checking of the raw request body happens earlier in
// the pipeline.
func JSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty body", ErrJSONBinding)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrJSONBinding)
		}
		return fmt.Errorf("%w: %v", ErrJSONBinding, err)
	}

	// No trailing data after the document.
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON document", ErrJSONBinding)
	}

	return nil
}
