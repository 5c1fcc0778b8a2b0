package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// decodeArguments decodes a tool argument mapping into a typed parameter
// struct. Unknown fields and trailing JSON values are rejected so malformed
// model output surfaces as invalid_arguments instead of being silently
// dropped.
func decodeArguments(args map[string]any, target any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}

	// Reject trailing JSON values after the first object.
	var extra any
	if err := decoder.Decode(&extra); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return fmt.Errorf("tool arguments must contain a single JSON object")
}
