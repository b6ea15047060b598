package dashboardhandler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ruteri/halow-dashboard/interfaces"
	"github.com/xeipuuv/gojsonschema"
)

// metadataSchema accepts any JSON object and nothing else.
const metadataSchema = `{"type": "object"}`

const metadataError = "Metadata must be a valid JSON object"

type metadataValidator struct {
	schema *gojsonschema.Schema
}

func newMetadataValidator() (*metadataValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(metadataSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile metadata schema: %w", err)
	}
	return &metadataValidator{schema: schema}, nil
}

// parseString validates metadata submitted as text. Blank input means no
// metadata.
func (v *metadataValidator) parseString(raw string) (interfaces.Metadata, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	return v.parse([]byte(raw))
}

// parseRaw validates metadata taken from a JSON request body, where it may be
// an object, a string containing JSON, or null.
func (v *metadataValidator) parseRaw(raw json.RawMessage) (interfaces.Metadata, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, interfaces.NewValidationError(err.Error())
		}
		return v.parseString(s)
	}
	return v.parse(trimmed)
}

func (v *metadataValidator) parse(doc []byte) (interfaces.Metadata, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, interfaces.NewValidationError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, interfaces.NewValidationError(strings.Join(msgs, "; "))
	}

	var metadata interfaces.Metadata
	if err := json.Unmarshal(doc, &metadata); err != nil {
		return nil, interfaces.NewValidationError(err.Error())
	}
	return metadata, nil
}
