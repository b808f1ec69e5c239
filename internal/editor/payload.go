package editor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/matt0x6f/metadata-editor/internal/validation"
	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidPayload is returned when a close request is missing a field
	// or holds malformed metadata.
	ErrInvalidPayload = errors.New("invalid editor payload")

	// ErrPersistence is returned when the userlist could not be saved.
	ErrPersistence = errors.New("failed to persist user metadata")
)

// closeRequest is the decoded form of an editor-closed payload:
//
//	{"applyEdits": true, "metadata": {"name": "Foo.esp", ...}}
type closeRequest struct {
	applyEdits bool
	metadata   metadata.PluginMetadata
}

func parseClosePayload(payload []byte) (closeRequest, error) {
	var req closeRequest

	if !gjson.ValidBytes(payload) {
		return req, fmt.Errorf("%w: payload is not valid JSON", ErrInvalidPayload)
	}

	applyEdits := gjson.GetBytes(payload, "applyEdits")
	switch applyEdits.Type {
	case gjson.True, gjson.False:
		req.applyEdits = applyEdits.Bool()
	default:
		return req, fmt.Errorf("%w: applyEdits must be a boolean", ErrInvalidPayload)
	}

	raw := gjson.GetBytes(payload, "metadata")
	if !raw.IsObject() {
		return req, fmt.Errorf("%w: metadata object is missing", ErrInvalidPayload)
	}
	if err := json.Unmarshal([]byte(raw.Raw), &req.metadata); err != nil {
		return req, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if err := validation.ValidateMetadata(req.metadata); err != nil {
		return req, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return req, nil
}
