package yoke

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 7386 merge patch, itself given as YAML or JSON,
// to a YAML document, and returns the patched document as YAML.
func Patch(doc, patch []byte, opts ...Option) ([]byte, error) {
	docJSON, err := YAMLToJSON(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	patchJSON := patch
	if !json.Valid(patch) {
		patchJSON, err = YAMLToJSON(patch, opts...)
		if err != nil {
			return nil, fmt.Errorf("error decoding patch: %w", err)
		}
	}
	merged, err := jsonpatch.MergePatch(docJSON, patchJSON)
	if err != nil {
		return nil, fmt.Errorf("error applying patch: %w", err)
	}
	return JSONToYAML(merged, opts...)
}
