// Package profile loads and validates the static profile document.
package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/portfolio-ai/internal/schemas"
	"github.com/jonathan/portfolio-ai/internal/types"
)

//go:embed sample_profile.json
var sampleProfile []byte

// Load reads the profile document at path. An empty path loads the embedded sample profile.
// The document is checked against the profile schema and the struct validation rules, so a
// shape mismatch fails here instead of producing broken chunk text later.
func Load(path string) (*types.ProfileDocument, error) {
	if path == "" {
		return Sample()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return doc, nil
}

// Sample returns the embedded sample profile.
func Sample() (*types.ProfileDocument, error) {
	return Parse(sampleProfile)
}

// MustSample returns the embedded sample profile, panicking if it does not validate.
func MustSample() *types.ProfileDocument {
	doc, err := Sample()
	if err != nil {
		panic(fmt.Sprintf("embedded sample profile is invalid: %v", err))
	}
	return doc
}

// Parse validates and decodes raw profile JSON.
func Parse(data []byte) (*types.ProfileDocument, error) {
	if err := schemas.ValidateProfile(data); err != nil {
		return nil, err
	}

	var doc types.ProfileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	if err := validator.New().Struct(&doc); err != nil {
		return nil, fmt.Errorf("profile failed validation: %w", err)
	}

	return &doc, nil
}
