package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// File is the on-disk JSON configuration. Unset fields keep their defaults.
type File struct {
	Root       *string  `json:"root,omitempty"`
	Quality    *int     `json:"quality,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Exclude    []string `json:"exclude,omitempty"`
	Manifest   *string  `json:"manifest,omitempty"`
}

// InvalidSchemaError represents a config file that does not match Schema.
type InvalidSchemaError struct {
	File   string
	Result *gojsonschema.Result
}

// Error is used to satisfy the error interface.
func (i InvalidSchemaError) Error() string {
	msgs := make([]string, 0, len(i.Result.Errors()))
	for _, resErr := range i.Result.Errors() {
		msg := resErr.String()
		if resErr.Type() == "additional_property_not_allowed" {
			if prop, ok := resErr.Details()["property"].(string); ok {
				msg += fmt.Sprintf(" (did you mean `%s`?)", mostSimilarKey(prop))
			}
		}
		msgs = append(msgs, msg)
	}
	return fmt.Sprintf("invalid config %s: %s", i.File, strings.Join(msgs, "; "))
}

// ReadFile parses and validates a JSON config file.
// If the schema is invalid, the error is an InvalidSchemaError.
func ReadFile(file string) (*File, error) {
	bytes, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", file)
	}

	res, err := Schema.Validate(gojsonschema.NewBytesLoader(bytes))
	if err != nil {
		// invalid JSON
		return nil, errors.Wrapf(err, "failed to parse %s", file)
	}
	if !res.Valid() {
		return nil, InvalidSchemaError{file, res}
	}

	var f File
	if err := json.Unmarshal(bytes, &f); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", file)
	}
	return &f, nil
}

// Gets the known key closest to an unknown one.
func mostSimilarKey(target string) string {
	var mostSimilar string
	var minDist int = math.MaxInt32
	for _, k := range knownKeys {
		if dist := levenshtein.ComputeDistance(target, k); dist < minDist {
			mostSimilar = k
			minDist = dist
		}
	}
	return mostSimilar
}
