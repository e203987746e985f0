package spotify

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const audioFeaturesSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["danceability", "energy", "tempo", "valence"],
	"properties": {
		"danceability": {"type": "number", "minimum": 0, "maximum": 1},
		"energy": {"type": "number", "minimum": 0, "maximum": 1},
		"valence": {"type": "number", "minimum": 0, "maximum": 1},
		"tempo": {"type": "number", "exclusiveMinimum": 0}
	}
}`

type featureValidator struct {
	schema *gojsonschema.Schema
}

func newFeatureValidator() *featureValidator {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(audioFeaturesSchema))
	if err != nil {
		// the schema is a constant
		panic(fmt.Sprintf("spotify: invalid audio features schema: %v", err))
	}
	return &featureValidator{schema: schema}
}

// validate checks an audio features payload against the schema.
func (v *featureValidator) validate(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFeatures, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformedFeatures, strings.Join(problems, "; "))
}
