package policy

import (
	"github.com/go-viper/mapstructure/v2"
)

// DecodeTagFields is a generic helper to unmarshal tag key/value fields into a
// strongly-typed struct using its json tags.
//
// Key matching is exact (case-sensitive) and unknown keys are ignored, so tags
// written by other tools never break decoding.
func DecodeTagFields[T any](fields map[string]string) (*T, error) {
	var result T

	config := &mapstructure.DecoderConfig{
		Result:           &result,
		WeaklyTypedInput: true,
		TagName:          "json",
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(fields); err != nil {
		return nil, err
	}

	return &result, nil
}
