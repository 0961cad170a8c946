package link

import (
	"fmt"
	"maps"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/arthur-debert/dodot-firefox/pkg/plugin"
	"github.com/go-viper/mapstructure/v2"
)

// Source describes what a destination should link to.
type Source struct {
	Path          string `mapstructure:"path"`
	Create        bool   `mapstructure:"create"`
	Force         bool   `mapstructure:"force"`
	Relink        bool   `mapstructure:"relink"`
	Relative      bool   `mapstructure:"relative"`
	IgnoreMissing bool   `mapstructure:"ignore-missing"`
}

// DecodeSource builds a Source from an install-file value: nil, a path
// string, or a mapping of options. defaults fill options the value leaves
// out; a "path" in defaults is ignored. Unknown option names are returned so
// callers can report them.
func DecodeSource(value any, defaults plugin.Data) (Source, []string, error) {
	raw := maps.Clone(defaults)
	if raw == nil {
		raw = plugin.Data{}
	}
	delete(raw, "path")

	switch v := value.(type) {
	case nil:
	case string:
		raw["path"] = v
	case map[string]any:
		maps.Copy(raw, v)
	default:
		return Source{}, nil, errors.Newf(errors.ErrConfigValid,
			"link source must be a path or a mapping, got %T", value).
			WithDetail("value", fmt.Sprint(value))
	}

	var src Source
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &src,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Source{}, nil, errors.Wrap(err, errors.ErrInternal, "cannot build link decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return Source{}, nil, errors.Wrap(err, errors.ErrConfigValid, "invalid link options")
	}

	return src, md.Unused, nil
}
