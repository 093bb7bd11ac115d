package media

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Open a data source based on its "source spec". A source spec is a
// colon-separated string consisting of a source tag and a source path:
//    sourceSpec = sourceTag + ":" + sourcePath
// The format of the source path is defined by the registered OpenFunc.
func OpenSource(spec string, cfg Config) (DataSource, error) {
	// Log known source types, for debug purposes.
	var tags []string
	for t := range registry {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	log.Debug("Registered source types: %v", tags)

	// Split the spec string into tag and path
	parts := strings.SplitN(spec, ":", 2)
	var tag, path string
	tag = parts[0]
	if len(parts) == 2 {
		path = parts[1]
	}

	open, found := registry[tag]
	if !found {
		return nil, errors.Errorf("Source type '%s' not registered", tag)
	}
	return open(path, cfg)
}

// A function used to open a specific source type.
type OpenFunc func(path string, cfg Config) (DataSource, error)

var registry = map[string]OpenFunc{}

// Register a source type, identified by its "source tag". Sources of this type
// will be opened with the given function.
func RegisterSourceType(tag string, open OpenFunc) {
	registry[tag] = open
}

func init() {
	RegisterSourceType("file", func(path string, cfg Config) (DataSource, error) {
		if path == "" {
			return nil, errors.New("missing file path")
		}
		return NewDefaultDataSource(&FileInput{Path: path, Probe: cfg.Probe}, cfg), nil
	})

	openHTTP := func(scheme string) OpenFunc {
		return func(path string, cfg Config) (DataSource, error) {
			if !strings.HasPrefix(path, "//") {
				return nil, errors.Errorf("malformed %s URL: %s", scheme, path)
			}
			return NewDefaultDataSource(&HTTPInput{URL: scheme + ":" + path, Probe: cfg.Probe}, cfg), nil
		}
	}
	RegisterSourceType("http", openHTTP("http"))
	RegisterSourceType("https", openHTTP("https"))
}
