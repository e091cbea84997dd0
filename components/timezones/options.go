package timezones

import "net/http"

// EmptySearchMode controls what an empty query returns.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

// GuardFunc vets HTTP requests before the zone endpoint answers them.
type GuardFunc func(r *http.Request) error

// Options configures the plugin: the field type tag it registers, the zone
// catalog, and the behaviour of the HTTP options endpoint.
type Options struct {
	FieldType       string
	RoutePath       string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	// Zones overrides the embedded catalog when non-nil.
	Zones []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		FieldType:       "timezone",
		RoutePath:       "/api/timezones",
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchNone,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.FieldType == "" {
		opts.FieldType = "timezone"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchNone
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/timezones"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Zones != nil {
		opts.Zones = append([]string{}, opts.Zones...)
	}
	return opts
}

// WithFieldType changes the field type tag the plugin registers under.
func WithFieldType(tag string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.FieldType = tag
		}
	}
}

// WithZones replaces the embedded catalog.
func WithZones(zones []string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.Zones = zones
		}
	}
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.RoutePath = path
		}
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.SearchParam = name
		}
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.LimitParam = name
		}
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.DefaultLimit = limit
		}
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.MaxLimit = limit
		}
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.EmptySearchMode = mode
		}
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o != nil {
			o.Guard = guard
		}
	}
}

func (o Options) zoneCatalog() ([]string, error) {
	if o.Zones != nil {
		return append([]string{}, o.Zones...), nil
	}
	return DefaultZones()
}

func clampLimit(limit int, opts Options) int {
	if limit <= 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		limit = opts.MaxLimit
	}
	if limit < 0 {
		return 0
	}
	return limit
}
