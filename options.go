package facet

import "log"

// FacetSizing selects how the sizing pass reserves facet slots.
type FacetSizing int

const (
	// FanSizing reserves k-2 slots for a k-vertex face (1 for k == 2),
	// as if faces were fan triangulated. Faces are still stored whole,
	// so faces with more than three vertices leave empty placeholder
	// slots after the committed ones.
	FanSizing FacetSizing = iota
	// ExactSizing reserves one slot per face record with at least two
	// vertices.
	ExactSizing
)

type loadOptions struct {
	sizing FacetSizing
	logger *log.Logger
}

// LoadOption configures a single Load call.
type LoadOption func(*loadOptions)

// WithLogger routes load diagnostics to l. By default they are dropped.
func WithLogger(l *log.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = l
	}
}

// WithFacetSizing overrides the default FanSizing policy.
func WithFacetSizing(s FacetSizing) LoadOption {
	return func(o *loadOptions) {
		o.sizing = s
	}
}

func newLoadOptions(m *Mesh, opts []LoadOption) loadOptions {
	o := loadOptions{sizing: FanSizing, logger: m.log()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = discard
	}
	return o
}
