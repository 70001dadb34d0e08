package result

import (
	"fmt"
	"sort"
	"time"
)

// Feature names shared by every analysis.
const (
	FeatureFilename          = "filename"
	FeatureTag               = "tag"
	FeatureProcessingFailure = "processing_failure"
)

// Value is a single feature value. A Label qualifies the value, as with
// extension headers where the label is the header name.
type Value struct {
	Value any    `json:"value"`
	Label string `json:"label,omitempty"`
}

// String formats the value for display. Times are formatted as RFC 3339.
func (v Value) String() string {
	switch t := v.Value.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// Features maps feature names to their values. A feature may have any number
// of values and the order they were added in is kept.
type Features map[string][]Value

// Add appends a value to the named feature.
func (f Features) Add(name string, v any) {
	f[name] = append(f[name], Value{Value: v})
}

// AddLabelled appends a labelled value to the named feature.
func (f Features) AddLabelled(name, label string, v any) {
	f[name] = append(f[name], Value{Value: v, Label: label})
}

// AddStrings appends each non-empty string to the named feature.
func (f Features) AddStrings(name string, vs ...string) {
	for _, v := range vs {
		if v != "" {
			f.Add(name, v)
		}
	}
}

// Set replaces all values of the named feature with a single value.
func (f Features) Set(name string, v any) {
	f[name] = []Value{{Value: v}}
}

// Has reports whether the named feature has at least one value.
func (f Features) Has(name string) bool {
	return len(f[name]) > 0
}

// First returns the first value of the named feature.
func (f Features) First(name string) (any, bool) {
	vs := f[name]
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0].Value, true
}

// Strings returns the values of the named feature formatted as strings.
func (f Features) Strings(name string) []string {
	vs := f[name]
	if len(vs) == 0 {
		return nil
	}

	ss := make([]string, len(vs))
	for i, v := range vs {
		ss[i] = v.String()
	}
	return ss
}

// Merge appends all the values of o to f.
func (f Features) Merge(o Features) {
	for name, vs := range o {
		f[name] = append(f[name], vs...)
	}
}

// Names returns the feature names in sorted order.
func (f Features) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
