package panel

import "github.com/san-kum/chaospanel/internal/param"

// VectorCache is the last known value of every component of one vector
// group. It lives as long as the group's listeners and is only touched by
// them.
type VectorCache struct {
	label  string
	values []float64
}

func newVectorCache(label string, seed []float64) *VectorCache {
	values := make([]float64, len(seed))
	copy(values, seed)
	return &VectorCache{label: label, values: values}
}

func (c *VectorCache) Set(i int, v float64) {
	c.values[i] = v
}

// Values returns a copy of the cached vector.
func (c *VectorCache) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out
}

// Text renders the group label as "{label} = (v0,v1,...)".
func (c *VectorCache) Text() string {
	return c.label + " = (" + param.FormatVector(c.values) + ")"
}
