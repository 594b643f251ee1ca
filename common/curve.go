package common

import "sort"

// CurveKey is one sample of a float curve.
type CurveKey struct {
	Time  float64 `yaml:"t"`
	Value float64 `yaml:"v"`
}

// Curve is a piecewise linear float curve sampled by time. Values outside
// the key range clamp to the first or last key.
type Curve struct {
	keys []CurveKey
}

// NewCurve returns nil when keys is empty so callers can treat a missing
// curve the same as an unconfigured one.
func NewCurve(keys []CurveKey) *Curve {
	if len(keys) == 0 {
		return nil
	}
	sorted := append([]CurveKey(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &Curve{keys: sorted}
}

func (c *Curve) TimeRange() (min, max float64) {
	if c == nil || len(c.keys) == 0 {
		return 0, 0
	}
	return c.keys[0].Time, c.keys[len(c.keys)-1].Time
}

func (c *Curve) Value(t float64) float64 {
	if c == nil || len(c.keys) == 0 {
		return 0
	}
	first := c.keys[0]
	if t <= first.Time {
		return first.Value
	}
	last := c.keys[len(c.keys)-1]
	if t >= last.Time {
		return last.Value
	}
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time > t })
	a := c.keys[i-1]
	b := c.keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	return Lerp(a.Value, b.Value, (t-a.Time)/span)
}

func (c *Curve) Keys() []CurveKey {
	if c == nil {
		return nil
	}
	return append([]CurveKey(nil), c.keys...)
}
