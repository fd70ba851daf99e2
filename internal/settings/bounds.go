package settings

// Range is an inclusive (low, high) pair.
type Range struct {
	Low  float64 `json:"low"  toml:"low"`
	High float64 `json:"high" toml:"high"`
}

// Contains reports whether low <= v <= high.
func (r Range) Contains(v float64) bool {
	return r.Low <= v && v <= r.High
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	switch {
	case v < r.Low:
		return r.Low
	case v > r.High:
		return r.High
	default:
		return v
	}
}

// Valid reports whether the pair is ordered.
func (r Range) Valid() bool {
	return r.Low <= r.High
}

// Bounds holds the four bound pairs. Supplied by the default source only.
type Bounds struct {
	Temperature      Range `json:"temperature"      toml:"temperature"`
	TopP             Range `json:"topP"             toml:"topP"`
	SearchStrictness Range `json:"searchStrictness" toml:"searchStrictness"`
	TopK             Range `json:"topK"             toml:"topK"`
}

// For returns the pair of a ranged key.
func (b Bounds) For(k Key) (Range, bool) {
	switch k {
	case KeyTemperature:
		return b.Temperature, true
	case KeyTopP:
		return b.TopP, true
	case KeySearchStrictness:
		return b.SearchStrictness, true
	case KeyTopK:
		return b.TopK, true
	default:
		return Range{}, false
	}
}
