// Package settings holds the typed advanced settings snapshot and the rules
// reconciling server defaults, persisted overrides and live edits.
//
// A persisted value takes precedence when its key is present, not null and
// coercible to the declared type. Presence, not truthiness, decides: a stored
// 0 or false is a real override. The one exception is an empty model name,
// which is never stored over a model: Initialize keeps the default and
// ApplyEdit keeps the current model.
package settings

// Initialize builds the boot snapshot from the default source and the
// persisted blob (nil when nothing was stored). Bounds always come from d.
func Initialize(d Defaults, persisted Blob) Snapshot {
	s := Snapshot{
		model:            d.Model,
		temperature:      d.Temperature,
		topP:             d.TopP,
		searchStrictness: d.SearchStrictness,
		topK:             d.TopK,
		enableInDomain:   d.EnableInDomain,
		bounds:           d.Bounds,
	}

	if persisted == nil {
		return s
	}

	for _, k := range keys {
		raw, ok := persisted.Lookup(k)
		if !ok {
			continue
		}

		if next, accepted := s.with(k, raw, false); accepted {
			s = next
		}
	}

	return s
}

// ApplyEdit returns a copy of current with k set to v coerced to k's kind.
// Values are not clamped to bounds. A numeric value that can not be read as
// a number becomes 0. An empty model name and an unknown key return current
// unchanged.
func ApplyEdit(current Snapshot, k Key, v any) Snapshot {
	next, _ := current.with(k, v, true)

	return next
}

// with returns s with k replaced. On the edit path a value that does not
// coerce becomes the zero value; otherwise it is rejected.
func (s Snapshot) with(k Key, v any, editPath bool) (Snapshot, bool) {
	switch k.Kind() {
	case KindFloat:
		f, ok := toFloat(v)
		if !ok && !editPath {
			return s, false
		}

		if k == KeyTemperature {
			s.temperature = f
		} else {
			s.topP = f
		}
	case KindInt:
		i, ok := toInt(v)
		if !ok && !editPath {
			return s, false
		}

		if k == KeyTopK {
			s.topK = i
		} else {
			s.searchStrictness = i
		}
	case KindBool:
		s.enableInDomain = toBool(v)
	case KindString:
		if !k.Valid() {
			return s, false
		}

		m := toString(v)
		if m == "" {
			return s, false
		}

		s.model = m
	}

	return s, true
}
