// Package vitals classifies vital-sign readings against fixed clinical
// threshold tables. Classification is pure: no state, no side effects.
package vitals

// Status of a single classified reading.
type Status int

const (
	Normal Status = iota
	Abnormal
)

func (s Status) String() string {
	if s == Abnormal {
		return "abnormal"
	}
	return "normal"
}

// Classify checks value for kind against the alert table. Unknown kinds are
// never flagged. Comparison is strictly exclusive: a reading sitting exactly
// on a boundary is normal.
func Classify(kind string, value float64) Status {
	return classify(AlertThresholds, kind, value)
}

// ClassifyPtr treats an absent reading as normal; missing is not zero.
func ClassifyPtr(kind string, value *float64) Status {
	if value == nil {
		return Normal
	}
	return Classify(kind, *value)
}

// ClassifyDisplay applies the display-styling table instead of the alert
// table. The two tables are intentionally not merged.
func ClassifyDisplay(kind string, value float64) Status {
	return classify(DisplayThresholds, kind, value)
}

func classify(t Table, kind string, value float64) Status {
	r, ok := t.Lookup(kind)
	if !ok {
		return Normal
	}
	if value < r.Min || value > r.Max {
		return Abnormal
	}
	return Normal
}
