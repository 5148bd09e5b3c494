package utils

import "time"

// The wire format uses epoch milliseconds for every timestamp. Legacy
// exports carry the same representation, so both directions live here.

// ToMillis converts a time to epoch milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// MillisOrNow converts an optional time to epoch milliseconds,
// substituting the current time when the value is absent or zero. The
// substitution is deliberate wire behavior, not an error path.
func MillisOrNow(t *time.Time) int64 {
	if t == nil || t.IsZero() {
		return time.Now().UnixMilli()
	}
	return t.UnixMilli()
}

// MillisOrNil converts an optional time to epoch milliseconds, keeping
// nil for absent values. Used for fields that are genuinely optional on
// the wire (e.g. a decision timestamp).
func MillisOrNil(t *time.Time) *int64 {
	if t == nil || t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// FromMillis converts epoch milliseconds into a *time.Time, returning nil
// for non-positive values.
func FromMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}
