package engine

import "strings"

// Canonical priority values.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// NormalizePriority maps a free-text priority label to the canonical set.
//
// Matching is case-insensitive substring containment, checked in a fixed
// order: "high" wins over "medium" wins over "low". Substring matching is
// deliberate so decorated labels ("Low(Edge)", "High - Cardiac") resolve
// the same as bare ones. The source/target vocabularies are offset by
// one level: the spreadsheets say high/medium/low, the platform says
// urgent/high/normal.
//
// Empty input stays empty ("not specified", which is distinct from
// "normal"). Unrecognized non-empty input passes through trimmed, so a
// reviewer sees the untranslated value in the output instead of a
// silently coerced default.
func NormalizePriority(raw string) string {
	s := fold(raw)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "high"):
		return PriorityUrgent
	case strings.Contains(s, "medium"):
		return PriorityHigh
	case strings.Contains(s, "low"):
		return PriorityNormal
	}
	return strings.TrimSpace(raw)
}
