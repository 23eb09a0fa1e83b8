package room

import (
	"strings"

	"tidy-room/api/internal/vision"
)

// Locale renders every child-facing phrase. Detector labels, size classes,
// zones and palette names stay canonical (English) in data; only messages are
// localised.
type Locale interface {
	Tag() string

	Label(label string) string
	ColorName(canonical string) string
	SizeName(s vision.SizeClass) string
	ZoneName(z vision.Zone) string

	Encouragements() []string
	Hint(label string) string

	Matched(o DetectedObject, target vision.Zone, encouragement, hint string) string
	Unmatched(o DetectedObject, hint string) string

	NoReference() string
	AllTidy() string
	TasksFound(n int) string
	Progress(l ProgressLevel) string
	ReferenceSaved() string
	ResetDone() string

	ObjectsFound(n int) string
	Describe(o DetectedObject) string
	NothingInHand() string
}

// LocaleFor returns the locale for a tag; French is the default.
func LocaleFor(tag string) Locale {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "en", "english":
		return English
	default:
		return French
	}
}

func lookup(table map[string]string, key string) string {
	if v, ok := table[strings.ToLower(key)]; ok {
		return v
	}
	return key
}
