package assistant

import "strings"

// Language is the language tag carried on an envelope. Full names, not ISO
// codes. Unrecognized inputs pass through unchanged so new languages can be
// introduced upstream without breaking this layer.
type Language string

const (
	English Language = "english"
	Tagalog Language = "tagalog"
	Bikol   Language = "bikol"
)

// languageAliases maps loose inbound codes and names to canonical tags.
var languageAliases = map[string]Language{
	"en":       English,
	"eng":      English,
	"english":  English,
	"fil":      Tagalog,
	"tagalog":  Tagalog,
	"filipino": Tagalog,
	"bcl":      Bikol,
	"bikol":    Bikol,
	"bikolano": Bikol,
}

// NormalizeLanguage maps a loose language code or name to a canonical
// Language. Unknown values are returned as-is.
func NormalizeLanguage(lang string) Language {
	if l, ok := languageAliases[strings.ToLower(lang)]; ok {
		return l
	}
	return Language(lang)
}

// Urgency is the recommended level of care produced by triage.
type Urgency string

const (
	UrgencySelfCare Urgency = "self_care"
	UrgencyClinic   Urgency = "clinic"
	UrgencyER       Urgency = "er"
)

// SafetyInfo carries the triage safety metadata shown to the user.
// If RedFlags contains any ER-class indicator, Urgency is UrgencyER.
type SafetyInfo struct {
	Disclaimer string   `json:"disclaimer,omitempty"`
	RedFlags   []string `json:"redFlags,omitempty"`
	Urgency    Urgency  `json:"urgency,omitempty"`
}

// UserLocation is the caller-supplied position. Either GPS coordinates or a
// free-text manual location; both absent means "no location available" and
// facility/route lookups are skipped.
type UserLocation struct {
	Lat            float64 `json:"lat,omitempty"`
	Lng            float64 `json:"lng,omitempty"`
	ManualText     string  `json:"manualText,omitempty"`
	AccuracyMeters float64 `json:"accuracyMeters,omitempty"`
}

// HasCoords reports whether GPS coordinates are populated.
func (l *UserLocation) HasCoords() bool {
	return l != nil && l.Lat != 0 && l.Lng != 0
}

// HasAny reports whether any usable location signal is present.
func (l *UserLocation) HasAny() bool {
	return l != nil && (l.HasCoords() || strings.TrimSpace(l.ManualText) != "")
}

// Envelope is the top-level structured response for one chat turn.
// Constructed fresh per turn and never persisted by this service.
type Envelope struct {
	Text      string     `json:"text"`
	Language  Language   `json:"language"`
	Safety    SafetyInfo `json:"safety"`
	Cards     []Card     `json:"cards"`
	SessionID string     `json:"sessionId,omitempty"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// IsEnvelope reports whether a decoded JSON object has the envelope shape:
// text string, language string, safety object, cards array.
func IsEnvelope(obj map[string]any) bool {
	if obj == nil {
		return false
	}
	if _, ok := obj["text"].(string); !ok {
		return false
	}
	if _, ok := obj["language"].(string); !ok {
		return false
	}
	if _, ok := obj["safety"].(map[string]any); !ok {
		return false
	}
	if _, ok := obj["cards"].([]any); !ok {
		return false
	}
	return true
}
