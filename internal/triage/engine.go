package triage

import (
	"strings"

	"github.com/linnemanlabs/gabay/internal/assistant"
)

// Engine classifies messages against an injected, frozen rule set. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	tables  *Tables
	metrics *Metrics
}

// NewEngine creates an engine over the given tables. A nil tables argument
// uses the built-in defaults; a nil metrics argument disables instrumentation.
func NewEngine(tables *Tables, metrics *Metrics) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Engine{tables: tables, metrics: metrics}
}

// DetectSymptoms tests the message against every symptom category. The
// result has exactly one entry per category, in table declaration order,
// whether or not it matched.
func (e *Engine) DetectSymptoms(message string) []SymptomMatch {
	out := make([]SymptomMatch, 0, len(e.tables.Symptoms))
	for _, rule := range e.tables.Symptoms {
		matched := false
		for _, p := range rule.Patterns {
			if p.MatchString(message) {
				matched = true
				break
			}
		}
		out = append(out, SymptomMatch{
			Symptom:  rule.Name,
			Keywords: rule.Keywords,
			Matched:  matched,
		})
	}
	return out
}

// DetectRedFlags scans the message for red-flag phrases: the general tier
// always, then the per-symptom tiers for each symptom in the order given.
// requiresER is true iff any produced flag's text contains an ER indicator
// substring (case-insensitive).
func (e *Engine) DetectRedFlags(message string, symptoms []string) (flags []string, requiresER bool) {
	for _, r := range e.tables.GeneralRedFlags {
		if r.Pattern.MatchString(message) {
			flags = append(flags, r.Flag)
		}
	}
	for _, s := range symptoms {
		for _, r := range e.tables.SymptomRedFlags[s] {
			if r.Pattern.MatchString(message) {
				flags = append(flags, r.Flag)
			}
		}
	}

	for _, f := range flags {
		lower := strings.ToLower(f)
		for _, indicator := range e.tables.ERIndicators {
			if strings.Contains(lower, indicator) {
				requiresER = true
				return flags, requiresER
			}
		}
	}
	return flags, requiresER
}

// DetermineUrgency resolves the level of care. Precedence: requiresER, then
// any red flag, then self_care. Symptom absence never escalates; a message
// with no symptoms still resolves to self_care.
func DetermineUrgency(symptoms, redFlags []string, requiresER bool) assistant.Urgency {
	switch {
	case requiresER:
		return assistant.UrgencyER
	case len(redFlags) > 0:
		return assistant.UrgencyClinic
	default:
		return assistant.UrgencySelfCare
	}
}

// MedicationCard builds an OTC card from the first two table entries per
// detected symptom, in symptom order. Returns nil when nothing matched.
// Callers must only surface the card at self_care urgency.
func (e *Engine) MedicationCard(symptoms []string) *assistant.MedicationCard {
	var items []assistant.MedicationCardItem
	for _, s := range symptoms {
		entries := e.tables.Medications[s]
		if len(entries) > 2 {
			entries = entries[:2]
		}
		items = append(items, entries...)
	}
	if len(items) == 0 {
		return nil
	}
	return &assistant.MedicationCard{
		CardType:          assistant.CardMedication,
		Title:             "Over-the-counter options",
		Items:             items,
		GeneralDisclaimer: GeneralDisclaimer,
	}
}

// FollowUpQuestions returns up to three clarifying questions for the
// detected symptoms in the requested language, falling back to Tagalog
// phrasing for unrecognized languages.
func (e *Engine) FollowUpQuestions(symptoms []string, lang assistant.Language) []string {
	var out []string
	for _, s := range symptoms {
		byLang, ok := e.tables.FollowUps[s]
		if !ok {
			continue
		}
		qs, ok := byLang[lang]
		if !ok {
			qs = byLang[assistant.Tagalog]
		}
		out = append(out, qs...)
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// IsHealthRelated is a coarse pre-filter: true if the message matches any
// health-keyword pattern in any supported language. The symptom and red-flag
// tables are consulted too, so anything the detectors can match is always
// health-related.
func (e *Engine) IsHealthRelated(message string) bool {
	for _, p := range e.tables.HealthPatterns {
		if p.MatchString(message) {
			return true
		}
	}
	for _, s := range e.tables.Symptoms {
		for _, p := range s.Patterns {
			if p.MatchString(message) {
				return true
			}
		}
	}
	for _, r := range e.tables.GeneralRedFlags {
		if r.Pattern.MatchString(message) {
			return true
		}
	}
	for _, rules := range e.tables.SymptomRedFlags {
		for _, r := range rules {
			if r.Pattern.MatchString(message) {
				return true
			}
		}
	}
	return false
}

// Triage runs the full pipeline for one message. It never fails: every
// detector treats "no match" as a normal outcome, including for empty input.
func (e *Engine) Triage(message string, lang assistant.Language) *Result {
	matches := e.DetectSymptoms(message)
	var detected []string
	for _, m := range matches {
		if m.Matched {
			detected = append(detected, m.Symptom)
		}
	}

	flags, requiresER := e.DetectRedFlags(message, detected)
	urgency := DetermineUrgency(detected, flags, requiresER)

	result := &Result{
		DetectedSymptoms: detected,
		Safety: assistant.SafetyInfo{
			Disclaimer: e.disclaimer(urgency, lang),
			RedFlags:   flags,
			Urgency:    urgency,
		},
		FacilityType: facilityTypeFor(detected, flags, requiresER),
	}
	if result.DetectedSymptoms == nil {
		result.DetectedSymptoms = []string{}
	}

	// OTC suggestions are never surfaced at clinic or ER urgency.
	if urgency == assistant.UrgencySelfCare {
		result.MedicationCard = e.MedicationCard(detected)
	}

	if len(detected) > 0 && urgency != assistant.UrgencyER {
		result.FollowUpQuestions = e.FollowUpQuestions(detected, lang)
	}

	if e.metrics != nil {
		e.metrics.observe(result)
	}
	return result
}

// disclaimer picks the severity- and language-appropriate disclaimer text,
// falling back to Tagalog for unrecognized languages.
func (e *Engine) disclaimer(urgency assistant.Urgency, lang assistant.Language) string {
	byLang, ok := e.tables.Disclaimers[urgency]
	if !ok {
		return ""
	}
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang[assistant.Tagalog]
}

func facilityTypeFor(symptoms, flags []string, requiresER bool) FacilityType {
	switch {
	case requiresER:
		return FacilityER
	case len(flags) > 0:
		return FacilityHospital
	case len(symptoms) > 0:
		return FacilityClinic
	default:
		return FacilityNone
	}
}
