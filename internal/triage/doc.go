// Package triage provides the deterministic symptom classifier at the heart
// of Gabay. It maps free-text messages (English, Tagalog, Bikol) to detected
// symptoms, red-flag warnings, a safety urgency level, and over-the-counter
// medication guidance. The Engine is pure: no I/O, no shared mutable state,
// safe for concurrent use. All rule tables are read-only data injected at
// construction.
package triage
