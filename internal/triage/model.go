package triage

import "github.com/linnemanlabs/gabay/internal/assistant"

// FacilityType is the kind of facility a triage run points the user toward.
type FacilityType string

const (
	FacilityNone     FacilityType = "none"
	FacilityPharmacy FacilityType = "pharmacy"
	FacilityClinic   FacilityType = "clinic"
	FacilityHospital FacilityType = "hospital"
	FacilityER       FacilityType = "er"
)

// SymptomMatch records the outcome of testing one symptom category against a
// message. One entry is produced per known category per run, matched or not.
type SymptomMatch struct {
	Symptom  string   `json:"symptom"`
	Keywords []string `json:"keywords"`
	Matched  bool     `json:"matched"`
}

// Result is the immutable outcome of one triage run.
//
// Invariants: MedicationCard is non-nil only when Safety.Urgency is
// self_care; FacilityType er implies Safety.Urgency er.
type Result struct {
	DetectedSymptoms  []string                  `json:"detectedSymptoms"`
	Safety            assistant.SafetyInfo      `json:"safety"`
	MedicationCard    *assistant.MedicationCard `json:"medicationCard,omitempty"`
	FollowUpQuestions []string                  `json:"followUpQuestions,omitempty"`
	FacilityType      FacilityType              `json:"facilityType"`
}
