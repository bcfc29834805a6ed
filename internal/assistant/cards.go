package assistant

import (
	"encoding/json"
	"fmt"
)

// CardKind is the discriminant of the card union.
type CardKind string

const (
	CardMedication     CardKind = "medication"
	CardFacility       CardKind = "facility"
	CardRoute          CardKind = "route"
	CardSchedule       CardKind = "schedule"
	CardBooking        CardKind = "booking"
	CardPrescription   CardKind = "prescription"
	CardMedicationPlan CardKind = "medication_plan"
)

// Card is the closed union of structured UI cards attached to an envelope.
// Every card serializes with a cardType field matching its Kind.
type Card interface {
	Kind() CardKind
}

// MedicationCardItem is one OTC suggestion. Static, English-only content
// drawn from a fixed table; never user-editable.
type MedicationCardItem struct {
	GenericName     string   `json:"genericName"`
	BrandExamples   []string `json:"brandExamples,omitempty"`
	Why             string   `json:"why"`
	HowToUseGeneral string   `json:"howToUseGeneral"`
	Cautions        []string `json:"cautions"`
	AvoidIf         []string `json:"avoidIf"`
	WhenToSeeDoctor string   `json:"whenToSeeDoctor"`
}

// MedicationCard lists over-the-counter options for detected symptoms.
type MedicationCard struct {
	CardType          CardKind             `json:"cardType"`
	Title             string               `json:"title"`
	Items             []MedicationCardItem `json:"items"`
	GeneralDisclaimer string               `json:"generalDisclaimer"`
}

func (c *MedicationCard) Kind() CardKind { return CardMedication }

// FacilityCard describes one nearby health facility.
type FacilityCard struct {
	CardType       CardKind `json:"cardType"`
	FacilityID     string   `json:"facilityId"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Hours          string   `json:"hours,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Services       []string `json:"services,omitempty"`
	DistanceMeters float64  `json:"distanceMeters,omitempty"`
	Lat            float64  `json:"lat,omitempty"`
	Lng            float64  `json:"lng,omitempty"`
	FacilityType   string   `json:"facilityType,omitempty"`
}

func (c *FacilityCard) Kind() CardKind { return CardFacility }

// RouteEndpoint is one end of a route, optionally labeled for display.
type RouteEndpoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

// RouteStep is a single turn instruction.
type RouteStep struct {
	Instruction     string `json:"instruction"`
	DistanceMeters  int    `json:"distanceMeters"`
	DurationSeconds int    `json:"durationSeconds"`
}

// GeoJSONLineString is the route geometry, [lng, lat] coordinate pairs.
type GeoJSONLineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// RouteCard carries directions from the user's position to a facility.
type RouteCard struct {
	CardType        CardKind          `json:"cardType"`
	From            RouteEndpoint     `json:"from"`
	To              RouteEndpoint     `json:"to"`
	GeoJSONLine     GeoJSONLineString `json:"geojsonLine"`
	DistanceMeters  int               `json:"distanceMeters"`
	DurationSeconds int               `json:"durationSeconds"`
	Steps           []RouteStep       `json:"steps"`
	Profile         string            `json:"profile"`
}

func (c *RouteCard) Kind() CardKind { return CardRoute }

// ScheduleSlot is one bookable appointment slot.
type ScheduleSlot struct {
	SlotID    string `json:"slotId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// ScheduleCard lists a doctor's availability at a facility.
type ScheduleCard struct {
	CardType     CardKind       `json:"cardType"`
	FacilityID   string         `json:"facilityId"`
	FacilityName string         `json:"facilityName,omitempty"`
	DoctorID     string         `json:"doctorId,omitempty"`
	DoctorName   string         `json:"doctorName,omitempty"`
	HumanSummary string         `json:"humanSummary"`
	Slots        []ScheduleSlot `json:"slots"`
}

func (c *ScheduleCard) Kind() CardKind { return CardSchedule }

// BookingStatus is the lifecycle state of a booking attempt.
type BookingStatus string

const (
	BookingProposed  BookingStatus = "proposed"
	BookingBooked    BookingStatus = "booked"
	BookingFailed    BookingStatus = "failed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingCard reports the outcome of a booking attempt.
type BookingCard struct {
	CardType      CardKind      `json:"cardType"`
	DoctorID      string        `json:"doctorId"`
	DoctorName    string        `json:"doctorName,omitempty"`
	FacilityID    string        `json:"facilityId"`
	FacilityName  string        `json:"facilityName,omitempty"`
	SelectedSlot  *ScheduleSlot `json:"selectedSlot,omitempty"`
	Status        BookingStatus `json:"status"`
	AppointmentID string        `json:"appointmentId,omitempty"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
}

func (c *BookingCard) Kind() CardKind { return CardBooking }

// PrescriptionItem is one medication line extracted from a scanned prescription.
type PrescriptionItem struct {
	MedicationName string `json:"medicationName"`
	Strength       string `json:"strength,omitempty"`
	Form           string `json:"form,omitempty"`
	Sig            string `json:"sig"`
	PRN            bool   `json:"prn,omitempty"`
	DurationDays   int    `json:"durationDays,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// PrescriptionCard carries the result of a prescription scan.
type PrescriptionCard struct {
	CardType          CardKind           `json:"cardType"`
	Title             string             `json:"title"`
	Confidence        string             `json:"confidence"`
	PatientName       string             `json:"patientName,omitempty"`
	Date              string             `json:"date,omitempty"`
	PrescriberName    string             `json:"prescriberName,omitempty"`
	Items             []PrescriptionItem `json:"items"`
	Warnings          []string           `json:"warnings,omitempty"`
	NeedsVerification bool               `json:"needsVerification,omitempty"`
}

func (c *PrescriptionCard) Kind() CardKind { return CardPrescription }

// MedicationPlanItem is one entry of a normalized medication plan.
type MedicationPlanItem struct {
	MedicationName  string   `json:"medicationName"`
	Strength        string   `json:"strength,omitempty"`
	Form            string   `json:"form,omitempty"`
	ScheduleSummary string   `json:"scheduleSummary"`
	TimesOfDay      []string `json:"timesOfDay,omitempty"`
	PRN             bool     `json:"prn,omitempty"`
	StartDate       string   `json:"startDate,omitempty"`
	EndDate         string   `json:"endDate,omitempty"`
	DurationDays    int      `json:"durationDays,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// MedicationPlanCard is a normalized plan suitable for reminders/tracking.
type MedicationPlanCard struct {
	CardType          CardKind             `json:"cardType"`
	Title             string               `json:"title"`
	Source            string               `json:"source"`
	Items             []MedicationPlanItem `json:"items"`
	NeedsVerification bool                 `json:"needsVerification,omitempty"`
}

func (c *MedicationPlanCard) Kind() CardKind { return CardMedicationPlan }

// DecodeCard unmarshals one card, dispatching on the cardType tag.
// Unknown or missing tags are an error; there are no untagged cards.
func DecodeCard(data []byte) (Card, error) {
	var tag struct {
		CardType CardKind `json:"cardType"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode card tag: %w", err)
	}

	var card Card
	switch tag.CardType {
	case CardMedication:
		card = &MedicationCard{}
	case CardFacility:
		card = &FacilityCard{}
	case CardRoute:
		card = &RouteCard{}
	case CardSchedule:
		card = &ScheduleCard{}
	case CardBooking:
		card = &BookingCard{}
	case CardPrescription:
		card = &PrescriptionCard{}
	case CardMedicationPlan:
		card = &MedicationPlanCard{}
	default:
		return nil, fmt.Errorf("unknown cardType %q", tag.CardType)
	}

	if err := json.Unmarshal(data, card); err != nil {
		return nil, fmt.Errorf("decode %s card: %w", tag.CardType, err)
	}
	return card, nil
}

// UnmarshalJSON decodes an envelope, reconstructing the typed card union.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	type alias Envelope
	aux := struct {
		*alias
		Cards []json.RawMessage `json:"cards"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	e.Cards = make([]Card, 0, len(aux.Cards))
	for _, raw := range aux.Cards {
		card, err := DecodeCard(raw)
		if err != nil {
			return err
		}
		e.Cards = append(e.Cards, card)
	}
	return nil
}
