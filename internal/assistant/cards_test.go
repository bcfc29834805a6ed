package assistant

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeCard_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want CardKind
	}{
		{"medication", `{"cardType":"medication","title":"OTC","items":[],"generalDisclaimer":"d"}`, CardMedication},
		{"facility", `{"cardType":"facility","facilityId":"f1","name":"Clinic","address":"Main St"}`, CardFacility},
		{"route", `{"cardType":"route","from":{"lat":1,"lng":2},"to":{"lat":3,"lng":4},"geojsonLine":{"type":"LineString","coordinates":[]},"distanceMeters":10,"durationSeconds":5,"steps":[],"profile":"walking"}`, CardRoute},
		{"schedule", `{"cardType":"schedule","facilityId":"f1","humanSummary":"s","slots":[]}`, CardSchedule},
		{"booking", `{"cardType":"booking","doctorId":"d1","facilityId":"f1","status":"booked"}`, CardBooking},
		{"prescription", `{"cardType":"prescription","title":"t","confidence":"high","items":[]}`, CardPrescription},
		{"medication plan", `{"cardType":"medication_plan","title":"t","source":"prescription","items":[]}`, CardMedicationPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			card, err := DecodeCard([]byte(tt.raw))
			if err != nil {
				t.Fatalf("DecodeCard: %v", err)
			}
			if card.Kind() != tt.want {
				t.Errorf("Kind() = %q, want %q", card.Kind(), tt.want)
			}
		})
	}
}

func TestDecodeCard_UnknownTag(t *testing.T) {
	t.Parallel()

	_, err := DecodeCard([]byte(`{"cardType":"hologram"}`))
	if err == nil {
		t.Fatal("expected error for unknown cardType")
	}
	if !strings.Contains(err.Error(), "hologram") {
		t.Errorf("error = %v, want mention of the unknown tag", err)
	}

	if _, err := DecodeCard([]byte(`{"name":"no tag"}`)); err == nil {
		t.Fatal("expected error for missing cardType")
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	t.Parallel()

	in := Envelope{
		Text:     "Here are the nearest options.",
		Language: English,
		Safety: SafetyInfo{
			Disclaimer: "General guidance only.",
			RedFlags:   []string{"Chest pain with coughing"},
			Urgency:    UrgencyER,
		},
		Cards: []Card{
			&FacilityCard{
				CardType:   CardFacility,
				FacilityID: "bmc",
				Name:       "Bicol Medical Center",
				Address:    "Concepcion Pequeña, Naga City",
			},
			&RouteCard{
				CardType:       CardRoute,
				From:           RouteEndpoint{Lat: 13.62, Lng: 123.19, Label: "Your Location"},
				To:             RouteEndpoint{Lat: 13.63, Lng: 123.18, Label: "Bicol Medical Center"},
				GeoJSONLine:    GeoJSONLineString{Type: "LineString", Coordinates: [][2]float64{{123.19, 13.62}}},
				DistanceMeters: 1500,
				Profile:        "driving",
			},
		},
		SessionID: "01J0000000000000000000000",
		Timestamp: "2026-08-28T10:00:00Z",
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Envelope
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Text != in.Text || out.Language != in.Language || out.SessionID != in.SessionID {
		t.Errorf("scalar fields round-trip mismatch: %+v", out)
	}
	if out.Safety.Urgency != UrgencyER {
		t.Errorf("Urgency = %q, want er", out.Safety.Urgency)
	}
	if len(out.Cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(out.Cards))
	}

	fac, ok := out.Cards[0].(*FacilityCard)
	if !ok {
		t.Fatalf("Cards[0] is %T, want *FacilityCard", out.Cards[0])
	}
	if fac.Name != "Bicol Medical Center" {
		t.Errorf("facility name = %q", fac.Name)
	}

	route, ok := out.Cards[1].(*RouteCard)
	if !ok {
		t.Fatalf("Cards[1] is %T, want *RouteCard", out.Cards[1])
	}
	if route.From.Label != "Your Location" || route.DistanceMeters != 1500 {
		t.Errorf("route round-trip mismatch: %+v", route)
	}
}

func TestEnvelope_UnmarshalRejectsUnknownCard(t *testing.T) {
	t.Parallel()

	raw := `{"text":"hi","language":"english","safety":{},"cards":[{"cardType":"hologram"}]}`

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil {
		t.Fatal("expected error for unknown card in envelope")
	}
}
