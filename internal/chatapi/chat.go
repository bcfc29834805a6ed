package chatapi

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/orchestrator"
)

// chatRequest is one inbound chat turn.
type chatRequest struct {
	Message   string                  `json:"message"`
	Language  string                  `json:"language,omitempty"`
	SessionID string                  `json:"sessionId,omitempty"`
	Location  *assistant.UserLocation `json:"location,omitempty"`
	// WantsBooking asks for appointment slots alongside facility results.
	WantsBooking bool   `json:"wantsBooking,omitempty"`
	FacilityID   string `json:"facilityId,omitempty"`
	SlotID       string `json:"slotId,omitempty"`
	PatientName  string `json:"patientName,omitempty"`
}

func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
		return
	}

	if req.SessionID == "" {
		req.SessionID = ulid.Make().String()
	}
	lang := assistant.NormalizeLanguage(req.Language)

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("gabay.session.id", req.SessionID),
		attribute.String("gabay.language", string(lang)),
		attribute.Bool("gabay.booking", req.WantsBooking || req.SlotID != ""),
	)

	// The model only supplies conversational text. Safety content and
	// cards are attached deterministically by the orchestrator.
	reply, err := a.llm.Reply(r.Context(), req.Message, lang)
	if err != nil {
		a.logger.Error(r.Context(), err, "llm reply failed", "session_id", req.SessionID)
		http.Error(w, `{"error":"assistant unavailable"}`, http.StatusBadGateway)
		return
	}

	env := a.orch.Respond(r.Context(), orchestrator.Request{
		UserMessage:  req.Message,
		LLMReply:     reply,
		Language:     lang,
		Location:     req.Location,
		WantsBooking: req.WantsBooking,
		FacilityID:   req.FacilityID,
		SlotID:       req.SlotID,
		PatientName:  req.PatientName,
		SessionID:    req.SessionID,
	})

	span.SetAttributes(
		attribute.String("gabay.urgency", string(env.Safety.Urgency)),
		attribute.Int("gabay.cards", len(env.Cards)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(env)
}
