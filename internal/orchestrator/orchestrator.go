// Package orchestrator assembles one chat turn: it runs triage over the
// user's message, then fans out to the facility, routing, and schedule
// collaborators to attach structured cards to the reply envelope.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/facilities"
	"github.com/linnemanlabs/gabay/internal/geo"
	"github.com/linnemanlabs/gabay/internal/routing"
	"github.com/linnemanlabs/gabay/internal/triage"
)

// Per-collaborator budgets. A slow collaborator costs its card, never the
// whole reply.
const (
	facilityTimeout = 5 * time.Second
	routeTimeout    = 10 * time.Second
	scheduleTimeout = 5 * time.Second
	geocodeTimeout  = 8 * time.Second
)

// facilityCardLimit caps how many facility cards one envelope carries.
const facilityCardLimit = 2

// FacilitySearcher finds nearby facilities.
type FacilitySearcher interface {
	Search(ctx context.Context, q facilities.Query) ([]assistant.FacilityCard, error)
}

// Router fetches directions between two points.
type Router interface {
	Route(ctx context.Context, from, to geo.Point, profile routing.Profile) (*assistant.RouteCard, error)
}

// Scheduler reads doctor availability and books slots.
type Scheduler interface {
	NextSchedule(ctx context.Context, facilityID string) (*assistant.ScheduleCard, bool, error)
	Book(ctx context.Context, facilityID, slotID, patientName string) (*assistant.BookingCard, error)
}

// Geocoder resolves free-text locations to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, text string) (geo.Point, error)
}

// Request is one chat turn to orchestrate. LLMReply is the already
// generated conversational text; the orchestrator only decorates it.
type Request struct {
	UserMessage string
	LLMReply    string
	Language    assistant.Language
	Location    *assistant.UserLocation
	// WantsBooking is the caller's explicit ask for appointment slots; the
	// schedule collaborator is never consulted without it.
	WantsBooking bool
	FacilityID   string
	SlotID       string
	PatientName  string
	SessionID    string
}

// Orchestrator wires triage to the collaborators. All collaborators are
// optional; a missing one simply produces no cards of that kind.
type Orchestrator struct {
	logger     log.Logger
	engine     *triage.Engine
	facilities FacilitySearcher
	router     Router
	scheduler  Scheduler
	geocoder   Geocoder
	cityName   string
	centroid   geo.Point
	now        func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFacilities sets the facility search collaborator.
func WithFacilities(s FacilitySearcher) Option { return func(o *Orchestrator) { o.facilities = s } }

// WithRouter sets the directions collaborator.
func WithRouter(r Router) Option { return func(o *Orchestrator) { o.router = r } }

// WithScheduler sets the availability/booking collaborator.
func WithScheduler(s Scheduler) Option { return func(o *Orchestrator) { o.scheduler = s } }

// WithGeocoder sets the manual-location resolver.
func WithGeocoder(g Geocoder) Option { return func(o *Orchestrator) { o.geocoder = g } }

// New creates an Orchestrator around a triage engine. cityName and
// centroid describe the service area and anchor location-less routing.
func New(logger log.Logger, engine *triage.Engine, cityName string, centroid geo.Point, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = log.Nop()
	}
	if engine == nil {
		panic(xerrors.New("triage engine is required"))
	}
	o := &Orchestrator{
		logger:   logger,
		engine:   engine,
		cityName: cityName,
		centroid: centroid,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var (
	facilityIntentRe = regexp.MustCompile(`(?i)\b(nearest|near|nearby|hospital|clinic|health\s*center|facility|pharmacy|doctor|directions|route|map|book|booking|schedule|appointment)\b`)
	hospitalRe       = regexp.MustCompile(`(?i)\bhospital\b`)
	pharmacyRe       = regexp.MustCompile(`(?i)\b(pharmacy|botica|drugstore)\b`)
)

const facilityLeadText = "Here are the nearest options based on your location, plus directions and available appointment slots."

// outOfBoundsNote is appended to the safety disclaimer when directions
// fall outside the service area.
var outOfBoundsNote = map[assistant.Language]string{
	assistant.English: "Note: directions are only available within %s.",
	assistant.Tagalog: "Paalala: ang direksyon ay makukuha lamang sa loob ng %s.",
	assistant.Bikol:   "Girumdom: an direksyon makukua sana sa laog kan %s.",
}

var tracer = otel.Tracer("github.com/linnemanlabs/gabay/internal/orchestrator")

// Respond builds the envelope for one turn. It never returns an error:
// collaborator failures degrade to a reply without the affected card.
func (o *Orchestrator) Respond(ctx context.Context, req Request) *assistant.Envelope {
	ctx, span := tracer.Start(ctx, "orchestrator.Respond", trace.WithAttributes(
		attribute.String("gabay.session.id", req.SessionID),
	))
	defer span.End()

	env := o.respond(ctx, req)

	span.SetAttributes(
		attribute.String("gabay.language", string(env.Language)),
		attribute.String("gabay.urgency", string(env.Safety.Urgency)),
		attribute.Int("gabay.cards", len(env.Cards)),
	)
	return env
}

func (o *Orchestrator) respond(ctx context.Context, req Request) *assistant.Envelope {
	lang := assistant.NormalizeLanguage(string(req.Language))

	env := &assistant.Envelope{
		Text:      req.LLMReply,
		Language:  lang,
		Cards:     []assistant.Card{},
		SessionID: req.SessionID,
		Timestamp: o.now().UTC().Format(time.RFC3339),
	}

	// Non-health chat passes through untouched: no safety block, no cards.
	if !o.engine.IsHealthRelated(req.UserMessage) {
		return env
	}

	result := o.engine.Triage(req.UserMessage, lang)
	env.Safety = result.Safety

	if result.MedicationCard != nil {
		env.Cards = append(env.Cards, result.MedicationCard)
	}

	wantsFacility := facilityIntentRe.MatchString(req.UserMessage) || req.WantsBooking
	wantsSchedule := req.WantsBooking || req.SlotID != ""

	// Facility-seeking turns get the canned lead text instead; clarifying
	// questions only make sense on a conversational reply.
	if !wantsFacility {
		if qs := result.FollowUpQuestions; len(qs) > 0 {
			env.Text = env.Text + "\n\n" + strings.Join(qs, "\n")
		}
	}

	// Augmentation needs a location plus either a detected symptom or an
	// explicit facility ask.
	if !req.Location.HasAny() {
		return env
	}
	if len(result.DetectedSymptoms) == 0 && !wantsFacility {
		return env
	}

	facilityType := o.facilityType(req.UserMessage, result.FacilityType)
	if facilityType == "" && !wantsFacility {
		return env
	}

	found := o.searchFacilities(ctx, req.Location, facilityType)
	if len(found) == 0 {
		return env
	}

	if wantsFacility {
		env.Text = facilityLeadText
	}

	shown := found
	if len(shown) > facilityCardLimit {
		shown = shown[:facilityCardLimit]
	}
	for i := range shown {
		env.Cards = append(env.Cards, &shown[i])
	}

	nearest := found[0]

	// Directions and availability are independent lookups; fetch both at
	// once.
	var (
		wg        sync.WaitGroup
		routeCard *assistant.RouteCard
		schedCard *assistant.ScheduleCard
		outOfArea bool
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		routeCard, outOfArea = o.route(ctx, req, result, nearest)
	}()

	if o.scheduler != nil && wantsSchedule && result.Safety.Urgency != assistant.UrgencyER {
		wg.Add(1)
		go func() {
			defer wg.Done()
			schedCard = o.nextSchedule(ctx, nearest.FacilityID)
		}()
	}

	wg.Wait()

	if routeCard != nil {
		env.Cards = append(env.Cards, routeCard)
	}
	if outOfArea {
		note := fmt.Sprintf(noteFor(lang), o.cityName)
		if env.Safety.Disclaimer != "" {
			env.Safety.Disclaimer += "\n\n" + note
		} else {
			env.Safety.Disclaimer = note
		}
	}
	if schedCard != nil {
		env.Cards = append(env.Cards, schedCard)
		for _, slot := range schedCard.Slots {
			if !slot.Available {
				continue
			}
			if start, err := time.Parse(time.RFC3339, slot.StartTime); err == nil {
				env.Text += fmt.Sprintf("\n\nNext available slot: %s. Select a time below to book.",
					start.Format("Mon, Jan 2, 3:04 PM"))
			}
			break
		}
	}

	if req.SlotID != "" && o.scheduler != nil {
		facilityID := req.FacilityID
		if facilityID == "" {
			facilityID = nearest.FacilityID
		}
		if card := o.book(ctx, facilityID, req.SlotID, req.PatientName); card != nil {
			env.Cards = append(env.Cards, card)
		}
	}

	return env
}

// facilityType maps triage output and explicit phrasing to a store type
// filter. Triage wins; explicit phrasing only fills the gap.
func (o *Orchestrator) facilityType(message string, t triage.FacilityType) string {
	switch t {
	case triage.FacilityER:
		// The store taxonomy has no ER type; emergencies go to hospitals.
		return "hospital"
	case triage.FacilityHospital:
		return "hospital"
	case triage.FacilityClinic:
		return "health_center"
	}
	switch {
	case hospitalRe.MatchString(message):
		return "hospital"
	case pharmacyRe.MatchString(message):
		return "pharmacy"
	}
	return ""
}

// searchFacilities queries by GPS when present, else by the barangay part
// of the manual location. An empty barangay-scoped result retries city
// wide once.
func (o *Orchestrator) searchFacilities(ctx context.Context, loc *assistant.UserLocation, facilityType string) []assistant.FacilityCard {
	if o.facilities == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, facilityTimeout)
	defer cancel()

	q := facilities.Query{Type: facilityType}
	if loc.HasCoords() {
		q.NearLat = loc.Lat
		q.NearLng = loc.Lng
		q.HasCoords = true
	} else if loc.HasAny() {
		q.Barangay = barangayOf(loc.ManualText)
	}

	found, err := o.facilities.Search(ctx, q)
	if err != nil {
		o.logger.Error(ctx, err, "facility search failed", "type", facilityType)
		return nil
	}

	if len(found) == 0 && q.Barangay != "" {
		q.Barangay = ""
		found, err = o.facilities.Search(ctx, q)
		if err != nil {
			o.logger.Error(ctx, err, "facility retry failed", "type", facilityType)
			return nil
		}
	}
	return found
}

// route fetches directions from the user's position to the nearest found
// facility. The second return is true when an endpoint was outside the
// service area.
func (o *Orchestrator) route(ctx context.Context, req Request, result *triage.Result, dest assistant.FacilityCard) (*assistant.RouteCard, bool) {
	if o.router == nil || dest.Lat == 0 && dest.Lng == 0 {
		return nil, false
	}

	from, fromLabel := o.startPoint(ctx, req.Location)

	profile := routing.ProfileWalking
	if result.Safety.Urgency == assistant.UrgencyER {
		profile = routing.ProfileDriving
	}

	ctx, cancel := context.WithTimeout(ctx, routeTimeout)
	defer cancel()

	card, err := o.router.Route(ctx, from, geo.Point{Lat: dest.Lat, Lng: dest.Lng}, profile)
	if err != nil {
		if errors.Is(err, routing.ErrOutOfBounds) {
			return nil, true
		}
		o.logger.Error(ctx, err, "route lookup failed", "facility_id", dest.FacilityID)
		return nil, false
	}

	card.From.Label = fromLabel
	card.To.Label = dest.Name
	return card, false
}

// startPoint resolves the route origin: GPS first, then a geocoded manual
// location, then the city centroid.
func (o *Orchestrator) startPoint(ctx context.Context, loc *assistant.UserLocation) (geo.Point, string) {
	if loc.HasCoords() {
		return geo.Point{Lat: loc.Lat, Lng: loc.Lng}, "Your Location"
	}

	if loc.HasAny() && o.geocoder != nil {
		gctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
		defer cancel()
		if p, err := o.geocoder.Lookup(gctx, loc.ManualText); err == nil {
			return p, "Approximate start (manual location)"
		} else {
			o.logger.Warn(gctx, "geocode failed, using city centroid", "text", loc.ManualText, "error", err)
		}
	}

	return o.centroid, o.cityName + " center"
}

func (o *Orchestrator) nextSchedule(ctx context.Context, facilityID string) *assistant.ScheduleCard {
	ctx, cancel := context.WithTimeout(ctx, scheduleTimeout)
	defer cancel()

	card, ok, err := o.scheduler.NextSchedule(ctx, facilityID)
	if err != nil {
		o.logger.Error(ctx, err, "schedule lookup failed", "facility_id", facilityID)
		return nil
	}
	if !ok {
		return nil
	}
	return card
}

func (o *Orchestrator) book(ctx context.Context, facilityID, slotID, patientName string) *assistant.BookingCard {
	ctx, cancel := context.WithTimeout(ctx, scheduleTimeout)
	defer cancel()

	card, err := o.scheduler.Book(ctx, facilityID, slotID, patientName)
	if err != nil {
		o.logger.Error(ctx, err, "booking failed", "facility_id", facilityID, "slot_id", slotID)
		return nil
	}
	return card
}

// barangayOf extracts the locality label: everything before the first
// comma of a manual location like "Barangay Abella, Naga City".
func barangayOf(manual string) string {
	if i := strings.Index(manual, ","); i >= 0 {
		manual = manual[:i]
	}
	return strings.TrimSpace(manual)
}

func noteFor(lang assistant.Language) string {
	if n, ok := outOfBoundsNote[lang]; ok {
		return n
	}
	return outOfBoundsNote[assistant.Tagalog]
}
