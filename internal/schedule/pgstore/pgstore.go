// Package pgstore provides a PostgreSQL implementation of schedule.Store.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/schedule"
)

var tracer = otel.Tracer("github.com/linnemanlabs/gabay/internal/schedule/pgstore")

//go:embed schema.sql
var schema string

// Store reads doctor availability and records bookings in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New applies the schema and returns a ready Store.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool, now: time.Now}, nil
}

// NextSchedule implements schedule.Store.
func (s *Store) NextSchedule(ctx context.Context, facilityID string) (*assistant.ScheduleCard, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.NextSchedule", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("gabay.facility.id", facilityID),
	))
	defer span.End()

	// Doctor with the soonest open slot wins.
	var (
		doctorID   string
		doctorName string
		spec       string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT d.id, d.name, d.specialization
		FROM doctors d
		JOIN slots sl ON sl.doctor_id = d.id
		WHERE d.facility_id = $1 AND NOT sl.booked AND sl.start_time > $2
		GROUP BY d.id, d.name, d.specialization
		ORDER BY min(sl.start_time)
		LIMIT 1`,
		facilityID, s.now()).Scan(&doctorID, &doctorName, &spec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("select doctor: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, start_time, end_time
		FROM slots
		WHERE doctor_id = $1 AND NOT booked AND start_time > $2
		ORDER BY start_time
		LIMIT $3`,
		doctorID, s.now(), schedule.MaxSlots)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("select slots: %w", err)
	}
	defer rows.Close()

	var slots []assistant.ScheduleSlot
	for rows.Next() {
		var (
			id         string
			start, end time.Time
		)
		if err := rows.Scan(&id, &start, &end); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, false, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, assistant.ScheduleSlot{
			SlotID:    id,
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
			Available: true,
		})
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("iterate slots: %w", err)
	}
	if len(slots) == 0 {
		return nil, false, nil
	}

	return &assistant.ScheduleCard{
		CardType:     assistant.CardSchedule,
		FacilityID:   facilityID,
		DoctorID:     doctorID,
		DoctorName:   doctorName,
		HumanSummary: schedule.Summary(len(slots), doctorName, spec),
		Slots:        slots,
	}, true, nil
}

// Book implements schedule.Store. A conflict (slot already taken or
// unknown) yields a failed card rather than an error.
func (s *Store) Book(ctx context.Context, facilityID, slotID, patientName string) (*assistant.BookingCard, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Book", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("gabay.facility.id", facilityID),
		attribute.String("gabay.slot.id", slotID),
	))
	defer span.End()

	var (
		doctorID   string
		doctorName string
		start, end time.Time
	)
	err := s.pool.QueryRow(ctx, `
		UPDATE slots sl
		SET booked = TRUE, patient_name = $3
		FROM doctors d
		WHERE sl.id = $2 AND sl.doctor_id = d.id AND d.facility_id = $1 AND NOT sl.booked
		RETURNING d.id, d.name, sl.start_time, sl.end_time`,
		facilityID, slotID, patientName).Scan(&doctorID, &doctorName, &start, &end)
	if errors.Is(err, pgx.ErrNoRows) {
		return &assistant.BookingCard{
			CardType:     assistant.CardBooking,
			FacilityID:   facilityID,
			Status:       assistant.BookingFailed,
			ErrorMessage: "This slot is no longer available. Please pick another time.",
		}, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("book slot: %w", err)
	}

	return &assistant.BookingCard{
		CardType:   assistant.CardBooking,
		DoctorID:   doctorID,
		DoctorName: doctorName,
		FacilityID: facilityID,
		SelectedSlot: &assistant.ScheduleSlot{
			SlotID:    slotID,
			StartTime: start.Format(time.RFC3339),
			EndTime:   end.Format(time.RFC3339),
		},
		Status:        assistant.BookingBooked,
		AppointmentID: fmt.Sprintf("appt-%s", slotID),
	}, nil
}
