// Package memstore provides an in-memory implementation of schedule.Store.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/schedule"
)

// Doctor is one seeded doctor record.
type Doctor struct {
	ID             string
	FacilityID     string
	Name           string
	Specialization string
}

// Slot is one seeded appointment slot.
type Slot struct {
	ID          string
	DoctorID    string
	Start       time.Time
	End         time.Time
	Booked      bool
	PatientName string
}

// Store holds doctors and slots in memory. Suitable for dev/testing.
type Store struct {
	mu      sync.Mutex
	doctors []Doctor
	slots   map[string]*Slot
}

// New initializes a Store with the given records. With no doctors, a seed
// roster with slots over the next two days is generated.
func New(doctors []Doctor, slots []Slot) *Store {
	if len(doctors) == 0 {
		doctors, slots = seed(time.Now())
	}
	s := &Store{
		doctors: doctors,
		slots:   make(map[string]*Slot, len(slots)),
	}
	for _, sl := range slots {
		cp := sl
		s.slots[sl.ID] = &cp
	}
	return s
}

// NextSchedule implements schedule.Store.
func (s *Store) NextSchedule(_ context.Context, facilityID string) (*assistant.ScheduleCard, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	// Doctor with the soonest open slot wins.
	var (
		best      *Doctor
		bestStart time.Time
	)
	for i := range s.doctors {
		d := &s.doctors[i]
		if d.FacilityID != facilityID {
			continue
		}
		for _, sl := range s.slots {
			if sl.DoctorID != d.ID || sl.Booked || !sl.Start.After(now) {
				continue
			}
			if best == nil || sl.Start.Before(bestStart) {
				best = d
				bestStart = sl.Start
			}
		}
	}
	if best == nil {
		return nil, false, nil
	}

	var open []*Slot
	for _, sl := range s.slots {
		if sl.DoctorID == best.ID && !sl.Booked && sl.Start.After(now) {
			open = append(open, sl)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Start.Before(open[j].Start) })
	if len(open) > schedule.MaxSlots {
		open = open[:schedule.MaxSlots]
	}

	slots := make([]assistant.ScheduleSlot, 0, len(open))
	for _, sl := range open {
		slots = append(slots, assistant.ScheduleSlot{
			SlotID:    sl.ID,
			StartTime: sl.Start.Format(time.RFC3339),
			EndTime:   sl.End.Format(time.RFC3339),
			Available: true,
		})
	}

	return &assistant.ScheduleCard{
		CardType:     assistant.CardSchedule,
		FacilityID:   facilityID,
		DoctorID:     best.ID,
		DoctorName:   best.Name,
		HumanSummary: schedule.Summary(len(slots), best.Name, best.Specialization),
		Slots:        slots,
	}, true, nil
}

// Book implements schedule.Store.
func (s *Store) Book(_ context.Context, facilityID, slotID, patientName string) (*assistant.BookingCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[slotID]
	if ok {
		if d := s.doctor(sl.DoctorID); d == nil || d.FacilityID != facilityID {
			ok = false
		}
	}
	if !ok || sl.Booked {
		return &assistant.BookingCard{
			CardType:     assistant.CardBooking,
			FacilityID:   facilityID,
			Status:       assistant.BookingFailed,
			ErrorMessage: "This slot is no longer available. Please pick another time.",
		}, nil
	}

	sl.Booked = true
	sl.PatientName = patientName

	d := s.doctor(sl.DoctorID)
	return &assistant.BookingCard{
		CardType:   assistant.CardBooking,
		DoctorID:   d.ID,
		DoctorName: d.Name,
		FacilityID: facilityID,
		SelectedSlot: &assistant.ScheduleSlot{
			SlotID:    sl.ID,
			StartTime: sl.Start.Format(time.RFC3339),
			EndTime:   sl.End.Format(time.RFC3339),
		},
		Status:        assistant.BookingBooked,
		AppointmentID: fmt.Sprintf("appt-%s", sl.ID),
	}, nil
}

func (s *Store) doctor(id string) *Doctor {
	for i := range s.doctors {
		if s.doctors[i].ID == id {
			return &s.doctors[i]
		}
	}
	return nil
}

// seed generates a small roster with 30-minute slots starting tomorrow
// morning.
func seed(now time.Time) ([]Doctor, []Slot) {
	doctors := []Doctor{
		{ID: "doc-santos", FacilityID: "nch", Name: "Maria Santos", Specialization: "General Medicine"},
		{ID: "doc-reyes", FacilityID: "nch", Name: "Jose Reyes", Specialization: "Internal Medicine"},
		{ID: "doc-cruz", FacilityID: "mmh", Name: "Ana Cruz", Specialization: "Pediatrics"},
		{ID: "doc-villanueva", FacilityID: "hc-concepcion", Name: "Ramon Villanueva", Specialization: "Family Medicine"},
	}

	var slots []Slot
	day := now.Add(24 * time.Hour)
	morning := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())
	for _, d := range doctors {
		for i := 0; i < 4; i++ {
			start := morning.Add(time.Duration(i) * 30 * time.Minute)
			slots = append(slots, Slot{
				ID:       fmt.Sprintf("%s-%d", d.ID, i),
				DoctorID: d.ID,
				Start:    start,
				End:      start.Add(30 * time.Minute),
			})
		}
	}
	return doctors, slots
}
