// Package schedule provides doctor availability and appointment booking
// for health facilities.
package schedule

import (
	"context"
	"fmt"

	"github.com/linnemanlabs/gabay/internal/assistant"
)

// MaxSlots caps how many upcoming slots a schedule card lists.
const MaxSlots = 5

// Store is the availability and booking interface.
//
// NextSchedule returns the card for the doctor with the soonest open slot
// at a facility; ok is false when no doctor there has availability. Book
// attempts to reserve a slot; conflicts come back as a card with status
// failed, not as an error. Errors are reserved for infrastructure
// failures.
type Store interface {
	NextSchedule(ctx context.Context, facilityID string) (*assistant.ScheduleCard, bool, error)
	Book(ctx context.Context, facilityID, slotID, patientName string) (*assistant.BookingCard, error)
}

// Summary renders the one-line availability text shown above the slot
// picker.
func Summary(available int, doctorName, specialization string) string {
	return fmt.Sprintf("%d available slot(s) with Dr. %s (%s)", available, doctorName, specialization)
}
