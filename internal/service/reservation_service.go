package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"github.com/brincapark/reservations-api/internal/model"
	"github.com/brincapark/reservations-api/internal/queue"
	"github.com/brincapark/reservations-api/internal/repository"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{11}$`)
)

// ReservationService validates booking input, enforces the
// one-reservation-per-slot invariant and orchestrates the store.  The
// existence check before an insert is a fast path that produces a
// friendly conflict early; the unique index in storage remains the
// authoritative guard, and the repository maps a lost race to the same
// ErrSlotTaken.
type ReservationService struct {
	store     ReservationStore
	publisher Publisher // nil disables event publishing
}

// NewReservationService constructs a ReservationService.  The publisher
// may be nil when no broker is configured.
func NewReservationService(store ReservationStore, publisher Publisher) *ReservationService {
	if store == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{store: store, publisher: publisher}
}

// Create validates a public booking request, rejects it when the slot is
// already occupied and persists it with status pending.  The created
// reservation is returned and a reservation.created event is published
// best-effort.
func (s *ReservationService) Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	if err := validateReservation(res.CustomerName, res.Email, res.Phone, res.Package,
		res.ServiceDate, res.TimeSlot, res.Park, res.LocationRegion, res.EventType); err != nil {
		return nil, err
	}

	if err := s.checkSlotFree(ctx, res.ServiceDate, res.TimeSlot, res.Park, ""); err != nil {
		return nil, err
	}

	res.Status = model.StatusPending
	if err := s.store.Create(ctx, res); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		e := queue.ReservationCreatedEvent{
			ReservationID: res.ID,
			CustomerName:  res.CustomerName,
			Email:         res.Email,
			Package:       res.Package,
			ServiceDate:   res.ServiceDate,
			TimeSlot:      res.TimeSlot,
			Park:          res.Park,
			EventType:     res.EventType,
			CreatedAt:     res.CreatedAt.Format(time.RFC3339),
		}
		if err := s.publisher.ReservationCreated(ctx, e); err != nil {
			log.Printf("reservation %s created but event publish failed: %v", res.ID, err)
		}
	}
	return res, nil
}

// GetAll returns every reservation, newest first.
func (s *ReservationService) GetAll(ctx context.Context) ([]model.Reservation, error) {
	return s.store.FindAll(ctx)
}

// GetByID returns a single reservation or repository.ErrNotFound.
func (s *ReservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	return s.store.FindByID(ctx, id)
}

// Update edits the editable fields of an existing reservation.  The slot
// collision check runs against the proposed values and excludes the
// record being updated, so saving a reservation back to its own slot
// succeeds.  Status is never touched here.
func (s *ReservationService) Update(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error) {
	if err := validateReservation(upd.CustomerName, upd.Email, upd.Phone, upd.Package,
		upd.ServiceDate, upd.TimeSlot, upd.Park, upd.LocationRegion, upd.EventType); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkSlotFree(ctx, upd.ServiceDate, upd.TimeSlot, upd.Park, id); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, upd)
}

// ChangeStatus sets a reservation's status.  The status must be one of the
// known values but transitions are deliberately unguarded: approving a
// cancelled booking or reopening one as pending are both allowed.
func (s *ReservationService) ChangeStatus(ctx context.Context, id, status string) (*model.Reservation, error) {
	if !model.ValidStatus(status) {
		return nil, invalid("status", "must be pending, approved or cancelled")
	}

	before, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil && before.Status != status {
		e := queue.StatusChangedEvent{
			ReservationID: res.ID,
			CustomerName:  res.CustomerName,
			Park:          res.Park,
			ServiceDate:   res.ServiceDate,
			TimeSlot:      res.TimeSlot,
			OldStatus:     before.Status,
			NewStatus:     status,
			ChangedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.publisher.StatusChanged(ctx, e); err != nil {
			log.Printf("reservation %s status changed but event publish failed: %v", res.ID, err)
		}
	}
	return res, nil
}

// Delete removes a reservation and returns the removed value.
func (s *ReservationService) Delete(ctx context.Context, id string) (*model.Reservation, error) {
	return s.store.Delete(ctx, id)
}

// OccupiedSlots returns the time slots already booked for a date and park,
// used by the booking form to disable taken slots.
func (s *ReservationService) OccupiedSlots(ctx context.Context, date, park string) ([]string, error) {
	if date == "" {
		return nil, invalid("serviceDate", "is required")
	}
	if !model.ValidPark(park) {
		return nil, invalid("park", "unknown park location")
	}
	return s.store.FindSlots(ctx, date, park)
}

// checkSlotFree reports ErrSlotTaken when a reservation other than
// excludeID already occupies the slot.
func (s *ReservationService) checkSlotFree(ctx context.Context, date, slot, park, excludeID string) error {
	existing, err := s.store.FindBySlot(ctx, date, slot, park)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == excludeID {
		return nil
	}
	return repository.ErrSlotTaken
}

func validateReservation(name, email, phone, pkg, date, slot, park, region, eventType string) error {
	if len(name) < 3 {
		return invalid("customerName", "must be at least 3 characters")
	}
	if !emailPattern.MatchString(email) {
		return invalid("email", "invalid email format")
	}
	if !phonePattern.MatchString(phone) {
		return invalid("phone", "must be exactly 11 digits")
	}
	if !model.ValidPackage(pkg) {
		return invalid("package", "unknown package tier")
	}
	if date == "" {
		return invalid("serviceDate", "is required")
	}
	if !model.ValidTimeSlot(slot) {
		return invalid("timeSlot", "unknown time slot")
	}
	if !model.ValidPark(park) {
		return invalid("park", "unknown park location")
	}
	if region == "" {
		return invalid("locationRegion", "is required")
	}
	if eventType == "" {
		return invalid("eventType", "is required")
	}
	return nil
}
