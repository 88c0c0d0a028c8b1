package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brincapark/reservations-api/internal/model"
	"github.com/brincapark/reservations-api/internal/repository"
)

// mockReservationStore implements ReservationStore with overridable
// function fields.  Unset fields behave like an empty collection.
type mockReservationStore struct {
	createFn       func(ctx context.Context, res *model.Reservation) error
	findAllFn      func(ctx context.Context) ([]model.Reservation, error)
	findByIDFn     func(ctx context.Context, id string) (*model.Reservation, error)
	findBySlotFn   func(ctx context.Context, date, slot, park string) (*model.Reservation, error)
	findSlotsFn    func(ctx context.Context, date, park string) ([]string, error)
	updateFn       func(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error)
	updateStatusFn func(ctx context.Context, id, status string) (*model.Reservation, error)
	deleteFn       func(ctx context.Context, id string) (*model.Reservation, error)
}

func (m *mockReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	if m.createFn != nil {
		return m.createFn(ctx, res)
	}
	res.ID = "generated-id"
	return nil
}

func (m *mockReservationStore) FindAll(ctx context.Context) ([]model.Reservation, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []model.Reservation{}, nil
}

func (m *mockReservationStore) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockReservationStore) FindBySlot(ctx context.Context, date, slot, park string) (*model.Reservation, error) {
	if m.findBySlotFn != nil {
		return m.findBySlotFn(ctx, date, slot, park)
	}
	return nil, repository.ErrNotFound
}

func (m *mockReservationStore) FindSlots(ctx context.Context, date, park string) ([]string, error) {
	if m.findSlotsFn != nil {
		return m.findSlotsFn(ctx, date, park)
	}
	return []string{}, nil
}

func (m *mockReservationStore) Update(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, upd)
	}
	return nil, repository.ErrNotFound
}

func (m *mockReservationStore) UpdateStatus(ctx context.Context, id, status string) (*model.Reservation, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil, repository.ErrNotFound
}

func (m *mockReservationStore) Delete(ctx context.Context, id string) (*model.Reservation, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

// mockConfigStore serves a fixed configuration value.
type mockConfigStore struct {
	cfg model.Config
}

func (m *mockConfigStore) Get(ctx context.Context) (*model.Config, error) {
	c := m.cfg
	return &c, nil
}

func (m *mockConfigStore) Update(ctx context.Context, upd model.ConfigUpdate) (*model.Config, error) {
	m.cfg = repository.Merge(m.cfg, upd)
	c := m.cfg
	return &c, nil
}

func validBooking() *model.Reservation {
	return &model.Reservation{
		CustomerName:   "Maria Perez",
		Email:          "maria@example.com",
		Phone:          "04141234567",
		Package:        model.PackageMini,
		ServiceDate:    "2024-06-10",
		TimeSlot:       model.SlotMorning,
		Park:           model.ParkMaracaibo,
		LocationRegion: "Zulia",
		EventType:      "birthday",
	}
}

func TestCreateReservation_Success(t *testing.T) {
	store := &mockReservationStore{}
	svc := NewReservationService(store, nil)

	res, err := svc.Create(context.Background(), validBooking())

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, "generated-id", res.ID)
}

func TestCreateReservation_SlotTaken(t *testing.T) {
	created := false
	store := &mockReservationStore{
		findBySlotFn: func(ctx context.Context, date, slot, park string) (*model.Reservation, error) {
			return &model.Reservation{ID: "other"}, nil
		},
		createFn: func(ctx context.Context, res *model.Reservation) error {
			created = true
			return nil
		},
	}
	svc := NewReservationService(store, nil)

	_, err := svc.Create(context.Background(), validBooking())

	assert.ErrorIs(t, err, repository.ErrSlotTaken)
	assert.False(t, created)
}

func TestCreateReservation_Validation(t *testing.T) {
	svc := NewReservationService(&mockReservationStore{}, nil)

	cases := []struct {
		field  string
		mutate func(r *model.Reservation)
	}{
		{"customerName", func(r *model.Reservation) { r.CustomerName = "Ab" }},
		{"email", func(r *model.Reservation) { r.Email = "not an email" }},
		{"phone", func(r *model.Reservation) { r.Phone = "123" }},
		{"package", func(r *model.Reservation) { r.Package = "mega" }},
		{"serviceDate", func(r *model.Reservation) { r.ServiceDate = "" }},
		{"timeSlot", func(r *model.Reservation) { r.TimeSlot = "midnight" }},
		{"park", func(r *model.Reservation) { r.Park = "Valencia" }},
		{"locationRegion", func(r *model.Reservation) { r.LocationRegion = "" }},
		{"eventType", func(r *model.Reservation) { r.EventType = "" }},
	}
	for _, tc := range cases {
		res := validBooking()
		tc.mutate(res)

		_, err := svc.Create(context.Background(), res)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, tc.field)
		assert.Equal(t, tc.field, verr.Field)
	}
}

func TestUpdateReservation_OwnSlotAllowed(t *testing.T) {
	existing := validBooking()
	existing.ID = "res-1"
	store := &mockReservationStore{
		findByIDFn: func(ctx context.Context, id string) (*model.Reservation, error) {
			return existing, nil
		},
		findBySlotFn: func(ctx context.Context, date, slot, park string) (*model.Reservation, error) {
			return existing, nil // the record itself occupies the slot
		},
		updateFn: func(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error) {
			out := *existing
			out.CustomerName = upd.CustomerName
			return &out, nil
		},
	}
	svc := NewReservationService(store, nil)

	upd := model.ReservationUpdate{
		CustomerName: "Maria P. Gonzalez", Email: existing.Email, Phone: existing.Phone,
		Package: existing.Package, ServiceDate: existing.ServiceDate, TimeSlot: existing.TimeSlot,
		Park: existing.Park, LocationRegion: existing.LocationRegion, EventType: existing.EventType,
	}
	res, err := svc.Update(context.Background(), "res-1", upd)

	assert.NoError(t, err)
	assert.Equal(t, "Maria P. Gonzalez", res.CustomerName)
}

func TestUpdateReservation_SlotConflict(t *testing.T) {
	existing := validBooking()
	existing.ID = "res-1"
	store := &mockReservationStore{
		findByIDFn: func(ctx context.Context, id string) (*model.Reservation, error) {
			return existing, nil
		},
		findBySlotFn: func(ctx context.Context, date, slot, park string) (*model.Reservation, error) {
			return &model.Reservation{ID: "res-2"}, nil
		},
	}
	svc := NewReservationService(store, nil)

	upd := model.ReservationUpdate{
		CustomerName: existing.CustomerName, Email: existing.Email, Phone: existing.Phone,
		Package: existing.Package, ServiceDate: existing.ServiceDate, TimeSlot: existing.TimeSlot,
		Park: existing.Park, LocationRegion: existing.LocationRegion, EventType: existing.EventType,
	}
	_, err := svc.Update(context.Background(), "res-1", upd)

	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestUpdateReservation_NotFound(t *testing.T) {
	svc := NewReservationService(&mockReservationStore{}, nil)

	upd := model.ReservationUpdate{
		CustomerName: "Maria Perez", Email: "maria@example.com", Phone: "04141234567",
		Package: model.PackageMini, ServiceDate: "2024-06-10", TimeSlot: model.SlotMorning,
		Park: model.ParkMaracaibo, LocationRegion: "Zulia", EventType: "birthday",
	}
	_, err := svc.Update(context.Background(), "missing", upd)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChangeStatus_AnyTransitionAllowed(t *testing.T) {
	existing := validBooking()
	existing.ID = "res-1"
	existing.Status = model.StatusCancelled
	store := &mockReservationStore{
		findByIDFn: func(ctx context.Context, id string) (*model.Reservation, error) {
			out := *existing
			return &out, nil
		},
		updateStatusFn: func(ctx context.Context, id, status string) (*model.Reservation, error) {
			out := *existing
			out.Status = status
			return &out, nil
		},
	}
	svc := NewReservationService(store, nil)

	// Reopening a cancelled reservation is allowed.
	res, err := svc.ChangeStatus(context.Background(), "res-1", model.StatusPending)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestChangeStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewReservationService(&mockReservationStore{}, nil)

	_, err := svc.ChangeStatus(context.Background(), "res-1", "archived")

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestDeleteReservation_NotFound(t *testing.T) {
	svc := NewReservationService(&mockReservationStore{}, nil)

	_, err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOccupiedSlots(t *testing.T) {
	store := &mockReservationStore{
		findSlotsFn: func(ctx context.Context, date, park string) ([]string, error) {
			return []string{model.SlotMorning, model.SlotEvening}, nil
		},
	}
	svc := NewReservationService(store, nil)

	slots, err := svc.OccupiedSlots(context.Background(), "2024-06-10", model.ParkCaracas)

	assert.NoError(t, err)
	assert.Equal(t, []string{model.SlotMorning, model.SlotEvening}, slots)
}

func TestOccupiedSlots_Validation(t *testing.T) {
	svc := NewReservationService(&mockReservationStore{}, nil)

	_, err := svc.OccupiedSlots(context.Background(), "", model.ParkCaracas)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "serviceDate", verr.Field)

	_, err = svc.OccupiedSlots(context.Background(), "2024-06-10", "Valencia")
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "park", verr.Field)
}
