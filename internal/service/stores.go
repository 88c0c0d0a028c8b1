package service

import (
	"context"

	"github.com/brincapark/reservations-api/internal/model"
	"github.com/brincapark/reservations-api/internal/queue"
)

// ReservationStore is the persistence contract the services depend on.
// The Mongo-backed repository satisfies it in production; tests supply
// in-memory fakes.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	FindAll(ctx context.Context) ([]model.Reservation, error)
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindBySlot(ctx context.Context, date, slot, park string) (*model.Reservation, error)
	FindSlots(ctx context.Context, date, park string) ([]string, error)
	Update(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Reservation, error)
	Delete(ctx context.Context, id string) (*model.Reservation, error)
}

// ConfigStore provides access to the pricing configuration singleton.
// Get never reports "missing": the singleton is created lazily with
// defaults on first access, so a missing configuration cannot occur by
// design.
type ConfigStore interface {
	Get(ctx context.Context) (*model.Config, error)
	Update(ctx context.Context, upd model.ConfigUpdate) (*model.Config, error)
}

// Publisher emits domain events to the message broker.  A nil Publisher
// disables publishing; failures are logged by the implementation and never
// interrupt the request that triggered the event.
type Publisher interface {
	ReservationCreated(ctx context.Context, e queue.ReservationCreatedEvent) error
	StatusChanged(ctx context.Context, e queue.StatusChangedEvent) error
}
