// Package repository defines error values that are reused across the
// repositories. These sentinel values let higher layers such as handlers
// distinguish between failure scenarios without inspecting driver errors:
// ErrNotFound covers a lookup for a record that does not exist, while
// ErrSlotTaken signals that a (serviceDate, timeSlot, park) combination is
// already occupied by another reservation.
package repository

import "errors"

// ErrNotFound is returned when a reservation with the requested id does
// not exist. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken is returned when an insert or update would place two
// reservations on the same park, date and time slot. It is produced both
// by the service's existence check and by the unique index when a
// concurrent insert loses the race. Handlers should translate this into
// an HTTP 409 response.
var ErrSlotTaken = errors.New("slot already booked")
