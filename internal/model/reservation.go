package model

import "time"

// Package tiers offered for party bookings.  Each tier has a weekday and a
// weekend price in the pricing configuration.  Mini covers up to 30 guests,
// medium up to 60 and full up to 80.
const (
	PackageMini   = "mini"
	PackageMedium = "medium"
	PackageFull   = "full"
)

// Time slots available for a party.  A park hosts at most one party per
// slot per day, which is why (serviceDate, timeSlot, park) must be unique.
const (
	SlotMorning   = "10am-1pm"
	SlotAfternoon = "2pm-5pm"
	SlotEvening   = "6pm-9pm"
)

// Physical park locations of the chain.
const (
	ParkMaracaibo = "Maracaibo"
	ParkCaracas   = "Caracas"
	ParkPuntoFijo = "Punto Fijo"
)

// Reservation lifecycle states.  New bookings start out pending until an
// administrator approves or cancels them.  Transitions are not guarded; an
// administrator may move a reservation between any two states, including
// cancelled back to pending.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Packages, TimeSlots, Parks and Statuses list the closed enum sets in a
// fixed order.  Analytics iterates these slices so that ties between
// equally popular values break deterministically.
var (
	Packages  = []string{PackageMini, PackageMedium, PackageFull}
	TimeSlots = []string{SlotMorning, SlotAfternoon, SlotEvening}
	Parks     = []string{ParkMaracaibo, ParkCaracas, ParkPuntoFijo}
	Statuses  = []string{StatusPending, StatusApproved, StatusCancelled}
)

// ValidPackage reports whether p is one of the known package tiers.
func ValidPackage(p string) bool { return contains(Packages, p) }

// ValidTimeSlot reports whether s is one of the bookable time slots.
func ValidTimeSlot(s string) bool { return contains(TimeSlots, s) }

// ValidPark reports whether p is one of the park locations.
func ValidPark(p string) bool { return contains(Parks, p) }

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s string) bool { return contains(Statuses, s) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Reservation is a party booking at one of the parks.  The price is never
// stored on the record; it is derived on demand from the package, the
// service date and the current pricing configuration, so historical rows
// re-price when an administrator changes the price tables.
//
// ServiceDate is a date-only string in YYYY-MM-DD form.  It is deliberately
// never combined with a time of day or timezone: weekday derivation parses
// the literal components, which keeps the calendar day stable regardless of
// the server's zone.
type Reservation struct {
	ID             string    `json:"id" bson:"_id"`
	CustomerName   string    `json:"customerName" bson:"customerName"`
	Email          string    `json:"email" bson:"email"`
	Phone          string    `json:"phone" bson:"phone"`
	Package        string    `json:"package" bson:"package"`
	ServiceDate    string    `json:"serviceDate" bson:"serviceDate"`
	TimeSlot       string    `json:"timeSlot" bson:"timeSlot"`
	Park           string    `json:"park" bson:"park"`
	LocationRegion string    `json:"locationRegion" bson:"locationRegion"`
	EventType      string    `json:"eventType" bson:"eventType"`
	Status         string    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// ReservationUpdate carries the editable fields of a reservation for the
// admin edit form.  Status is intentionally absent: status changes go
// through a separate explicit operation and an edit must never touch it.
type ReservationUpdate struct {
	CustomerName   string `json:"customerName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Package        string `json:"package"`
	ServiceDate    string `json:"serviceDate"`
	TimeSlot       string `json:"timeSlot"`
	Park           string `json:"park"`
	LocationRegion string `json:"locationRegion"`
	EventType      string `json:"eventType"`
}
