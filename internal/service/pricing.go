package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/brincapark/reservations-api/internal/model"
)

// The pricing engine is a set of pure functions over the configuration
// value.  Callers fetch the configuration through a ConfigStore and pass
// it in, so the engine itself holds no state and tests can price against a
// fixed configuration without touching storage.

// parseServiceDate splits a YYYY-MM-DD string into its literal integer
// components and builds a calendar date at local midnight.  Going through
// a timestamp parse (or worse, a timezone conversion) can shift the value
// across a day boundary and corrupt the derived weekday, which is exactly
// the off-by-one-day bug this avoids.
func parseServiceDate(date string) (time.Time, bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// IsWeekend reports whether the service date falls on a weekend for
// pricing purposes.  Weekend pricing starts on Friday: Friday, Saturday
// and Sunday all take the weekend price.  This is the business rule of the
// chain, not a calendar mistake.
func IsWeekend(date string) bool {
	t, ok := parseServiceDate(date)
	if !ok {
		return false
	}
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// CalculatePrice derives the USD price of a reservation from its package
// tier and service date under the given configuration.  An unknown
// package tier is a data-integrity error; it is never silently priced at
// zero.
func CalculatePrice(cfg *model.Config, res *model.Reservation) (float64, error) {
	var pair model.PackagePrice
	switch res.Package {
	case model.PackageMini:
		pair = cfg.Packages.Mini
	case model.PackageMedium:
		pair = cfg.Packages.Medium
	case model.PackageFull:
		pair = cfg.Packages.Full
	default:
		return 0, fmt.Errorf("unknown package tier %q", res.Package)
	}
	if IsWeekend(res.ServiceDate) {
		return pair.Weekend, nil
	}
	return pair.Weekday, nil
}

// round2 rounds to two decimal places the way the dashboard always has:
// scale by 100, round half away from zero, scale back.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToBs converts a USD amount to bolívares at the configured exchange rate,
// rounded to two decimals.
func ToBs(cfg *model.Config, usd float64) float64 {
	return round2(usd * cfg.ExchangeRate)
}

// DisplayPrice returns the amount in the currently active display
// currency: the USD value untouched when the configuration says USD, the
// BS conversion otherwise.
func DisplayPrice(cfg *model.Config, usd float64) float64 {
	if cfg.Currency == model.CurrencyBS {
		return ToBs(cfg, usd)
	}
	return usd
}

// ConvertedPrice reports a single price in both currencies together with
// the value in the active display currency.
type ConvertedPrice struct {
	USD    float64 `json:"USD"`
	BS     float64 `json:"BS"`
	Actual float64 `json:"actual"`
}

// PackagePriceView is the converted weekday/weekend pair of one package
// tier.
type PackagePriceView struct {
	Weekday ConvertedPrice `json:"weekday"`
	Weekend ConvertedPrice `json:"weekend"`
}

// PriceTable is the derived pricing view served to the booking form and
// the dashboard: every ticket and package price in USD, in BS and in the
// active display currency.
type PriceTable struct {
	Currency     string                      `json:"currency"`
	ExchangeRate float64                     `json:"exchangeRate"`
	Tickets      map[string]ConvertedPrice   `json:"tickets"`
	Packages     map[string]PackagePriceView `json:"packages"`
}

// BuildPriceTable expands a configuration into the full converted price
// view.
func BuildPriceTable(cfg *model.Config) PriceTable {
	convert := func(usd float64) ConvertedPrice {
		return ConvertedPrice{
			USD:    usd,
			BS:     ToBs(cfg, usd),
			Actual: DisplayPrice(cfg, usd),
		}
	}
	pair := func(p model.PackagePrice) PackagePriceView {
		return PackagePriceView{
			Weekday: convert(p.Weekday),
			Weekend: convert(p.Weekend),
		}
	}
	return PriceTable{
		Currency:     cfg.Currency,
		ExchangeRate: cfg.ExchangeRate,
		Tickets: map[string]ConvertedPrice{
			"min15":   convert(cfg.Tickets.Min15),
			"min30":   convert(cfg.Tickets.Min30),
			"min60":   convert(cfg.Tickets.Min60),
			"fullday": convert(cfg.Tickets.FullDay),
			"combo":   convert(cfg.Tickets.Combo),
		},
		Packages: map[string]PackagePriceView{
			model.PackageMini:   pair(cfg.Packages.Mini),
			model.PackageMedium: pair(cfg.Packages.Medium),
			model.PackageFull:   pair(cfg.Packages.Full),
		},
	}
}
