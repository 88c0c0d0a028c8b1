package model

import "time"

// Supported display currencies.  All stored prices are denominated in USD;
// BS amounts are derived from the exchange rate at read time.
const (
	CurrencyUSD = "USD"
	CurrencyBS  = "BS"
)

// ValidCurrency reports whether c is one of the two supported currencies.
func ValidCurrency(c string) bool { return c == CurrencyUSD || c == CurrencyBS }

// TicketPrices holds the USD price for each ticket duration sold at the
// entrance.  The five keys are fixed.
type TicketPrices struct {
	Min15   float64 `json:"min15" bson:"min15"`
	Min30   float64 `json:"min30" bson:"min30"`
	Min60   float64 `json:"min60" bson:"min60"`
	FullDay float64 `json:"fullday" bson:"fullday"`
	Combo   float64 `json:"combo" bson:"combo"`
}

// PackagePrice is the pair of USD prices for a party package tier.  Weekend
// pricing applies Friday through Sunday.
type PackagePrice struct {
	Weekday float64 `json:"weekday" bson:"weekday"`
	Weekend float64 `json:"weekend" bson:"weekend"`
}

// PackagePrices maps each of the three package tiers to its price pair.
type PackagePrices struct {
	Mini   PackagePrice `json:"mini" bson:"mini"`
	Medium PackagePrice `json:"medium" bson:"medium"`
	Full   PackagePrice `json:"full" bson:"full"`
}

// Config is the pricing and currency configuration of the whole chain.
// Exactly one document ever exists; IsSingleton is the marker the unique
// index hangs off.  The document is created lazily with the defaults from
// DefaultConfig and mutated in place by administrative updates.
type Config struct {
	Currency     string        `json:"currency" bson:"currency"`
	ExchangeRate float64       `json:"exchangeRate" bson:"exchangeRate"`
	Tickets      TicketPrices  `json:"tickets" bson:"tickets"`
	Packages     PackagePrices `json:"packages" bson:"packages"`
	IsSingleton  bool          `json:"-" bson:"isSingleton"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ConfigUpdate is a partial configuration change.  Nil fields are left
// untouched; Tickets and Packages replace the stored object wholesale when
// supplied rather than merging key by key.
type ConfigUpdate struct {
	Currency     *string        `json:"currency"`
	ExchangeRate *float64       `json:"exchangeRate"`
	Tickets      *TicketPrices  `json:"tickets"`
	Packages     *PackagePrices `json:"packages"`
}

// DefaultConfig returns the configuration used when the singleton document
// does not exist yet.  The exchange rate is BS per 1 USD.
func DefaultConfig() Config {
	return Config{
		Currency:     CurrencyUSD,
		ExchangeRate: 244.65,
		Tickets: TicketPrices{
			Min15:   6,
			Min30:   9,
			Min60:   10,
			FullDay: 11,
			Combo:   13,
		},
		Packages: PackagePrices{
			Mini:   PackagePrice{Weekday: 150, Weekend: 180},
			Medium: PackagePrice{Weekday: 200, Weekend: 230},
			Full:   PackagePrice{Weekday: 250, Weekend: 280},
		},
		IsSingleton: true,
	}
}
