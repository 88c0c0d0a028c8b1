package service

import (
	"context"
	"sort"
	"time"

	"github.com/brincapark/reservations-api/internal/model"
)

// AnalyticsService computes the dashboard aggregates over the full
// reservation set.  Prices are always derived from the current
// configuration at read time, so revenue figures move retroactively when
// an administrator edits the price tables.
type AnalyticsService struct {
	reservations ReservationStore
	config       ConfigStore
	now          func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(reservations ReservationStore, config ConfigStore) *AnalyticsService {
	if reservations == nil || config == nil {
		panic("nil store passed to NewAnalyticsService")
	}
	return &AnalyticsService{
		reservations: reservations,
		config:       config,
		now:          time.Now,
	}
}

// Stats is the general dashboard summary.  Revenue values are expressed
// in the active display currency, reported in Currency.
type Stats struct {
	TotalReservations  int            `json:"totalReservations"`
	Approved           int            `json:"approved"`
	Pending            int            `json:"pending"`
	Cancelled          int            `json:"cancelled"`
	ConversionRate     float64        `json:"conversionRate"`
	TotalRevenue       float64        `json:"totalRevenue"`
	AverageRevenue     float64        `json:"averageRevenue"`
	PopularWeekday     string         `json:"popularWeekday"`
	BestSellingPackage string         `json:"bestSellingPackage"`
	ByPark             map[string]int `json:"byPark"`
	ByEventType        map[string]int `json:"byEventType"`
	Currency           string         `json:"currency"`
}

// GetStats computes the summary over all reservations.  Revenue sums the
// derived price of every approved reservation; the conversion rate is
// approved over total as a percentage.  Both rates and revenue round to
// two decimals.
func (s *AnalyticsService) GetStats(ctx context.Context) (*Stats, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalReservations: len(all),
		ByPark:            map[string]int{},
		ByEventType:       map[string]int{},
		Currency:          cfg.Currency,
	}

	weekdayCounts := map[time.Weekday]int{}
	packageCounts := map[string]int{}
	revenueUSD := 0.0

	for i := range all {
		r := &all[i]
		switch r.Status {
		case model.StatusApproved:
			stats.Approved++
			price, err := CalculatePrice(cfg, r)
			if err != nil {
				return nil, err
			}
			revenueUSD += price
		case model.StatusPending:
			stats.Pending++
		case model.StatusCancelled:
			stats.Cancelled++
		}

		if t, ok := parseServiceDate(r.ServiceDate); ok {
			weekdayCounts[t.Weekday()]++
		}
		packageCounts[r.Package]++
		stats.ByPark[r.Park]++
		stats.ByEventType[r.EventType]++
	}

	if stats.TotalReservations > 0 {
		stats.ConversionRate = round2(float64(stats.Approved) / float64(stats.TotalReservations) * 100)
	}
	stats.TotalRevenue = round2(DisplayPrice(cfg, revenueUSD))
	if stats.Approved > 0 {
		stats.AverageRevenue = round2(stats.TotalRevenue / float64(stats.Approved))
	}

	// Fixed iteration orders keep tie-breaks deterministic.
	best := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if weekdayCounts[d] > best {
			best = weekdayCounts[d]
			stats.PopularWeekday = d.String()
		}
	}
	best = 0
	for _, p := range model.Packages {
		if packageCounts[p] > best {
			best = packageCounts[p]
			stats.BestSellingPackage = p
		}
	}
	return stats, nil
}

// MonthlyTrend carries six months of booking volume and revenue as
// parallel arrays, oldest month first, the way the dashboard chart
// consumes them.
type MonthlyTrend struct {
	Months       []string  `json:"months"`
	Reservations []int     `json:"reservations"`
	Revenues     []float64 `json:"revenues"`
	Currency     string    `json:"currency"`
}

// GetMonthlyTrend buckets approved reservations by the calendar month of
// their service date over the trailing six months, including the current
// one.  Each bucket counts the approved reservations and sums their
// derived price in the display currency.
func (s *AnalyticsService) GetMonthlyTrend(ctx context.Context) (*MonthlyTrend, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	trend := &MonthlyTrend{
		Months:       make([]string, 0, 6),
		Reservations: make([]int, 6),
		Revenues:     make([]float64, 6),
		Currency:     cfg.Currency,
	}
	index := map[string]int{}
	for i := 5; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.Local)
		label := anchor.Format("Jan 2006")
		index[label] = len(trend.Months)
		trend.Months = append(trend.Months, label)
	}

	for i := range all {
		r := &all[i]
		if r.Status != model.StatusApproved {
			continue
		}
		t, ok := parseServiceDate(r.ServiceDate)
		if !ok {
			continue
		}
		pos, ok := index[t.Format("Jan 2006")]
		if !ok {
			continue
		}
		price, err := CalculatePrice(cfg, r)
		if err != nil {
			return nil, err
		}
		trend.Reservations[pos]++
		trend.Revenues[pos] = round2(trend.Revenues[pos] + DisplayPrice(cfg, price))
	}
	return trend, nil
}

// ClientSummary aggregates one client's booking history, grouped by email.
type ClientSummary struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	TotalReservations int     `json:"totalReservations"`
	Approved          int     `json:"approved"`
	Cancelled         int     `json:"cancelled"`
	TotalSpent        float64 `json:"totalSpent"`
}

// GetTopClients groups reservations by email and returns the clients with
// the most bookings, at most limit entries (10 when limit is not
// positive).  TotalSpent sums the derived price of the client's approved
// reservations in the display currency.
func (s *AnalyticsService) GetTopClients(ctx context.Context, limit int) ([]ClientSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byEmail := map[string]*ClientSummary{}
	order := make([]string, 0)
	for i := range all {
		r := &all[i]
		c, ok := byEmail[r.Email]
		if !ok {
			c = &ClientSummary{Name: r.CustomerName, Email: r.Email}
			byEmail[r.Email] = c
			order = append(order, r.Email)
		}
		c.TotalReservations++
		switch r.Status {
		case model.StatusApproved:
			c.Approved++
			price, err := CalculatePrice(cfg, r)
			if err != nil {
				return nil, err
			}
			c.TotalSpent = round2(c.TotalSpent + DisplayPrice(cfg, price))
		case model.StatusCancelled:
			c.Cancelled++
		}
	}

	clients := make([]ClientSummary, 0, len(byEmail))
	for _, email := range order {
		clients = append(clients, *byEmail[email])
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].TotalReservations > clients[j].TotalReservations
	})
	if len(clients) > limit {
		clients = clients[:limit]
	}
	return clients, nil
}

// CancellationReport breaks down cancelled reservations along the axes
// the dashboard charts: park, package tier, event type and service month.
type CancellationReport struct {
	TotalCancelled   int            `json:"totalCancelled"`
	CancellationRate float64        `json:"cancellationRate"`
	ByPark           map[string]int `json:"byPark"`
	ByPackage        map[string]int `json:"byPackage"`
	ByEventType      map[string]int `json:"byEventType"`
	ByMonth          map[string]int `json:"byMonth"`
}

// GetCancellationBreakdown filters to cancelled reservations and counts
// them per park, package, event type and service month.  The rate is
// cancelled over total as a percentage, 0 for an empty collection.
func (s *AnalyticsService) GetCancellationBreakdown(ctx context.Context) (*CancellationReport, error) {
	all, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &CancellationReport{
		ByPark:      map[string]int{},
		ByPackage:   map[string]int{},
		ByEventType: map[string]int{},
		ByMonth:     map[string]int{},
	}
	for i := range all {
		r := &all[i]
		if r.Status != model.StatusCancelled {
			continue
		}
		report.TotalCancelled++
		report.ByPark[r.Park]++
		report.ByPackage[r.Package]++
		report.ByEventType[r.EventType]++
		if t, ok := parseServiceDate(r.ServiceDate); ok {
			report.ByMonth[t.Format("Jan 2006")]++
		}
	}
	if len(all) > 0 {
		report.CancellationRate = round2(float64(report.TotalCancelled) / float64(len(all)) * 100)
	}
	return report, nil
}
