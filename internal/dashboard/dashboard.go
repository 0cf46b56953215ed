package dashboard

import (
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/stats"
	"github.com/shopspring/decimal"
)

const RecentLimit = 10

type Summary struct {
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

func Summarize(orders []model.Order) Summary {
	s := Summary{Revenue: decimal.Zero}
	for _, o := range orders {
		s.Orders++
		s.Revenue = s.Revenue.Add(o.Total)
	}
	return s
}

// Snapshot is one frame of the staff dashboard. Seq grows with every
// snapshot the hub hands out, so clients can drop stale frames.
type Snapshot struct {
	Seq         uint64        `json:"seq"`
	GeneratedAt time.Time     `json:"generated_at"`
	Today       Summary       `json:"today"`
	Week        Summary       `json:"week"`
	Units       stats.Units   `json:"units"`
	Pending     []model.Order `json:"pending"`
	Recent      []model.Order `json:"recent"`
}

// WeekStart is local midnight seven days before now.
func WeekStart(now time.Time) time.Time {
	return stats.StartOfDay(now).AddDate(0, 0, -7)
}

// Build assembles a snapshot from the week's confirmed orders plus the
// pending queue and latest confirmations. now must be in the store's zone.
func Build(now time.Time, week, pending, recent []model.Order) *Snapshot {
	dayStart := stats.StartOfDay(now)
	var today []model.Order
	for _, o := range week {
		if !o.CreatedAt.Before(dayStart) {
			today = append(today, o)
		}
	}

	if pending == nil {
		pending = []model.Order{}
	}
	if recent == nil {
		recent = []model.Order{}
	}
	return &Snapshot{
		GeneratedAt: now,
		Today:       Summarize(today),
		Week:        Summarize(week),
		Units:       stats.CountUnits(week),
		Pending:     pending,
		Recent:      recent,
	}
}
