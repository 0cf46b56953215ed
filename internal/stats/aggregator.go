package stats

import (
	"sort"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

// BurgersPerCombo is how many burgers one combo bundles.
const BurgersPerCombo = 2

// TopClientsLimit caps the client ranking.
const TopClientsLimit = 5

type RankingEntry struct {
	Label    string          `json:"label"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type ClientEntry struct {
	Name       string          `json:"name"`
	Orders     int             `json:"orders"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type Totals struct {
	Orders    int             `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
	Burgers   int             `json:"burgers"`
	Combos    int             `json:"combos"`
	Drinks    int             `json:"drinks"`
	AvgTicket decimal.Decimal `json:"avg_ticket"`
}

type Report struct {
	Burgers    []RankingEntry `json:"burgers"`
	Combos     []RankingEntry `json:"combos"`
	Drinks     []RankingEntry `json:"drinks"`
	TopClients []ClientEntry  `json:"top_clients"`
	Totals     Totals         `json:"totals"`
	Degraded   bool           `json:"degraded"`
}

// EmptyReport is the zero-valued report with non-nil rankings.
func EmptyReport() *Report {
	return &Report{
		Burgers:    []RankingEntry{},
		Combos:     []RankingEntry{},
		Drinks:     []RankingEntry{},
		TopClients: []ClientEntry{},
		Totals:     Totals{Revenue: decimal.Zero, AvgTicket: decimal.Zero},
	}
}

// Units counts items sold per category, with combos also counted as burgers.
type Units struct {
	Burgers int `json:"burgers"`
	Combos  int `json:"combos"`
	Drinks  int `json:"drinks"`
}

func (u *Units) add(item model.OrderItem) {
	switch item.Size {
	case model.SizeCombo:
		u.Combos += item.Quantity
		u.Burgers += BurgersPerCombo * item.Quantity
	case model.SizeBebida:
		u.Drinks += item.Quantity
	default:
		u.Burgers += item.Quantity
	}
}

// CountUnits tallies units over orders without building rankings.
func CountUnits(orders []model.Order) Units {
	var u Units
	for i := range orders {
		for _, item := range orders[i].Items {
			u.add(item)
		}
	}
	return u
}

// Aggregate builds a report from confirmed orders. Line items are read as
// recorded on the order, never re-priced against the catalog.
func Aggregate(orders []model.Order) *Report {
	burgers := newRanking()
	combos := newRanking()
	drinks := newRanking()
	clients := newClientRanking()

	var units Units
	revenue := decimal.Zero

	for i := range orders {
		o := &orders[i]
		revenue = revenue.Add(o.Total)

		if label := o.ClientLabel(); label != "" {
			clients.add(label, o.Total)
		}

		for _, item := range o.Items {
			units.add(item)
			sub := item.Subtotal()
			switch item.Size {
			case model.SizeCombo:
				combos.add(item.Name+" "+string(item.Size), item.Quantity, sub)
			case model.SizeBebida:
				drinks.add(item.Name, item.Quantity, sub)
			default:
				burgers.add(item.Name+" "+string(item.Size), item.Quantity, sub)
			}
		}
	}

	r := &Report{
		Burgers:    burgers.sorted(),
		Combos:     combos.sorted(),
		Drinks:     drinks.sorted(),
		TopClients: clients.top(TopClientsLimit),
		Totals: Totals{
			Orders:    len(orders),
			Revenue:   revenue,
			Burgers:   units.Burgers,
			Combos:    units.Combos,
			Drinks:    units.Drinks,
			AvgTicket: AverageTicket(revenue, len(orders)),
		},
	}
	return r
}

// AverageTicket is revenue over orders rounded to a whole unit, 0 with no orders.
func AverageTicket(revenue decimal.Decimal, orders int) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(orders))).Round(0)
}

type ranking struct {
	index   map[string]int
	entries []RankingEntry
}

func newRanking() *ranking {
	return &ranking{index: map[string]int{}, entries: []RankingEntry{}}
}

func (r *ranking) add(label string, qty int, revenue decimal.Decimal) {
	i, ok := r.index[label]
	if !ok {
		i = len(r.entries)
		r.index[label] = i
		r.entries = append(r.entries, RankingEntry{Label: label, Revenue: decimal.Zero})
	}
	r.entries[i].Quantity += qty
	r.entries[i].Revenue = r.entries[i].Revenue.Add(revenue)
}

func (r *ranking) sorted() []RankingEntry {
	sort.SliceStable(r.entries, func(a, b int) bool {
		return r.entries[a].Quantity > r.entries[b].Quantity
	})
	return r.entries
}

type clientRanking struct {
	index   map[string]int
	entries []ClientEntry
}

func newClientRanking() *clientRanking {
	return &clientRanking{index: map[string]int{}, entries: []ClientEntry{}}
}

func (r *clientRanking) add(name string, spent decimal.Decimal) {
	i, ok := r.index[name]
	if !ok {
		i = len(r.entries)
		r.index[name] = i
		r.entries = append(r.entries, ClientEntry{Name: name, TotalSpent: decimal.Zero})
	}
	r.entries[i].Orders++
	r.entries[i].TotalSpent = r.entries[i].TotalSpent.Add(spent)
}

func (r *clientRanking) top(n int) []ClientEntry {
	sort.SliceStable(r.entries, func(a, b int) bool {
		return r.entries[a].TotalSpent.GreaterThan(r.entries[b].TotalSpent)
	})
	if len(r.entries) > n {
		return r.entries[:n]
	}
	return r.entries
}
