// Package generator produces synthetic point-of-sale transactions for demos
// and tests. Output is fully determined by the Config and the random source.
package generator

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"posreport/internal/models"
	"posreport/internal/services/window"

	"github.com/brianvoe/gofakeit/v7"
)

// Business hours and demand seasonality of generated sales.
const (
	openingHour      = 8
	businessHours    = 14 // 08:00 through 21:59
	weekdayMinSales  = 20
	weekdaySalesSpan = 15 // 20..34
	weekendMinSales  = 30
	weekendSalesSpan = 20 // 30..49
	maxItems         = 5
	walkInShare      = 0.7
)

// Generator draws transactions from a seeded source. It is not safe for
// concurrent use; build one per dataset.
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	cashiers []string

	branchWeights   []float64
	paymentWeights  []float64
	categoryWeights []float64
}

// New validates cfg and binds it to rng.
func New(cfg Config, rng *rand.Rand) (*Generator, error) {
	if rng == nil {
		return nil, errors.New("generator: random source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cashiers := append([]string(nil), cfg.Cashiers...)
	if len(cashiers) == 0 {
		faker := gofakeit.New(rng.Uint64() | 1)
		for i := 0; i < cfg.CashierCount; i++ {
			cashiers = append(cashiers, faker.Name())
		}
	}

	return &Generator{
		cfg:             cfg,
		rng:             rng,
		cashiers:        cashiers,
		branchWeights:   branchWeights(cfg.Branches),
		paymentWeights:  paymentWeights(cfg.PaymentMethods),
		categoryWeights: categoryWeights(cfg.Categories),
	}, nil
}

// NewSeeded is New with a PCG source derived from seed.
func NewSeeded(cfg Config, seed uint64) (*Generator, error) {
	return New(cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Cashiers returns the operator names sales are attributed to.
func (g *Generator) Cashiers() []string {
	return append([]string(nil), g.cashiers...)
}

// Generate returns the sales of the DayCount days ending with now's day,
// oldest day first. IDs start at 1 and follow generation order.
func (g *Generator) Generate(now time.Time) []models.Transaction {
	today := window.StartOfDay(now)
	txns := make([]models.Transaction, 0, g.cfg.DayCount*(weekendMinSales+weekendSalesSpan))

	var id int64
	for day := g.cfg.DayCount - 1; day >= 0; day-- {
		date := today.AddDate(0, 0, -day)
		count := g.dailyCount(date.Weekday())
		for i := 0; i < count; i++ {
			id++
			txns = append(txns, g.transaction(id, date))
		}
	}
	return txns
}

func (g *Generator) dailyCount(wd time.Weekday) int {
	if wd == time.Saturday || wd == time.Sunday {
		return weekendMinSales + g.rng.IntN(weekendSalesSpan)
	}
	return weekdayMinSales + g.rng.IntN(weekdaySalesSpan)
}

func (g *Generator) transaction(id int64, date time.Time) models.Transaction {
	hour := openingHour + g.rng.IntN(businessHours)
	minute := g.rng.IntN(60)
	occurredAt := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())

	branch := g.cfg.Branches[WeightedIndex(g.branchWeights, g.rng.Float64())]
	payment := g.cfg.PaymentMethods[WeightedIndex(g.paymentWeights, g.rng.Float64())]

	base := g.cfg.MinBaseAmount + g.rng.Int64N(g.cfg.MaxBaseAmount-g.cfg.MinBaseAmount)
	items := 1 + g.rng.IntN(maxItems)
	total := base * int64(items)
	tax := int64(math.Floor(float64(total) * g.cfg.TaxRate))

	cashier := g.cashiers[g.rng.IntN(len(g.cashiers))]

	customer := models.CustomerRegistered
	if g.rng.Float64() < walkInShare {
		customer = models.CustomerWalkIn
	}

	category := models.DefaultCategory
	if len(g.cfg.Categories) > 0 {
		category = g.cfg.Categories[WeightedIndex(g.categoryWeights, g.rng.Float64())].Name
	}

	return models.Transaction{
		ID:            id,
		OrderNumber:   models.OrderNumberFor(id),
		BranchID:      branch.ID,
		BranchName:    branch.Name,
		OccurredAt:    occurredAt,
		Subtotal:      total - tax,
		Tax:           tax,
		TotalAmount:   total,
		PaymentMethod: payment.Method,
		CashierName:   cashier,
		ItemCount:     items,
		Status:        models.StatusCompleted,
		CustomerType:  customer,
		Category:      category,
	}
}
