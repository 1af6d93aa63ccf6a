package generator

import (
	"errors"
	"fmt"
	"os"

	"posreport/internal/models"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for generator settings other than weights.
var ErrInvalidConfig = errors.New("generator: invalid config")

// Default generator settings.
const (
	DefaultDayCount      = 30
	DefaultMinBaseAmount = 20000
	DefaultMaxBaseAmount = 200000
	DefaultTaxRate       = 0.10
	DefaultCashierCount  = 6
)

// Config describes the synthetic dataset to produce.
type Config struct {
	DayCount       int                   `yaml:"day_count" json:"day_count"`
	Branches       []models.BranchSpec   `yaml:"branches" json:"branches" validate:"dive"`
	PaymentMethods []models.PaymentSpec  `yaml:"payment_methods" json:"payment_methods" validate:"dive"`
	Categories     []models.CategorySpec `yaml:"categories" json:"categories" validate:"dive"`
	// Cashiers lists operator names. When empty, CashierCount names are invented.
	Cashiers      []string `yaml:"cashiers" json:"cashiers"`
	CashierCount  int      `yaml:"cashier_count" json:"cashier_count"`
	MinBaseAmount int64    `yaml:"min_base_amount" json:"min_base_amount"`
	MaxBaseAmount int64    `yaml:"max_base_amount" json:"max_base_amount"`
	TaxRate       float64  `yaml:"tax_rate" json:"tax_rate"`
}

// DefaultConfig returns the reference five-branch distribution.
func DefaultConfig() Config {
	return Config{
		DayCount: DefaultDayCount,
		Branches: []models.BranchSpec{
			{ID: 1, Name: "Central", Weight: 0.35},
			{ID: 2, Name: "City Mall", Weight: 0.25},
			{ID: 3, Name: "Airport", Weight: 0.20},
			{ID: 4, Name: "Riverside Cafe", Weight: 0.12},
			{ID: 5, Name: "Express", Weight: 0.08},
		},
		PaymentMethods: []models.PaymentSpec{
			{Method: models.PaymentCash, Weight: 0.30},
			{Method: models.PaymentCard, Weight: 0.20},
			{Method: models.PaymentMobileWalletA, Weight: 0.20},
			{Method: models.PaymentMobileWalletB, Weight: 0.20},
			{Method: models.PaymentMobileWalletC, Weight: 0.10},
		},
		CashierCount:  DefaultCashierCount,
		MinBaseAmount: DefaultMinBaseAmount,
		MaxBaseAmount: DefaultMaxBaseAmount,
		TaxRate:       DefaultTaxRate,
	}
}

// LoadProfile reads a YAML generator profile. Keys missing from the file keep
// their DefaultConfig values.
func LoadProfile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read generator profile: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse generator profile %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every setting; weight problems wrap ErrInvalidWeightDistribution.
func (c Config) Validate() error {
	if c.DayCount < 0 {
		return fmt.Errorf("%w: day count %d is negative", ErrInvalidConfig, c.DayCount)
	}
	if len(c.Branches) == 0 {
		return fmt.Errorf("%w: at least one branch is required", ErrInvalidConfig)
	}
	if len(c.PaymentMethods) == 0 {
		return fmt.Errorf("%w: at least one payment method is required", ErrInvalidConfig)
	}
	for _, p := range c.PaymentMethods {
		if !p.Method.Valid() {
			return fmt.Errorf("%w: unknown payment method %q", ErrInvalidConfig, p.Method)
		}
	}
	if c.MinBaseAmount < 0 || c.MaxBaseAmount <= c.MinBaseAmount {
		return fmt.Errorf("%w: base amount range [%d, %d) is empty", ErrInvalidConfig, c.MinBaseAmount, c.MaxBaseAmount)
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("%w: tax rate %v out of range", ErrInvalidConfig, c.TaxRate)
	}
	if len(c.Cashiers) == 0 && c.CashierCount < 1 {
		return fmt.Errorf("%w: cashiers or cashier_count is required", ErrInvalidConfig)
	}

	if err := ValidateWeights(branchWeights(c.Branches)); err != nil {
		return fmt.Errorf("branches: %w", err)
	}
	if err := ValidateWeights(paymentWeights(c.PaymentMethods)); err != nil {
		return fmt.Errorf("payment methods: %w", err)
	}
	if len(c.Categories) > 0 {
		if err := ValidateWeights(categoryWeights(c.Categories)); err != nil {
			return fmt.Errorf("categories: %w", err)
		}
	}
	return nil
}

func branchWeights(specs []models.BranchSpec) []float64 {
	weights := make([]float64, len(specs))
	for i, s := range specs {
		weights[i] = s.Weight
	}
	return weights
}

func paymentWeights(specs []models.PaymentSpec) []float64 {
	weights := make([]float64, len(specs))
	for i, s := range specs {
		weights[i] = s.Weight
	}
	return weights
}

func categoryWeights(specs []models.CategorySpec) []float64 {
	weights := make([]float64, len(specs))
	for i, s := range specs {
		weights[i] = s.Weight
	}
	return weights
}
