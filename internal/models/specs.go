package models

// BranchSpec describes a branch and its share of generated sales.
type BranchSpec struct {
	ID     int64   `yaml:"id" json:"id" validate:"required,gt=0"`
	Name   string  `yaml:"name" json:"name" validate:"required"`
	Weight float64 `yaml:"weight" json:"weight" validate:"gte=0,lte=1"`
}

// PaymentSpec describes a payment method and its share of generated sales.
type PaymentSpec struct {
	Method PaymentMethod `yaml:"method" json:"method" validate:"required"`
	Weight float64       `yaml:"weight" json:"weight" validate:"gte=0,lte=1"`
}

// CategorySpec describes a sales category and its share of generated sales.
type CategorySpec struct {
	Name   string  `yaml:"name" json:"name" validate:"required"`
	Weight float64 `yaml:"weight" json:"weight" validate:"gte=0,lte=1"`
}
