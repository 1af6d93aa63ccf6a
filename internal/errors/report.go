package errors

var (
	ErrInvalidTransaction = &DomainError{
		Code:    "INVALID_TRANSACTION",
		Message: "invalid transaction",
	}
	ErrInvalidWeightDistribution = &DomainError{
		Code:    "INVALID_WEIGHT_DISTRIBUTION",
		Message: "weights must sum to 1.0",
	}
	ErrDatasetNotFound = &DomainError{
		Code:    "DATASET_NOT_FOUND",
		Message: "dataset not found",
	}
	ErrUnknownDimension = &DomainError{
		Code:    "UNKNOWN_DIMENSION",
		Message: "unknown report dimension",
	}
	ErrDatabaseUnavailable = &DomainError{
		Code:    "DATABASE_UNAVAILABLE",
		Message: "transaction store is unavailable",
	}
)

var ErrUnknownMetric = &DomainError{
	Code:    "UNKNOWN_METRIC",
	Message: "unknown ranking metric",
}
