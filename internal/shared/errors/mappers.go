package errors

import (
	"errors"

	"github.com/Apurer/retail-pos/internal/shared/persistence"
)

// PersistenceMapper answers 503 for any failure tagged by a repository adapter.
func PersistenceMapper(err error) (ProblemDetail, bool) {
	if errors.Is(err, persistence.ErrFailure) {
		return ErrUnavailable.WithDetail("the data store is unavailable, retry later"), true
	}
	return ProblemDetail{}, false
}

// SentinelMapper maps every error matching target to problem, using the error text as detail.
func SentinelMapper(target error, problem ProblemDetail) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		if errors.Is(err, target) {
			return problem.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	}
}
