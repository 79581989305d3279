package queries

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetStaleShipmentsQueryIsNotConstructed = errors.New(
	"GetStaleShipmentsQuery must be created via NewGetStaleShipmentsQuery constructor",
)

// GetStaleShipmentsQuery retrieves the tracked parcels worth a carrier
// tracking request: non-terminal records whose last refresh is older than
// the given age.
type GetStaleShipmentsQuery struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewGetStaleShipmentsQuery creates a query for records older than maxAge.
func NewGetStaleShipmentsQuery(maxAge time.Duration) (GetStaleShipmentsQuery, error) {
	if maxAge <= 0 {
		return GetStaleShipmentsQuery{}, errs.NewValueIsInvalidErrorWithCause("maxAge",
			fmt.Errorf("%s is not positive", maxAge))
	}

	return GetStaleShipmentsQuery{
		maxAge: maxAge,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleShipmentsQueryIsNotConstructed)
}

// MaxAge returns the staleness cutoff age.
func (q GetStaleShipmentsQuery) MaxAge() time.Duration {
	return q.maxAge
}

// GetStaleShipmentsQueryResponse is the read model of one stale parcel.
type GetStaleShipmentsQueryResponse struct {
	LabelNumber string
	OrderID     kernel.UUID
	Status      string
	UpdatedAt   time.Time
}
