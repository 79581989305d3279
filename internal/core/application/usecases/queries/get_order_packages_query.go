package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetOrderPackagesQueryIsNotConstructed = errors.New(
	"GetOrderPackagesQuery must be created via NewGetOrderPackagesQuery constructor",
)

// GetOrderPackagesQuery retrieves the composition of an order: its packages,
// their placements, weights, labels and tracking statuses.
type GetOrderPackagesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderPackagesQuery creates a query for one order's packages.
func NewGetOrderPackagesQuery(orderID kernel.UUID) (GetOrderPackagesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderPackagesQuery{}, err
	}

	return GetOrderPackagesQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderPackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderPackagesQueryIsNotConstructed)
}

// OrderID returns the identifier of the queried order.
func (q GetOrderPackagesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PackageItemResponse is one placement within a package read model.
type PackageItemResponse struct {
	ProductID string
	Quantity  int
}

// PackageResponse is the read model of one package.
type PackageResponse struct {
	ID            kernel.UUID
	WeightGrams   int
	ShippingLabel string
	LabelDocument string
	Status        string
	Items         []PackageItemResponse
}

// GetOrderPackagesQueryResponse is the composition read model of one order.
type GetOrderPackagesQueryResponse struct {
	OrderID           kernel.UUID
	FulfillmentStatus string
	WaybillDocument   string
	Packages          []PackageResponse
}
