package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderPackagesQueryHandler retrieves the composition read model of one
// order. Uses direct SQL queries for optimal read performance in the CQRS
// pattern; package weights are derived in the read path the same way the
// aggregate derives them (override first, placement sum otherwise).
type GetOrderPackagesQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderPackagesQueryHandler creates a handler for order composition queries.
// Requires a GORM database connection for query execution.
func NewGetOrderPackagesQueryHandler(db *gorm.DB) GetOrderPackagesQueryHandler {
	return GetOrderPackagesQueryHandler{db: db}
}

// Handle executes the query and returns the order's packages ordered by
// their composition position. Returns errs.ErrObjectNotFound when the order
// does not exist.
func (h GetOrderPackagesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderPackagesQuery,
) (GetOrderPackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderPackagesQueryResponse{}, err
	}

	response := GetOrderPackagesQueryResponse{
		OrderID:  query.OrderID(),
		Packages: make([]PackageResponse, 0),
	}

	var fulfillmentStatus int
	row := h.db.WithContext(ctx).Raw(`
		SELECT fulfillment_status, waybill_document
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	if err := row.Scan(&fulfillmentStatus, &response.WaybillDocument); err != nil {
		return GetOrderPackagesQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"orderID", query.OrderID().String(), err)
	}
	response.FulfillmentStatus = order.FulfillmentStatus(fulfillmentStatus).String()

	packageIndex := make(map[uuid.UUID]int)
	overridden := make(map[uuid.UUID]bool)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, weight_override, shipping_label, label_document, status
		FROM packages
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderPackagesQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             uuid.UUID
			weightOverride int
			status         int
			pkg            PackageResponse
		)
		if err = rows.Scan(&id, &weightOverride, &pkg.ShippingLabel, &pkg.LabelDocument, &status); err != nil {
			return GetOrderPackagesQueryResponse{}, err
		}

		packageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrderPackagesQueryResponse{}, idErr
		}
		pkg.ID = packageID
		pkg.WeightGrams = weightOverride
		pkg.Status = shipment.Status(status).String()
		pkg.Items = make([]PackageItemResponse, 0)

		packageIndex[id] = len(response.Packages)
		overridden[id] = weightOverride > 0
		response.Packages = append(response.Packages, pkg)
	}
	if err = rows.Err(); err != nil {
		return GetOrderPackagesQueryResponse{}, err
	}

	itemRows, err := h.db.WithContext(ctx).Raw(`
		SELECT pi.package_id, pi.product_id, pi.quantity, li.unit_weight
		FROM package_items pi
		JOIN packages p ON p.id = pi.package_id
		JOIN line_items li ON li.order_id = p.order_id AND li.product_id = pi.product_id
		WHERE p.order_id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderPackagesQueryResponse{}, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			packageID  uuid.UUID
			item       PackageItemResponse
			unitWeight int
		)
		if err = itemRows.Scan(&packageID, &item.ProductID, &item.Quantity, &unitWeight); err != nil {
			return GetOrderPackagesQueryResponse{}, err
		}

		index, ok := packageIndex[packageID]
		if !ok {
			continue
		}

		response.Packages[index].Items = append(response.Packages[index].Items, item)
		// The derived weight applies only when no manual override is set.
		if !overridden[packageID] {
			response.Packages[index].WeightGrams += item.Quantity * unitWeight
		}
	}
	if err = itemRows.Err(); err != nil {
		return GetOrderPackagesQueryResponse{}, err
	}

	return response, nil
}
