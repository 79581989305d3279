package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleShipmentsQueryHandler lists tracked parcels whose status is not
// terminal and whose record has not been refreshed within the queried age.
// The tracking poll feeds its carrier requests from this read model.
type GetStaleShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleShipmentsQueryHandler creates a handler for staleness queries.
// Requires a GORM database connection for query execution.
func NewGetStaleShipmentsQueryHandler(db *gorm.DB) GetStaleShipmentsQueryHandler {
	return GetStaleShipmentsQueryHandler{db: db}
}

// Handle executes the query. Delivered and returned parcels never appear in
// the result, regardless of their age.
func (h GetStaleShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleShipmentsQuery,
) ([]GetStaleShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.MaxAge())
	shipments := make([]GetStaleShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT label_number, order_id, status, updated_at
		FROM shipments
		WHERE updated_at < ?
		  AND status NOT IN (?, ?)
		ORDER BY updated_at
	`, cutoff, int(shipment.Delivered), int(shipment.Returned)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			record  GetStaleShipmentsQueryResponse
			orderID uuid.UUID
			status  int
		)
		if err = rows.Scan(&record.LabelNumber, &orderID, &status, &record.UpdatedAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		record.OrderID = id
		record.Status = shipment.Status(status).String()

		shipments = append(shipments, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
