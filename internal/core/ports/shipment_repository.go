package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for parcel tracking
// records. Records are keyed by their carrier label number.
type ShipmentRepository interface {
	// Add persists a new tracking record for a freshly labeled package.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists a status refresh of an existing tracking record.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// GetByLabel retrieves the tracking record of one shipping label.
	GetByLabel(ctx context.Context, labelNumber string) (*shipment.Shipment, error)

	// GetStale retrieves records in a non-terminal status whose last refresh
	// is older than the cutoff. Used by the tracking poll to pick parcels
	// worth a carrier request.
	GetStale(ctx context.Context, cutoff time.Time) ([]*shipment.Shipment, error)
}
