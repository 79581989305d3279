// Package shipmentrepo provides data transfer objects and mapping functions
// for parcel tracking record persistence. Records are keyed by their carrier
// label number rather than a surrogate identifier.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting tracking records.
type ShipmentDTO struct {
	LabelNumber string    `gorm:"primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	PackageID   uuid.UUID `gorm:"type:uuid"`
	Status      int       `gorm:"index"`
	UpdatedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for tracking records.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a tracking record to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		LabelNumber: aggregate.LabelNumber(),
		OrderID:     aggregate.OrderID().Bytes(),
		PackageID:   aggregate.PackageID().Bytes(),
		Status:      int(aggregate.Status()),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a tracking record.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		dto.LabelNumber,
		orderID,
		packageID,
		shipment.Status(dto.Status),
		dto.UpdatedAt,
	)
}
