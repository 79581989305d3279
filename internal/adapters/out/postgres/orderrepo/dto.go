// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and packages live in child tables and are loaded together with
// the order row.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Method            int
	Subtotal          float64
	FulfillmentStatus int `gorm:"index"`
	WaybillDocument   string

	Items    []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Packages []PackageDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one purchased product line of an order.
type LineItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  string    `gorm:"primaryKey"`
	UnitWeight int
	Quantity   int
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// PackageDTO represents one package of an order. Position preserves the
// composition order that the index-based package operations rely on.
// Dimensions are nullable as a unit: either all three columns are set or
// none is.
type PackageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Position       int
	WeightOverride int
	Height         *int
	Width          *int
	Length         *int
	ShippingLabel  string `gorm:"index"`
	LabelDocument  string
	Status         int

	Items []PackageItemDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for packages.
func (PackageDTO) TableName() string {
	return "packages"
}

// PackageItemDTO represents the placed quantity of one product in a package.
type PackageItemDTO struct {
	PackageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID string    `gorm:"primaryKey"`
	Quantity  int
}

// TableName specifies the database table name for package placements.
func (PackageItemDTO) TableName() string {
	return "package_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(aggregate.LineItems()))
	for _, item := range aggregate.LineItems() {
		items = append(items, LineItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			ProductID:  item.ProductID(),
			UnitWeight: item.UnitWeight(),
			Quantity:   item.Quantity(),
		})
	}

	packages := make([]PackageDTO, 0, len(aggregate.Packages()))
	for position, pkg := range aggregate.Packages() {
		dto := PackageDTO{
			ID:             pkg.ID().Bytes(),
			OrderID:        aggregate.ID().Bytes(),
			Position:       position,
			WeightOverride: pkg.WeightOverride(),
			ShippingLabel:  pkg.ShippingLabel(),
			LabelDocument:  pkg.LabelDocument(),
			Status:         int(pkg.Status()),
		}

		if dims := pkg.Dimensions(); dims != nil {
			height, width, length := dims.Height, dims.Width, dims.Length
			dto.Height = &height
			dto.Width = &width
			dto.Length = &length
		}

		for productID, quantity := range pkg.Items() {
			dto.Items = append(dto.Items, PackageItemDTO{
				PackageID: pkg.ID().Bytes(),
				ProductID: productID,
				Quantity:  quantity,
			})
		}

		packages = append(packages, dto)
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		Method:            int(aggregate.Method()),
		Subtotal:          aggregate.Subtotal(),
		FulfillmentStatus: int(aggregate.Fulfillment()),
		WaybillDocument:   aggregate.WaybillDocument(),
		Items:             items,
		Packages:          packages,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Packages are expected to be preloaded ordered by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(itemDTO.ProductID, itemDTO.UnitWeight, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	packages := make([]*order.Package, 0, len(dto.Packages))
	for _, pkgDTO := range dto.Packages {
		packageID, pkgErr := kernel.UUIDFromBytes(pkgDTO.ID[:])
		if pkgErr != nil {
			return nil, pkgErr
		}

		var dims *order.Dimensions
		if pkgDTO.Height != nil && pkgDTO.Width != nil && pkgDTO.Length != nil {
			dims = &order.Dimensions{
				Height: *pkgDTO.Height,
				Width:  *pkgDTO.Width,
				Length: *pkgDTO.Length,
			}
		}

		placements := make(map[string]int, len(pkgDTO.Items))
		for _, placement := range pkgDTO.Items {
			placements[placement.ProductID] = placement.Quantity
		}

		pkg, pkgErr := order.RestorePackage(
			packageID,
			placements,
			pkgDTO.WeightOverride,
			dims,
			pkgDTO.ShippingLabel,
			pkgDTO.LabelDocument,
			shipment.Status(pkgDTO.Status),
		)
		if pkgErr != nil {
			return nil, pkgErr
		}
		packages = append(packages, pkg)
	}

	return order.RestoreOrder(
		id,
		order.ShippingMethod(dto.Method),
		dto.Subtotal,
		items,
		packages,
		order.FulfillmentStatus(dto.FulfillmentStatus),
		dto.WaybillDocument,
	)
}
