package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrUnknownTrackingCode is the sentinel for carrier code pairs that are
	// not in the normalization table. The parcel status is left unchanged.
	ErrUnknownTrackingCode = errors.New("unknown tracking code pair")

	// ErrLabelNumberIsRequired is returned when a shipment is created without
	// a label number.
	ErrLabelNumberIsRequired = errs.NewValueIsRequiredError("labelNumber")
)

// UnknownTrackingCodeError reports a carrier (eventCode, justificationCode)
// pair that could not be normalized. It carries the offending pair so callers
// can log a precise message; processing of other parcels is not affected.
type UnknownTrackingCodeError struct {
	EventCode         string
	JustificationCode string
}

func (e *UnknownTrackingCodeError) Error() string {
	return fmt.Sprintf("unknown tracking code pair: event %q, justification %q",
		e.EventCode, e.JustificationCode)
}

func (e *UnknownTrackingCodeError) Unwrap() error {
	return ErrUnknownTrackingCode
}

// Shipment tracks one labeled parcel through the carrier network. It links a
// shipping label to the order and package it was issued for and holds the
// parcel's canonical status derived from carrier events.
//
// Shipment is the persisted side record used by the tracking poll: parcels
// whose status is not terminal and whose record has not been refreshed
// recently are candidates for a carrier tracking request.
type Shipment struct {
	labelNumber string
	orderID     kernel.UUID
	packageID   kernel.UUID
	status      Status
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewShipment creates the tracking record for a freshly labeled package.
// The initial status is LabelAnnounced: the label exists but the carrier has
// not yet taken the parcel over.
func NewShipment(labelNumber string, orderID, packageID kernel.UUID) (*Shipment, error) {
	shipment := &Shipment{
		status: LabelAnnounced,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setLabelNumber(labelNumber),
		shipment.setOrderID(orderID),
		shipment.setPackageID(packageID),
	); err != nil {
		return nil, err
	}

	shipment.updatedAt = time.Now().UTC()
	return shipment, nil
}

// RestoreShipment reconstructs a Shipment from persistent storage.
func RestoreShipment(
	labelNumber string,
	orderID, packageID kernel.UUID,
	status Status,
	updatedAt time.Time,
) (*Shipment, error) {
	shipment := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setLabelNumber(labelNumber),
		shipment.setOrderID(orderID),
		shipment.setPackageID(packageID),
		shipment.setStatus(status),
	); err != nil {
		return nil, err
	}

	shipment.updatedAt = updatedAt
	return shipment, nil
}

// Validate ensures the Shipment was created through one of its constructors.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// LabelNumber returns the shipping label identifying the parcel.
func (s *Shipment) LabelNumber() string {
	return s.labelNumber
}

// OrderID returns the identifier of the order the parcel belongs to.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// PackageID returns the identifier of the package the label was issued for.
func (s *Shipment) PackageID() kernel.UUID {
	return s.packageID
}

// Status returns the parcel's current canonical status.
func (s *Shipment) Status() Status {
	return s.status
}

// UpdatedAt returns the time of the last status refresh.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// ApplyEvent normalizes one carrier event and updates the parcel status.
//
// An unmapped code pair returns an UnknownTrackingCodeError and leaves the
// current status untouched: unknown pairs must never overwrite a known
// status. A successfully normalized event refreshes the update timestamp even
// when the status value itself did not change, so the poll scheduler can see
// the record is fresh.
func (s *Shipment) ApplyEvent(eventCode, justificationCode string) error {
	status := Normalize(eventCode, justificationCode)
	if status == StatusUnknown {
		return &UnknownTrackingCodeError{
			EventCode:         eventCode,
			JustificationCode: justificationCode,
		}
	}

	s.status = status
	s.updatedAt = time.Now().UTC()
	return nil
}

func (s *Shipment) setLabelNumber(labelNumber string) error {
	if labelNumber == "" {
		return ErrLabelNumberIsRequired
	}
	s.labelNumber = labelNumber
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	s.packageID = packageID
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
