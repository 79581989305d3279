package shipment_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	t.Run("should create shipment with valid parameters", func(t *testing.T) {
		orderID := kernel.NewUUID()
		packageID := kernel.NewUUID()

		sh, err := shipment.NewShipment("8R000123", orderID, packageID)

		require.NoError(t, err)
		require.NotNil(t, sh)
		assert.Equal(t, "8R000123", sh.LabelNumber())
		assert.True(t, sh.OrderID().IsEqual(orderID))
		assert.True(t, sh.PackageID().IsEqual(packageID))
		assert.Equal(t, shipment.LabelAnnounced, sh.Status())
		assert.WithinDuration(t, time.Now().UTC(), sh.UpdatedAt(), time.Minute)
		require.NoError(t, sh.Validate())
	})

	t.Run("should return error for empty label number", func(t *testing.T) {
		sh, err := shipment.NewShipment("", kernel.NewUUID(), kernel.NewUUID())

		require.Error(t, err)
		assert.Nil(t, sh)
		assert.Contains(t, err.Error(), "labelNumber")
	})

	t.Run("should return error for invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		sh, err := shipment.NewShipment("8R000123", invalidID, kernel.NewUUID())

		require.Error(t, err)
		assert.Nil(t, sh)
	})
}

func TestRestoreShipment(t *testing.T) {
	t.Run("should restore shipment with persisted state", func(t *testing.T) {
		updatedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		sh, err := shipment.RestoreShipment(
			"8R000123", kernel.NewUUID(), kernel.NewUUID(), shipment.InTransit, updatedAt)

		require.NoError(t, err)
		assert.Equal(t, shipment.InTransit, sh.Status())
		assert.Equal(t, updatedAt, sh.UpdatedAt())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		sh, err := shipment.RestoreShipment(
			"8R000123", kernel.NewUUID(), kernel.NewUUID(), shipment.StatusUnknown, time.Now())

		require.Error(t, err)
		assert.Nil(t, sh)
	})
}

func TestShipment_ApplyEvent(t *testing.T) {
	newShipment := func(t *testing.T) *shipment.Shipment {
		t.Helper()
		sh, err := shipment.NewShipment("8R000123", kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)
		return sh
	}

	t.Run("should update status for known code pair", func(t *testing.T) {
		sh := newShipment(t)

		require.NoError(t, sh.ApplyEvent("APF", ""))
		assert.Equal(t, shipment.Dispatched, sh.Status())

		require.NoError(t, sh.ApplyEvent("SOL", ""))
		assert.Equal(t, shipment.Delivered, sh.Status())
	})

	t.Run("should not overwrite status for unknown code pair", func(t *testing.T) {
		sh := newShipment(t)
		require.NoError(t, sh.ApplyEvent("RST", "REC"))

		err := sh.ApplyEvent("XYZ", "ABC")

		require.Error(t, err)
		require.ErrorIs(t, err, shipment.ErrUnknownTrackingCode)
		assert.Equal(t, shipment.DroppedAtRelay, sh.Status())

		var unknownErr *shipment.UnknownTrackingCodeError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "XYZ", unknownErr.EventCode)
		assert.Equal(t, "ABC", unknownErr.JustificationCode)
	})

	t.Run("should refresh the update timestamp on known events", func(t *testing.T) {
		updatedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		sh, err := shipment.RestoreShipment(
			"8R000123", kernel.NewUUID(), kernel.NewUUID(), shipment.InTransit, updatedAt)
		require.NoError(t, err)

		require.NoError(t, sh.ApplyEvent("RST", ""))

		assert.True(t, sh.UpdatedAt().After(updatedAt))
	})
}

func TestShipment_Validate(t *testing.T) {
	t.Run("zero value shipment is invalid", func(t *testing.T) {
		var sh shipment.Shipment
		require.ErrorIs(t, sh.Validate(), shipment.ErrShipmentIsNotConstructed)
	})

	t.Run("nil shipment is invalid", func(t *testing.T) {
		var sh *shipment.Shipment
		require.ErrorIs(t, sh.Validate(), shipment.ErrShipmentIsNotConstructed)
	})
}
