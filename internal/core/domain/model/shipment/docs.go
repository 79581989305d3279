// Package shipment provides the canonical parcel-tracking model of the
// shipping integration. It normalizes raw carrier event codes into a fixed
// set of canonical statuses and tracks labeled parcels through the carrier
// network.
//
// The package includes:
//   - Status: the canonical delivery-lifecycle state of a parcel
//   - Normalize: the pure decision table mapping carrier code pairs to a Status
//   - Shipment: the persisted label-to-status tracking record
//   - TrackingEvent: one raw tracking record from a carrier batch
//
// Key business rules:
//   - Statuses are derived only from carrier events, never set by user action
//   - Unknown code pairs never overwrite a known status; they are skipped
//   - Delivered and Returned are terminal; terminal parcels are not polled
package shipment
