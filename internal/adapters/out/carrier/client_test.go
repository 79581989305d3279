package carrier_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"shipping/internal/adapters/out/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *carrier.Client {
	t.Helper()
	client, err := carrier.NewClient(url, "test-key", slog.Default())
	require.NoError(t, err)
	return client
}

func TestNewClient_MissingConfiguration_ReturnsError(t *testing.T) {
	_, err := carrier.NewClient("", "key", slog.Default())
	assert.Error(t, err)

	_, err = carrier.NewClient("https://carrier.example", "", slog.Default())
	assert.Error(t, err)
}

func TestClient_PlaceLabel_Success(t *testing.T) {
	packageID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/labels", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, packageID.String(), payload["packageId"])
		assert.Equal(t, "Relay", payload["method"])
		assert.InDelta(t, 5200, payload["weightGrams"], 0.001)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"labelNumber": "LBL-001",
			"documentUrl": "https://carrier.example/labels/LBL-001.pdf",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	placed, err := client.PlaceLabel(context.Background(), ports.LabelRequest{
		OrderID:     kernel.NewUUID(),
		PackageID:   packageID,
		WeightGrams: 5200,
		Method:      order.MethodRelay,
	})

	require.NoError(t, err)
	assert.Equal(t, "LBL-001", placed.LabelNumber)
	assert.Equal(t, "https://carrier.example/labels/LBL-001.pdf", placed.DocumentURL)
}

func TestClient_PlaceLabel_EmptyLabelNumber_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"labelNumber": ""})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.PlaceLabel(context.Background(), ports.LabelRequest{
		OrderID:     kernel.NewUUID(),
		PackageID:   kernel.NewUUID(),
		WeightGrams: 100,
		Method:      order.MethodHome,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty label number")
}

func TestClient_PlaceLabel_CarrierRejection_ReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"weight above contract limit"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.PlaceLabel(context.Background(), ports.LabelRequest{
		OrderID:     kernel.NewUUID(),
		PackageID:   kernel.NewUUID(),
		WeightGrams: 500000,
		Method:      order.MethodHomePlus,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}

func TestClient_GenerateWaybill_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/waybills", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Len(t, payload["labelNumbers"], 2)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"documentUrl": "https://carrier.example/waybills/WB-9.pdf",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	waybill, err := client.GenerateWaybill(context.Background(), ports.WaybillRequest{
		OrderID:      kernel.NewUUID(),
		LabelNumbers: []string{"LBL-001", "LBL-002"},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://carrier.example/waybills/WB-9.pdf", waybill.DocumentURL)
}

func TestClient_FetchTrackingEvents_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tracking", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"events": []map[string]string{
				{"labelNumber": "LBL-001", "eventCode": "APF", "justificationCode": ""},
				{"labelNumber": "LBL-002", "eventCode": "SOL", "justificationCode": "LIV"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	events, err := client.FetchTrackingEvents(context.Background(), []string{"LBL-001", "LBL-002"})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "LBL-001", events[0].LabelNumber)
	assert.Equal(t, "APF", events[0].EventCode)
	assert.Equal(t, "SOL", events[1].EventCode)
	assert.Equal(t, "LIV", events[1].JustificationCode)
}

func TestClient_FetchTrackingEvents_NoLabels_SkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for an empty label set")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	events, err := client.FetchTrackingEvents(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, events)
}
