// Package carrier provides the HTTP client for the external carrier API used
// for label issuance, waybill generation and tracking.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// Client implements ports.CarrierClient against the carrier's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a carrier API client.
//
// Parameters:
//   - baseURL: root URL of the carrier API, with or without a trailing slash
//   - apiKey: API key sent with every request
//   - logger: structured logger; the client logs with component "carrier_client"
func NewClient(baseURL, apiKey string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With("component", "carrier_client"),
	}, nil
}

// PlaceLabel requests a shipping label for one package.
func (c *Client) PlaceLabel(ctx context.Context, request ports.LabelRequest) (ports.PlacedLabel, error) {
	payload := placeLabelRequest{
		OrderID:     request.OrderID.String(),
		PackageID:   request.PackageID.String(),
		WeightGrams: request.WeightGrams,
		Method:      request.Method.String(),
	}

	var response placeLabelResponse
	if err := c.post(ctx, "/labels", payload, &response); err != nil {
		return ports.PlacedLabel{}, fmt.Errorf("place label for package %s: %w", request.PackageID, err)
	}

	if response.LabelNumber == "" {
		return ports.PlacedLabel{}, fmt.Errorf("carrier returned an empty label number for package %s",
			request.PackageID)
	}

	c.logger.InfoContext(ctx, "shipping label placed",
		"package_id", request.PackageID.String(),
		"label_number", response.LabelNumber)

	return ports.PlacedLabel{
		LabelNumber: response.LabelNumber,
		DocumentURL: response.DocumentURL,
	}, nil
}

// GenerateWaybill requests the transport document covering the labeled
// packages of one order.
func (c *Client) GenerateWaybill(ctx context.Context, request ports.WaybillRequest) (ports.Waybill, error) {
	payload := generateWaybillRequest{
		OrderID:      request.OrderID.String(),
		LabelNumbers: request.LabelNumbers,
	}

	var response generateWaybillResponse
	if err := c.post(ctx, "/waybills", payload, &response); err != nil {
		return ports.Waybill{}, fmt.Errorf("generate waybill for order %s: %w", request.OrderID, err)
	}

	if response.DocumentURL == "" {
		return ports.Waybill{}, fmt.Errorf("carrier returned an empty waybill document for order %s",
			request.OrderID)
	}

	c.logger.InfoContext(ctx, "waybill generated",
		"order_id", request.OrderID.String(),
		"label_count", len(request.LabelNumbers))

	return ports.Waybill{DocumentURL: response.DocumentURL}, nil
}

// FetchTrackingEvents retrieves the latest raw carrier event of each label.
func (c *Client) FetchTrackingEvents(
	ctx context.Context,
	labelNumbers []string,
) ([]shipment.TrackingEvent, error) {
	if len(labelNumbers) == 0 {
		return []shipment.TrackingEvent{}, nil
	}

	var response trackingResponse
	if err := c.post(ctx, "/tracking", trackingRequest{LabelNumbers: labelNumbers}, &response); err != nil {
		return nil, fmt.Errorf("fetch tracking events: %w", err)
	}

	events := make([]shipment.TrackingEvent, 0, len(response.Events))
	for _, dto := range response.Events {
		events = append(events, shipment.TrackingEvent{
			LabelNumber:       dto.LabelNumber,
			EventCode:         dto.EventCode,
			JustificationCode: dto.JustificationCode,
		})
	}

	return events, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("carrier API error: status %d, body: %s", resp.StatusCode, string(responseBody))
	}

	if err = json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
