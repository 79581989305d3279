package http

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LineItemRequest is one purchased product line of a new order.
type LineItemRequest struct {
	ProductID       string `json:"productId"`
	UnitWeightGrams int    `json:"unitWeightGrams"`
	Quantity        int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Method   string            `json:"method"`
	Subtotal float64           `json:"subtotal"`
	Items    []LineItemRequest `json:"items"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// AddPackageResponse returns the position of the opened package.
type AddPackageResponse struct {
	PackageIndex int `json:"packageIndex"`
}

// AddItemRequest is the body of POST .../packages/:packageIndex/items.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// DimensionsRequest carries package dimensions in centimeters.
type DimensionsRequest struct {
	Height int `json:"height"`
	Width  int `json:"width"`
	Length int `json:"length"`
}

// UpdatePackageRequest is the body of PATCH .../packages/:packageIndex.
// A zero WeightGrams clears the manual weight override.
type UpdatePackageRequest struct {
	WeightGrams int                `json:"weightGrams"`
	Dimensions  *DimensionsRequest `json:"dimensions"`
}

// InsertTariffRuleRequest is the body of POST /api/v1/tariffs.
type InsertTariffRuleRequest struct {
	MethodName        string   `json:"methodName"`
	Criterion         string   `json:"criterion"`
	MinValue          float64  `json:"minValue"`
	MaxValue          *float64 `json:"maxValue"`
	Price             float64  `json:"price"`
	ShippingThreshold *float64 `json:"shippingThreshold"`
}

// InsertTariffRuleResponse returns the identifier of the inserted rule.
type InsertTariffRuleResponse struct {
	RuleID string `json:"ruleId"`
}

// ShippingCostResponse is the priced result of GET /api/v1/shipping-cost.
type ShippingCostResponse struct {
	Method string  `json:"method"`
	Cost   float64 `json:"cost"`
	Free   bool    `json:"free"`
}

// PackageItemResponse is one placement within a package.
type PackageItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PackageResponse is the read model of one package.
type PackageResponse struct {
	ID            string                `json:"id"`
	WeightGrams   int                   `json:"weightGrams"`
	ShippingLabel string                `json:"shippingLabel,omitempty"`
	LabelDocument string                `json:"labelDocument,omitempty"`
	Status        string                `json:"status"`
	Items         []PackageItemResponse `json:"items"`
}

// OrderPackagesResponse is the composition read model of one order.
type OrderPackagesResponse struct {
	OrderID           string            `json:"orderId"`
	FulfillmentStatus string            `json:"fulfillmentStatus"`
	WaybillDocument   string            `json:"waybillDocument,omitempty"`
	Packages          []PackageResponse `json:"packages"`
}

// TrackingEventRequest is one raw carrier event pushed to the webhook.
type TrackingEventRequest struct {
	LabelNumber       string `json:"labelNumber"`
	EventCode         string `json:"eventCode"`
	JustificationCode string `json:"justificationCode"`
}

// TrackingEventsRequest is the body of POST /api/v1/tracking/events.
type TrackingEventsRequest struct {
	Events []TrackingEventRequest `json:"events"`
}

// TrackingEventsResponse maps each applied label to its normalized status.
// Skipped events (unknown label or unknown code pair) are absent.
type TrackingEventsResponse struct {
	Applied map[string]string `json:"applied"`
}
