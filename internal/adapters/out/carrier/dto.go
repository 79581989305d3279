package carrier

// placeLabelRequest is the wire form of a label request.
type placeLabelRequest struct {
	OrderID     string `json:"orderId"`
	PackageID   string `json:"packageId"`
	WeightGrams int    `json:"weightGrams"`
	Method      string `json:"method"`
}

// placeLabelResponse is the carrier's answer to a label request.
type placeLabelResponse struct {
	LabelNumber string `json:"labelNumber"`
	DocumentURL string `json:"documentUrl"`
}

// generateWaybillRequest is the wire form of a waybill request.
type generateWaybillRequest struct {
	OrderID      string   `json:"orderId"`
	LabelNumbers []string `json:"labelNumbers"`
}

// generateWaybillResponse is the carrier's transport document reference.
type generateWaybillResponse struct {
	DocumentURL string `json:"documentUrl"`
}

// trackingRequest asks for the latest event of each label.
type trackingRequest struct {
	LabelNumbers []string `json:"labelNumbers"`
}

// trackingEventDTO is one raw carrier event on the wire. The code pair stays
// untranslated; normalization happens in the domain.
type trackingEventDTO struct {
	LabelNumber       string `json:"labelNumber"`
	EventCode         string `json:"eventCode"`
	JustificationCode string `json:"justificationCode"`
}

// trackingResponse is the carrier's answer to a tracking request.
type trackingResponse struct {
	Events []trackingEventDTO `json:"events"`
}
