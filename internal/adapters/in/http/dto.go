package http

import (
	"bytes"
	"encoding/json"
	"time"
)

// ErrorResponse is the structured error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RawField distinguishes an absent JSON key from an explicit null and from a
// value. UnmarshalJSON only runs when the key is present, so the zero value
// means "omitted".
type RawField struct {
	present bool
	value   any
}

// UnmarshalJSON records presence and keeps the decoded value; null decodes to
// a present nil.
func (f *RawField) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.value = nil
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(&f.value)
}

// Present reports whether the key appeared in the request body.
func (f RawField) Present() bool { return f.present }

// Value returns the decoded value; nil for an explicit null.
func (f RawField) Value() any { return f.value }

// TransitionItemStageRequest is the body of POST /api/v1/items/:id/stage.
type TransitionItemStageRequest struct {
	Stage string `json:"stage" validate:"required"`
	Note  string `json:"note"`
}

// TransitionItemStageResponse reports the applied transition.
type TransitionItemStageResponse struct {
	ItemID     string `json:"itemId"`
	From       string `json:"from"`
	To         string `json:"to"`
	Direction  string `json:"direction"`
	Regression bool   `json:"regression"`
	OrderStage string `json:"orderStage"`
	Note       string `json:"note,omitempty"`
}

// ItemMeasurementsRequest is one item's patch within a measurement update.
// Measurement keys are three-state: omitted keys leave the stored value
// untouched, nulls clear it.
type ItemMeasurementsRequest struct {
	ItemID string   `json:"itemId" validate:"required,uuid"`
	Height RawField `json:"height"`
	Width  RawField `json:"width"`
	Length RawField `json:"length"`
	Weight RawField `json:"weight"`

	MeasurementUnit *string `json:"measurementUnit"`
	WeightUnit      *string `json:"weightUnit"`
}

// UpdateMeasurementsRequest is the body of PATCH /api/v1/items/measurements.
// A single-item update is a one-element Items list.
type UpdateMeasurementsRequest struct {
	Items []ItemMeasurementsRequest `json:"items" validate:"required,min=1,dive"`
}

// ItemMeasurementsResponse is one item's state after a measurement update.
type ItemMeasurementsResponse struct {
	ItemID          string   `json:"itemId"`
	Height          *float64 `json:"height"`
	Width           *float64 `json:"width"`
	Length          *float64 `json:"length"`
	Weight          *float64 `json:"weight"`
	MeasurementUnit string   `json:"measurementUnit,omitempty"`
	WeightUnit      string   `json:"weightUnit,omitempty"`
}

// UpdateMeasurementsResponse lists the updated items.
type UpdateMeasurementsResponse struct {
	Items []ItemMeasurementsResponse `json:"items"`
}

// BlockingOrderResponse identifies one order preventing an account deletion.
type BlockingOrderResponse struct {
	ID            string    `json:"id"`
	PurchaseOrder string    `json:"purchaseOrder"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DeleteAccountResponse reports a deletion outcome. Blocked deletions return
// up to three example orders plus the count of further ones.
type DeleteAccountResponse struct {
	Deleted        bool                    `json:"deleted"`
	Reason         string                  `json:"reason,omitempty"`
	BlockingOrders []BlockingOrderResponse `json:"blockingOrders,omitempty"`
	OverflowCount  int                     `json:"overflowCount,omitempty"`
}

// RegressionResponse is one backward stage step.
type RegressionResponse struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	Note string    `json:"note,omitempty"`
	At   time.Time `json:"at"`
}

// AuditEntryJSON is one audit trail entry.
type AuditEntryJSON struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	ActorID   string         `json:"actorId"`
	ActorName string         `json:"actorName"`
	CreatedAt time.Time      `json:"createdAt"`
}
