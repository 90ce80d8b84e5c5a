package models

type DeliveryStatus string

const (
	DeliveryStatusSent     DeliveryStatus = "sent"
	DeliveryStatusRejected DeliveryStatus = "rejected"
)

// DeliveryOutcome is the terminal result of one delivery attempt chain.
// It is built once by the delivery service and never mutated afterwards.
type DeliveryOutcome struct {
	Status         DeliveryStatus `json:"status"`
	ConfirmationID string         `json:"confirmation_id,omitempty"`
	ProviderStatus string         `json:"provider_status,omitempty"`
	ErrorCode      string         `json:"error_code,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	From           string         `json:"from"`
	To             string         `json:"to"`
	FallbackUsed   bool           `json:"fallback_used"`
	Attempts       int            `json:"attempts"`
}

func (o *DeliveryOutcome) Sent() bool {
	return o != nil && o.Status == DeliveryStatusSent
}
