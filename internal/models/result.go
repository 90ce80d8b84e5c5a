package models

type ResultKind string

const (
	ResultDelivered     ResultKind = "delivered"
	ResultRejected      ResultKind = "rejected"
	ResultUnauthorized  ResultKind = "unauthorized"
	ResultUnparseable   ResultKind = "unparseable"
	ResultMalformed     ResultKind = "malformed"
	ResultDuplicate     ResultKind = "duplicate"
	ResultInternalError ResultKind = "internal_error"
)

// Result is what handling one inbound message produced. Every kind is a
// normal completion from the host's point of view.
type Result struct {
	Kind    ResultKind       `json:"kind"`
	Outcome *DeliveryOutcome `json:"outcome,omitempty"`
	Err     error            `json:"-"`
}

// Acknowledgement is the short body returned to the webhook caller.
func (r *Result) Acknowledgement() string {
	if r == nil {
		return "error"
	}
	switch r.Kind {
	case ResultDelivered, ResultRejected:
		return "ok"
	case ResultUnauthorized:
		return "unauthorized"
	case ResultUnparseable:
		return "bad format"
	case ResultMalformed:
		return "no chat"
	case ResultDuplicate:
		return "duplicate"
	default:
		return "error"
	}
}
