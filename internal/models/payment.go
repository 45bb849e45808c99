package models

import "time"

// PaymentStatus is the state of one fee-collection session.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// Fee types collectable during intake.
const (
	FeeTypeProcessing = "processing_fee"
	FeeTypeLogin      = "login_fee"
)

// PaymentSession is one fee-collection attempt against a lead. PayLink is
// the gateway-hosted URL sent to the applicant; GatewayRef is the gateway's
// session id used for status polling.
type PaymentSession struct {
	ID         string          `json:"id"`
	FeeType    string          `json:"feeType"`
	Amount     float64         `json:"amount"`
	Remarks    string          `json:"remarks"`
	Status     PaymentStatus   `json:"status"`
	PayLink    string          `json:"payLink"`
	GatewayRef string          `json:"gatewayRef"`
	Timeline   PaymentTimeline `json:"timeline"`
}

// PaymentTimeline records the session's lifecycle timestamps.
type PaymentTimeline struct {
	CreatedAt  time.Time  `json:"createdAt"`
	SentAt     *time.Time `json:"sentAt,omitempty"`
	ReceivedAt *time.Time `json:"receivedAt,omitempty"`
}

// PaymentPatch is a partial update applied to a payment session by id.
type PaymentPatch struct {
	Status     *PaymentStatus
	Remarks    *string
	PayLink    *string
	GatewayRef *string
	SentAt     *time.Time
	ReceivedAt *time.Time
}
