package models

import "log/slog"

// PaymentRequest is the transient cardholder input of one payment. It is
// never persisted and never logged; String, GoString and LogValue only ever
// expose the last four digits.
type PaymentRequest struct {
	CardNumber string `json:"card_number" validate:"required"`
	Expiration string `json:"expiration"`
	CV2        string `json:"cv2"`
}

func (r PaymentRequest) String() string {
	return "PaymentRequest{card_number:" + lastFour(r.CardNumber) + "}"
}

func (r PaymentRequest) GoString() string {
	return r.String()
}

func (r PaymentRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("card_last4", lastFour(r.CardNumber)))
}

func lastFour(pan string) string {
	if len(pan) <= 4 {
		return "****"
	}
	return "****" + pan[len(pan)-4:]
}

// PaymentResponse confirms a payment; TransactionID is the Order ID.
type PaymentResponse struct {
	TransactionID int64 `json:"transaction_id"`
}
