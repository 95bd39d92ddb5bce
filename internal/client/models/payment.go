// Package models holds the DTOs the CLI exchanges with the gateway.
package models

import "time"

// PaymentRequest is sent to POST /. String never exposes more than the last
// four digits of the card number.
type PaymentRequest struct {
	CardNumber string `json:"card_number"`
	Expiration string `json:"expiration"`
	CV2        string `json:"cv2"`
}

func (r PaymentRequest) String() string {
	return "PaymentRequest{card_number:" + MaskCard(r.CardNumber) + "}"
}

func (r PaymentRequest) GoString() string {
	return r.String()
}

// MaskCard keeps the last four characters of pan.
func MaskCard(pan string) string {
	if len(pan) <= 4 {
		return "****"
	}
	return "****" + pan[len(pan)-4:]
}

type PaymentResult struct {
	TransactionID int64 `json:"transaction_id"`
}

type Order struct {
	ID        int64      `json:"id"`
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ErrorBody is the gateway's error payload.
type ErrorBody struct {
	Message string `json:"message"`
}
