package model

import "time"

// Payment is append-only: one record per confirmed payment,
// correlated 1:1 with a booking through BookingID.
type Payment struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingID     string    `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	Amount        float64   `json:"amount" bson:"amount" validate:"required,min=0"`
	TransactionID string    `json:"transaction_id" bson:"transaction_id" validate:"required"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
