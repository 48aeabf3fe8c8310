package model

import "time"

// Booking admission gates only on the fields the duplicate check and
// the availability subtraction read: date, email, treatment, schedule.
// Everything else is carried through as the caller sent it.
type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	AppointmentDate string    `json:"appointment_date" bson:"appointment_date" validate:"required"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	Treatment       string    `json:"treatment" bson:"treatment" validate:"required,min=2,max=100"`
	Schedule        string    `json:"schedule" bson:"schedule" validate:"required"`
	PatientName     string    `json:"patient_name,omitempty" bson:"patient_name,omitempty"`
	Phone           string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Price           float64   `json:"price" bson:"price"`
	Paid            bool      `json:"paid" bson:"paid"`
	TransactionID   string    `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// AdmissionResult is the body returned by booking creation. A
// duplicate request is not an HTTP error: it comes back with
// Acknowledged=false and a message the portal renders directly.
type AdmissionResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId,omitempty"`
	Message      string `json:"message,omitempty"`
}
