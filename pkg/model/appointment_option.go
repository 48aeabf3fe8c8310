package model

// AppointmentOption is one treatment in the read-only catalog. Slots
// hold the full offering for a day; availability views subtract the
// slots already taken by same-day bookings.
type AppointmentOption struct {
	ID    string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string   `json:"name" bson:"name"`
	Price float64  `json:"price" bson:"price"`
	Slots []string `json:"slots" bson:"slots"`
}

// Specialty is the name-only projection of an AppointmentOption used
// by the doctor management forms.
type Specialty struct {
	ID   string `json:"id,omitempty" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}
