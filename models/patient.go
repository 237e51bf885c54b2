package models

import "time"

// Patient is an opaque directory record. The engine treats patient identity
// as a foreign key; full patient record management is external.
type Patient struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// PatientRef identifies an existing patient, or carries enough to
// find-or-create one by phone during walk-in registration.
type PatientRef struct {
	PatientID string `json:"patientId,omitempty"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
