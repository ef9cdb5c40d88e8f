package models

import "time"

// Doctor is a registered practitioner.
type Doctor struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization,omitempty"`
	Region         string    `json:"region,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// DoctorCreate is the input payload for registering a doctor.
type DoctorCreate struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Region         string `json:"region,omitempty"`
}
