package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a lead captured by the public contact-us form.
type Contact struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"fullName"`
	Organization   string    `json:"organization"`
	Email          string    `json:"email"`
	AreaOfInterest string    `json:"areaOfInterest"`
	Representation string    `json:"representation"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (c Contact) TableName() string { return "contacts" }
