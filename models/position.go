package models

import (
	"time"

	"github.com/google/uuid"
)

// PositionType is the closed set of employment types a job posting may carry.
type PositionType string

const (
	PositionFullTime   PositionType = "Full-time"
	PositionPartTime   PositionType = "Part-time"
	PositionInternship PositionType = "Internship"
	PositionFreelance  PositionType = "Freelance"
	PositionContract   PositionType = "Contract"
	PositionTemporary  PositionType = "Temporary"
)

// ValidPositionType reports whether t is one of the declared employment types.
func ValidPositionType(t PositionType) bool {
	switch t {
	case PositionFullTime, PositionPartTime, PositionInternship,
		PositionFreelance, PositionContract, PositionTemporary:
		return true
	}
	return false
}

// Position is a job posting shown on the careers section of the site.
type Position struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Location         string       `json:"location"`
	Type             PositionType `json:"type"`
	WhatWeOffer      string       `json:"whatWeOffer,omitempty"`
	WhyWeAreLooking  string       `json:"whyWeAreLooking,omitempty"`
	Responsibilities string       `json:"responsibilities,omitempty"`
	Skills           string       `json:"skills,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func (p Position) TableName() string { return "positions" }

// PositionUpdate carries a partial update of a posting. Nil fields are left
// unchanged.
type PositionUpdate struct {
	Name             *string       `json:"name"`
	Location         *string       `json:"location"`
	Type             *PositionType `json:"type"`
	WhatWeOffer      *string       `json:"whatWeOffer"`
	WhyWeAreLooking  *string       `json:"whyWeAreLooking"`
	Responsibilities *string       `json:"responsibilities"`
	Skills           *string       `json:"skills"`
}

// ApplicationSummary is the reduced application view embedded in position
// reads so the admin UI can show applicants without a second request.
type ApplicationSummary struct {
	ID        uuid.UUID         `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName,omitempty"`
	Email     string            `json:"email"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// PositionWithApplications is a posting joined with its application count
// and summaries.
type PositionWithApplications struct {
	Position
	ApplicationsCount int                  `json:"applicationsCount"`
	Applications      []ApplicationSummary `json:"applications"`
}
