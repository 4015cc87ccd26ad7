package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationContacted ApplicationStatus = "contacted"
)

// ValidApplicationStatus reports whether s is one of the declared states.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected, ApplicationContacted:
		return true
	}
	return false
}

// ApplicationFileKeys are the logical attachment slots an application may
// fill. Each slot holds at most one stored-file URL.
var ApplicationFileKeys = []string{"cv", "coverLetter", "employeeReference", "certificate", "other"}

// ApplicationFiles maps logical slot name to the public URL of the stored
// attachment. Slots with no upload hold an empty string and marshal to null
// through the JSONB column default. Persisted as a JSONB document.
type ApplicationFiles map[string]*string

// URLs returns every non-nil attachment URL, in no particular order.
func (f ApplicationFiles) URLs() []string {
	urls := make([]string, 0, len(f))
	for _, u := range f {
		if u != nil && *u != "" {
			urls = append(urls, *u)
		}
	}
	return urls
}

// Application is a job application submitted through the public careers form.
type Application struct {
	ID             uuid.UUID         `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName,omitempty"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone,omitempty"`
	AvailableFrom  string            `json:"availableFrom,omitempty"`
	Location       string            `json:"location,omitempty"`
	ExpectedSalary *int64            `json:"expectedSalary,omitempty"`
	Files          ApplicationFiles  `json:"files"`
	Status         ApplicationStatus `json:"status"`

	// PositionID links the application to a posting; nil when the applicant
	// applied without a specific position.
	PositionID *uuid.UUID `json:"positionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a Application) TableName() string { return "applications" }

// MonthlyCount is one month's application volume. Month is the abbreviated
// English month name ("Jan" ... "Dec").
type MonthlyCount struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// PositionCount is the number of applications received for one posting.
// Applications submitted without a posting are bucketed as "No position".
type PositionCount struct {
	Position string `json:"position"`
	Count    int64  `json:"count"`
}

// ApplicationStatisticsSummary carries the headline totals of the admin
// dashboard. The totals always cover all applications, regardless of any
// year or month filter applied to the monthly breakdown.
type ApplicationStatisticsSummary struct {
	TotalApplications int64 `json:"totalApplications"`
	ThisMonthCount    int64 `json:"thisMonthCount"`
}

// ApplicationStatistics is the aggregate view served to the admin dashboard.
// FilteredMonth is present only when a year and month filter was requested.
type ApplicationStatistics struct {
	Summary             ApplicationStatisticsSummary `json:"summary"`
	MonthlyDistribution []MonthlyCount               `json:"monthlyDistribution"`
	FilteredMonth       *MonthlyCount                `json:"filteredMonth,omitempty"`
	ByPosition          []PositionCount              `json:"byPosition"`
}
