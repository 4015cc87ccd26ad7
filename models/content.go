package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is an arbitrary JSON object stored as-is in a JSONB column.
// CMS payloads are free-form: the frontend owns their shape, the backend
// only persists, localizes, and serves them.
type Document = map[string]any

// FileMap maps a logical slot name (e.g. "main_logo", "hero") to the public
// URL of the stored upload backing that slot.
type FileMap map[string]string

// PageData is the stored payload of a CMS page: the free-form page object
// plus the image slots attached to it.
type PageData struct {
	PageObj Document `json:"pageObj"`
	Images  FileMap  `json:"images"`
}

// Page is a CMS page identified by its unique title.
type Page struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Data      PageData  `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Page) TableName() string { return "pages" }

// ServiceData is the stored payload of a service entry.
type ServiceData struct {
	ServiceObj Document `json:"serviceObj"`
	Images     FileMap  `json:"images"`
}

// Service is a CMS service entry identified by its unique title.
type Service struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Data      ServiceData `json:"data"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (s Service) TableName() string { return "services" }

// ConfigurationData is the stored payload of the site-wide configuration
// singleton: the free-form config object plus its image and video slots.
type ConfigurationData struct {
	ConfigObj Document `json:"configObj"`
	Images    FileMap  `json:"images"`
	Videos    FileMap  `json:"videos"`
}

// Configuration is the single site-wide configuration document.
type Configuration struct {
	ID        uuid.UUID         `json:"id"`
	Data      ConfigurationData `json:"data"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (c Configuration) TableName() string { return "configuration" }
