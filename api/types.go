package api

import (
	"time"

	"github.com/ruteri/halow-dashboard/interfaces"
)

// ErrorResponse is the JSON body of every failed API-style request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SecretTagsResponse is the body of GET /secrets/{secretName}/tags.
type SecretTagsResponse struct {
	Name            string            `json:"name"`
	Tags            map[string]string `json:"tags"`
	Description     string            `json:"description,omitempty"`
	CreatedDate     *time.Time        `json:"createdDate,omitempty"`
	LastChangedDate *time.Time        `json:"lastChangedDate,omitempty"`
}

// ProbeResponse is the fixed-shape body of the probe endpoints.
type ProbeResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Probe     string `json:"probe"`
}

// PageData is common to every rendered page.
type PageData struct {
	Title       string
	Environment string
	TableName   string
	CurrentTab  string

	// Notice is the degraded-mode message shown above the page content.
	Notice string
}

// DashboardPage is the view model of the record listing.
type DashboardPage struct {
	PageData
	Items []interfaces.Record
}

// SecretsPage is the view model of the secrets listing.
type SecretsPage struct {
	PageData
	Secrets       []interfaces.SecretDescriptor
	SearchQuery   string
	SelectedTag   string
	AvailableTags []string
	TotalSecrets  int
}

// ErrorPage is the view model of the generic error page.
type ErrorPage struct {
	PageData
	Message string
	Error   string
}
