package models

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

// APIInfo is returned by /api/info.
type APIInfo struct {
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TabSummary is a tab together with its article count, printed by the CLI.
type TabSummary struct {
	Tab
	Articles int `json:"articles"`
}
