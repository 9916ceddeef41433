package app

import "github.com/klabast/wb-services/ferien-checker/internal/compare"

// RegionInfo describes one selectable region
type RegionInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ConfigResponse is returned by /api/config
type ConfigResponse struct {
	Regions        []RegionInfo `json:"regions"`
	AvailableYears []int        `json:"availableYears"`
	Defaults       Defaults     `json:"defaults"`
	MaxRangeDays   int          `json:"maxRangeDays"`
	EditMode       bool         `json:"editMode"`
}

// CompareResponse is returned by /api/compare
type CompareResponse struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Year       int    `json:"year"`
	Region     string `json:"region"`
	RegionName string `json:"region_name"`
	Days       int    `json:"days"`
	compare.Result
	// Message is set when a side has no matches at all.
	DEMessage string `json:"de_message,omitempty"`
	DKMessage string `json:"dk_message,omitempty"`
}

// ErrorResponse is the body of every failed API request
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DatasetStatus is returned by /api/dataset/status
type DatasetStatus struct {
	HasChanges bool  `json:"has_changes"`
	TmpYears   []int `json:"tmp_years"`
	Years      []int `json:"years"`
}
