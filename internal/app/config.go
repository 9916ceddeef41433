package app

// Constants
const (
	// Error messages
	ErrEditModeDisabled     = "Edit mode disabled"
	ErrInvalidYear          = "Invalid year"
	ErrInvalidFormat        = "Invalid format"
	ErrFailedToGenerateJSON = "Failed to generate JSON"
	ErrYearMismatch         = "Dataset year does not match URL"

	// Mode strings
	ModeServe = "serve"
	ModeEdit  = "edit"

	// ICS constants
	ICSProductID = "-//WB Services//Ferien-Checker//DE"
	ICSTimezone  = "Europe/Berlin"
	ICSDomain    = "ferien-checker.wb-services.de"

	// maxUploadSize bounds an uploaded dataset body.
	maxUploadSize = 1 << 20
)

// Defaults prefill the comparison form.
type Defaults struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Region string `json:"region"`
	Year   int    `json:"year"`
}
