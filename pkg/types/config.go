package types

// DPI bounds for the fallback density. Images that carry no usable density
// metadata are sized as if scanned at the fallback DPI.
const (
	MinDPI     = 72
	MaxDPI     = 600
	DefaultDPI = 300
)

// ConvertConfig holds settings for one conversion run. It is passed by value
// into the renderer; the CLI surface owns flag parsing and validation.
type ConvertConfig struct {
	// InputDir is the directory whose images become the PDF pages.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputPDF is the destination file path (default: <input_dir>/output.pdf).
	OutputPDF string `json:"output_pdf" yaml:"output_pdf"`

	// FallbackDPI is used when an image lacks density metadata (default 300,
	// valid range 72-600).
	FallbackDPI int `json:"fallback_dpi" yaml:"fallback_dpi"`

	// SkipValidate disables the structural check of the written PDF.
	SkipValidate bool `json:"skip_validate,omitempty" yaml:"skip_validate,omitempty"`
}

// InspectConfig holds settings for a dry-run page plan.
type InspectConfig struct {
	// InputDir is the directory to enumerate.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// FallbackDPI is used when an image lacks density metadata.
	FallbackDPI int `json:"fallback_dpi" yaml:"fallback_dpi"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// HistoryDir is the directory holding the history database
	// (default: ~/.local/share/folio).
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default maximum number of listed records (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
