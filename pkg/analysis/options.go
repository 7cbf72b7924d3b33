package analysis

// SortField specifies how to sort the language aggregation.
type SortField string

const (
	// SortByCount sorts by fence count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeOutline includes the per-file heading outline.
	IncludeOutline bool

	// IncludeLinks includes the per-file link inventory.
	IncludeLinks bool

	// SortBy specifies how to sort Languages.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeOutline: true,
		IncludeLinks:   true,
		SortBy:         SortByCount,
		SortDesc:       true,
	}
}
