package cli

// Default values for CLI flags and output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// ProgressBarWidth is the number of cells of a progress bar.
	ProgressBarWidth = 30
	// ProgressNameWidth is the column width of stage names next to a bar.
	ProgressNameWidth = 32
)
