package transfer

import (
	"errors"
	"fmt"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

// ImportedMessage is the status shown after a successful import
func ImportedMessage(count int) string {
	return fmt.Sprintf("Successfully imported %d workout(s)", count)
}

// ImportErrorMessage maps an import failure to its status message
func ImportErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoValidWorkouts):
		return "No valid workouts found in the file"
	case errors.Is(err, domain.ErrNotArray):
		return "Invalid file format. Expected an array of workouts."
	default:
		return "Error reading file. Please check the JSON format."
	}
}

// ExportedMessage is the status shown after a successful export
func ExportedMessage(count int, format Format) string {
	if format == FormatMarkdown {
		return fmt.Sprintf("Exported %d workout(s) as Markdown", count)
	}
	return fmt.Sprintf("Exported %d workout(s) successfully", count)
}

// ExportErrorMessage maps an export failure to its status message
func ExportErrorMessage(err error, format Format) string {
	switch {
	case errors.Is(err, domain.ErrNothingToExport):
		return "No workouts to export"
	case format == FormatMarkdown:
		return "Error exporting workouts as text"
	default:
		return "Error exporting workouts"
	}
}

// ClearedMessage is the status shown after clearing every workout
const ClearedMessage = "All workouts cleared"
