package transfer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

// Format is an export file format
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts json, md or markdown
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Filename returns the download name for an export made at now,
// e.g. workout-timer-pro-2025-03-01.json
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("workout-timer-pro-%s.%s", now.Format("2006-01-02"), format)
}

// Export renders workouts in the given format
func Export(workouts []domain.Workout, format Format, now time.Time) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return ExportMarkdown(workouts, now)
	default:
		return ExportJSON(workouts)
	}
}

// ExportJSON serialises the list with two-space indentation. The output
// is a valid import file.
func ExportJSON(workouts []domain.Workout) ([]byte, error) {
	if len(workouts) == 0 {
		return nil, domain.ErrNothingToExport
	}
	data, err := json.MarshalIndent(workouts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal workouts: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportMarkdown renders a human-readable report of every workout
func ExportMarkdown(workouts []domain.Workout, now time.Time) ([]byte, error) {
	if len(workouts) == 0 {
		return nil, domain.ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString("# Workout Timer Pro - Exported Workouts\n\n")
	fmt.Fprintf(&b, "Exported on: %s\n", formatDate(now))
	fmt.Fprintf(&b, "Total Workouts: %d\n\n", len(workouts))
	b.WriteString("---\n\n")

	for i, w := range workouts {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, w.Name)
		fmt.Fprintf(&b, "**Created:** %s\n", formatDate(w.CreatedAt))
		fmt.Fprintf(&b, "**Exercises:** %d\n", len(w.Exercises))
		fmt.Fprintf(&b, "**Estimated Duration:** ~%d minutes\n\n",
			domain.RoundMinutes(domain.PlannedSeconds(w.Exercises)))

		b.WriteString("### Exercises:\n\n")
		for j, ex := range w.Exercises {
			fmt.Fprintf(&b, "%d. **%s**\n", j+1, ex.Name)
			fmt.Fprintf(&b, "   - Type: %s\n", ex.Type.Label())
			if ex.IsDuration() {
				fmt.Fprintf(&b, "   - Duration per set: %s seconds\n", ex.Duration)
			} else {
				fmt.Fprintf(&b, "   - Reps per set: %s\n", ex.Reps)
			}
			fmt.Fprintf(&b, "   - Sets: %d\n", ex.Sets)
			fmt.Fprintf(&b, "   - Rest between sets: %d seconds\n", ex.RestBetweenSets)
			fmt.Fprintf(&b, "   - Rest after exercise: %d seconds\n", ex.RestBetweenExercises)
			if ex.MediaURL != "" {
				fmt.Fprintf(&b, "   - Media: %s\n", ex.MediaURL)
			}
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}

	return []byte(b.String()), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("Jan 2, 2006")
}
