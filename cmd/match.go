package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <photo>",
	Short: "Match a photo against enrolled students",
	Long: `Match a photo on disk against the enrolled face descriptors.

Examples:
  # Match with the configured threshold
  rollcall match snapshot.jpg

  # Stricter matching
  rollcall match snapshot.jpg --threshold 0.4

  # Machine-readable output
  rollcall match snapshot.jpg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Float64("threshold", 0, "Max descriptor distance for a match (overrides MATCH_THRESHOLD)")
	matchCmd.Flags().Bool("json", false, "Output as JSON")
}

func runMatch(cmd *cobra.Command, args []string) error {
	photo, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading photo: %w", err)
	}

	b, err := newBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	if threshold := mustGetFloat64(cmd, "threshold"); threshold > 0 {
		b.withThreshold(threshold)
	}

	match, err := b.service.Match(cmd.Context(), photo)
	if err != nil {
		if errors.Is(err, attendance.ErrNoMatchFound) {
			fmt.Println("No matching student found.")
			return nil
		}
		return fmt.Errorf("matching photo: %w", err)
	}

	if mustGetBool(cmd, "json") {
		out := map[string]any{
			"studentId":   match.StudentID,
			"studentName": match.StudentName,
			"distance":    match.Distance,
			"confidence":  fmt.Sprintf("%.2f", match.Confidence),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Matched %s (%s)\n", match.StudentName, match.StudentID)
	fmt.Printf("  Distance:   %.4f\n", match.Distance)
	fmt.Printf("  Confidence: %.2f%%\n", match.Confidence)
	return nil
}
