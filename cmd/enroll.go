package cmd

import (
	"fmt"
	"os"

	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/spf13/cobra"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll <photo>",
	Short: "Enroll a student from a photo file",
	Long: `Enroll a student by computing a face descriptor from a photo on disk.

Examples:
  rollcall enroll alice.jpg --id S1 --name "Alice Novak" --class 4A
  rollcall enroll bob.png --id S2 --name "Bob Svec" --email bob@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)

	enrollCmd.Flags().String("id", "", "Student id (required)")
	enrollCmd.Flags().String("name", "", "Student name")
	enrollCmd.Flags().String("email", "", "Student email")
	enrollCmd.Flags().String("class", "", "Student class")
	enrollCmd.MarkFlagRequired("id")
}

func runEnroll(cmd *cobra.Command, args []string) error {
	photo, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading photo: %w", err)
	}

	b, err := newBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	student, err := b.service.Enroll(cmd.Context(), attendance.EnrollRequest{
		ID:    mustGetString(cmd, "id"),
		Name:  mustGetString(cmd, "name"),
		Email: mustGetString(cmd, "email"),
		Class: mustGetString(cmd, "class"),
		Photo: photo,
	})
	if err != nil {
		return fmt.Errorf("enrolling student: %w", err)
	}

	fmt.Printf("Enrolled %s (%s), descriptor dim %d\n", student.Name, student.ID, len(student.Descriptor))
	return nil
}
