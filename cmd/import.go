package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/jsvoboda/rollcall/internal/database"
	"github.com/jsvoboda/rollcall/internal/facedetect"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Bulk-enroll students from a directory of photos",
	Long: `Bulk-enroll students from a directory of photos. Each file becomes one
student: the file name without extension is used as the student id and name
(e.g. S1-alice.jpg enrolls id "S1-alice").

Photos without a detectable face and already-enrolled ids are skipped and
reported in the summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("class", "", "Class assigned to all imported students")
}

// listPhotoFiles returns photo files in dir, sorted by name.
func listPhotoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png", ".bmp", ".webp":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	files, err := listPhotoFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no photo files found in directory")
	}

	b, err := newBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	class := mustGetString(cmd, "class")
	bar := progressbar.Default(int64(len(files)), "Enrolling")

	var enrolled, skipped int
	var failures []string
	for _, file := range files {
		bar.Add(1)

		photo, err := os.ReadFile(file)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", file, err))
			continue
		}

		id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		_, err = b.service.Enroll(cmd.Context(), attendance.EnrollRequest{
			ID:    id,
			Name:  id,
			Class: class,
			Photo: photo,
		})
		switch {
		case err == nil:
			enrolled++
		case errors.Is(err, database.ErrDuplicateID), errors.Is(err, facedetect.ErrNoFaceDetected):
			skipped++
			failures = append(failures, fmt.Sprintf("%s: %v", file, err))
		default:
			return fmt.Errorf("enrolling %s: %w", file, err)
		}
	}

	fmt.Printf("\nEnrolled %d students, skipped %d\n", enrolled, skipped)
	for _, f := range failures {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
