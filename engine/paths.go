package engine

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputPath maps an input file to its output location. With a known input
// root the relative directory structure is mirrored under the output
// folder; otherwise files land flat under the output folder by base name.
func OutputPath(job *Job, inputPath string) (string, error) {
	if job.InputRoot == "" {
		return filepath.Join(job.OutputDir, filepath.Base(inputPath)), nil
	}
	rel, err := filepath.Rel(job.InputRoot, inputPath)
	if err != nil {
		return "", fmt.Errorf("relativize %s against %s: %w", inputPath, job.InputRoot, err)
	}
	return filepath.Join(job.OutputDir, rel), nil
}

// ExistingOutputs lists the output paths a job would overwrite. Callers
// must surface these and get confirmation before starting the run; the
// engine itself overwrites silently once running.
func ExistingOutputs(job *Job) ([]string, error) {
	var existing []string
	for _, f := range job.Files {
		out, err := OutputPath(job, f)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(out); err == nil {
			existing = append(existing, out)
		}
	}
	return existing, nil
}
