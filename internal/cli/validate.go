package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/aretw0/fable"
	"github.com/aretw0/fable/internal/presentation/tui"
	"github.com/aretw0/fable/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// FileReport is the validation outcome for one story file.
type FileReport struct {
	Path   string                   `json:"path"`
	Result *domain.ValidationResult `json:"result,omitempty"`
	// Error is set when the file could not be loaded at all.
	Error string `json:"error,omitempty"`
}

// OK reports whether the file loaded and validated without errors.
func (r FileReport) OK() bool {
	return r.Error == "" && r.Result != nil && r.Result.Valid
}

// ValidateFiles loads and validates every path concurrently. Reports come
// back in the order of paths; load failures are recorded, not returned.
func ValidateFiles(ctx context.Context, paths []string) ([]FileReport, error) {
	reports := make([]FileReport, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = validateFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func validateFile(path string) FileReport {
	story, err := fable.LoadStory(path)
	if err != nil {
		return FileReport{Path: path, Error: err.Error()}
	}
	result := fable.Validate(story)
	return FileReport{Path: path, Result: &result}
}

// WriteReports prints reports as text or JSON and reports whether all passed.
func WriteReports(w io.Writer, reports []FileReport, asJSON bool) (bool, error) {
	allOK := true
	for _, r := range reports {
		allOK = allOK && r.OK()
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return false, fmt.Errorf("failed to encode report: %w", err)
		}
		return allOK, nil
	}

	p := profileFor(w)
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(w, "%s: %s %s\n", r.Path, tui.SeverityLabel(p, domain.SeverityError), r.Error)
			continue
		}
		tui.PrintReport(w, p, r.Path, *r.Result)
	}
	return allOK, nil
}
