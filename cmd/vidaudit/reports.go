package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"vidaudit/internal/config"
	"vidaudit/internal/fileutil"
	"vidaudit/internal/render"
	"vidaudit/internal/report"
)

// writtenReport is one report file produced for a batch.
type writtenReport struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// reportPaths returns the destination per configured format. The JSON report
// shares the HTML file's stem.
func reportPaths(cfg *config.Config, root string, formats []string) []writtenReport {
	dir := cfg.ReportDirFor(root)
	stem := strings.TrimSuffix(cfg.Report.FileName, filepath.Ext(cfg.Report.FileName))
	out := make([]writtenReport, 0, len(formats))
	for _, format := range formats {
		switch format {
		case config.FormatHTML:
			out = append(out, writtenReport{Format: format, Path: filepath.Join(dir, cfg.Report.FileName)})
		case config.FormatJSON:
			out = append(out, writtenReport{Format: format, Path: filepath.Join(dir, stem+".json")})
		}
	}
	return out
}

func writeReports(cfg *config.Config, model *report.Model, formats []string) ([]writtenReport, error) {
	targets := reportPaths(cfg, model.Root, formats)
	for _, target := range targets {
		renderFn := render.HTML
		if target.Format == config.FormatJSON {
			renderFn = render.JSON
		}
		err := fileutil.WriteAtomic(target.Path, 0o644, func(w io.Writer) error {
			return renderFn(w, *model)
		})
		if err != nil {
			return nil, fmt.Errorf("write %s report: %w", target.Format, err)
		}
	}
	return targets, nil
}
