package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProbe()
	c.normalizeScan()
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if c.Paths.ReportDir, err = expandPath(strings.TrimSpace(c.Paths.ReportDir)); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeProbe() {
	c.Probe.FFprobeBinary = binaryOrFallback(c.Probe.FFprobeBinary, EnvFFprobe, defaultFFprobeBinary)
	c.Probe.ExiftoolBinary = binaryOrFallback(c.Probe.ExiftoolBinary, EnvExiftool, defaultExiftoolBinary)
}

func binaryOrFallback(value, envKey, fallback string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	if env, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env)
	}
	return fallback
}

func (c *Config) normalizeScan() {
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = defaultExtensions()
	}
	c.Scan.Extensions = normalizeExtensions(c.Scan.Extensions)
	c.Scan.RAWExtensions = normalizeExtensions(c.Scan.RAWExtensions)

	excludes := c.Scan.ExcludeDirs[:0]
	for _, dir := range c.Scan.ExcludeDirs {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			excludes = append(excludes, trimmed)
		}
	}
	c.Scan.ExcludeDirs = excludes
}

// normalizeExtensions lowercases, adds the leading dot, and drops blanks and
// duplicates while keeping order.
func normalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func (c *Config) normalizeReport() {
	c.Report.FileName = strings.TrimSpace(c.Report.FileName)
	if c.Report.FileName == "" {
		c.Report.FileName = defaultReportFileName
	}
	formats := make([]string, 0, len(c.Report.Formats))
	seen := map[string]struct{}{}
	for _, f := range c.Report.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		formats = []string{FormatHTML}
	}
	c.Report.Formats = formats
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
