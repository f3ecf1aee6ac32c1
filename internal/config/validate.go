package config

import (
	"errors"
	"fmt"
	"strings"
)

const maxWorkers = 64

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProbe(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProbe() error {
	if c.Probe.TimeoutSeconds <= 0 {
		return errors.New("probe.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers <= 0 || c.Scan.Workers > maxWorkers {
		return fmt.Errorf("scan.workers must be between 1 and %d", maxWorkers)
	}
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must list at least one extension")
	}
	return nil
}

func (c *Config) validateReport() error {
	if strings.ContainsAny(c.Report.FileName, `/\`) {
		return fmt.Errorf("report.file_name must be a bare file name, got %q", c.Report.FileName)
	}
	for _, f := range c.Report.Formats {
		switch f {
		case FormatHTML, FormatJSON:
		default:
			return fmt.Errorf("report.formats: unsupported value %q (want html or json)", f)
		}
	}
	if c.Report.ISOThreshold <= 0 {
		return errors.New("report.iso_threshold must be positive")
	}
	if c.Report.RAWISOThreshold <= 0 {
		return errors.New("report.raw_iso_threshold must be positive")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.KeepBatches < 0 {
		return errors.New("history.keep_batches must be zero (keep all) or positive")
	}
	if c.History.Enabled && c.Paths.HistoryDB == "" {
		return errors.New("paths.history_db must be set when history is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero (disabled) or positive")
	}
	return nil
}
