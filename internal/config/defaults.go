package config

const (
	defaultLogDir           = "~/.local/share/vidaudit/logs"
	defaultHistoryDB        = "~/.local/share/vidaudit/history.db"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultFFprobeBinary    = "ffprobe"
	defaultExiftoolBinary   = "exiftool"
	defaultProbeTimeout     = 30
	defaultWorkers          = 4
	defaultReportFileName   = "video-report.html"
	defaultISOThreshold     = 4000
	defaultRAWISOThreshold  = 800
	defaultKeepBatches      = 50
)

// Environment variables consulted when a probe binary is not configured.
const (
	EnvFFprobe  = "VIDAUDIT_FFPROBE"
	EnvExiftool = "VIDAUDIT_EXIFTOOL"
)

// Report formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

func defaultExtensions() []string {
	return []string{
		".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v",
		".mpg", ".mpeg", ".ts", ".mts", ".m2ts", ".hevc", ".h264", ".264",
		".265", ".rmvb", ".rm", ".3gp", ".f4v", ".m2v", ".mp2", ".mpe",
		".mpv", ".ogv", ".qt", ".vob",
		".crm", ".mxf", ".nev", ".r3d",
	}
}

// Default returns a Config populated with repository defaults. Probe
// binaries are left empty so normalization can apply environment fallbacks.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Probe: Probe{
			ExiftoolEnabled: true,
			TimeoutSeconds:  defaultProbeTimeout,
		},
		Scan: Scan{
			Extensions:    defaultExtensions(),
			RAWExtensions: []string{".crm", ".nev", ".r3d"},
			Workers:       defaultWorkers,
		},
		Report: Report{
			FileName:        defaultReportFileName,
			Formats:         []string{FormatHTML},
			ISOThreshold:    defaultISOThreshold,
			RAWISOThreshold: defaultRAWISOThreshold,
		},
		History: History{
			Enabled:     true,
			KeepBatches: defaultKeepBatches,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
