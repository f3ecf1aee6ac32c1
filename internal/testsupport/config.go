package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vidaudit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Reports default to the scanned root, as in production.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "history.db")
	cfgVal.Paths.ReportDir = ""
	cfgVal.Probe.FFprobeBinary = "ffprobe"
	cfgVal.Probe.ExiftoolBinary = "exiftool"
	cfgVal.Scan.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithReportDir writes reports into a dedicated directory under the test base.
func WithReportDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.ReportDir = filepath.Join(b.baseDir, "reports")
	}
}

// WithWorkers overrides the probe worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Workers = n
	}
}

// WithoutExiftool disables ISO lookups.
func WithoutExiftool() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Probe.ExiftoolEnabled = false
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffprobe and exiftool are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffprobe", "exiftool"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteScript(b.t, filepath.Join(binDir, name), "#!/bin/sh\nexit 0\n")
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// ffprobeSidecarScript prints <input>.probe.json and fails when it is missing,
// the way ffprobe fails on an unreadable file.
const ffprobeSidecarScript = `#!/bin/sh
for last; do :; done
if [ ! -f "$last.probe.json" ]; then
  echo "$last: Invalid data found when processing input" >&2
  exit 1
fi
cat "$last.probe.json"
`

// exiftoolSidecarScript prints <input>.exif.json or an empty record.
const exiftoolSidecarScript = `#!/bin/sh
for last; do :; done
if [ -f "$last.exif.json" ]; then
  cat "$last.exif.json"
else
  echo '[{}]'
fi
`

// WithSidecarProbes points the config at stub ffprobe and exiftool binaries
// that answer from JSON sidecar files next to each video. See
// WriteProbeSidecar and WriteExifSidecar.
func WithSidecarProbes() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "sidecar-bin")
		ffprobe := filepath.Join(binDir, "ffprobe")
		exiftool := filepath.Join(binDir, "exiftool")
		WriteScript(b.t, ffprobe, ffprobeSidecarScript)
		WriteScript(b.t, exiftool, exiftoolSidecarScript)
		b.cfg.Probe.FFprobeBinary = ffprobe
		b.cfg.Probe.ExiftoolBinary = exiftool
	}
}
