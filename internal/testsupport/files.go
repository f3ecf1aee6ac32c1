package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteScript writes an executable script to path.
func WriteScript(t testing.TB, path, script string) {
	t.Helper()

	WriteFile(t, path, script)
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

// TouchFiles creates placeholder files under root for each relative path and
// returns their absolute paths in argument order.
func TouchFiles(t testing.TB, root string, rels ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		WriteFile(t, path, "x")
		paths = append(paths, path)
	}
	return paths
}

// ProbeJSON renders a minimal ffprobe document with one video stream.
// Empty string fields are omitted, mirroring how ffprobe leaves out tags it
// could not determine.
func ProbeJSON(width, height int, frameRate, transfer, primaries, pixFmt string) string {
	stream := fmt.Sprintf(`"index":0,"codec_type":"video","codec_name":"h264","width":%d,"height":%d`, width, height)
	for _, kv := range [][2]string{
		{"r_frame_rate", frameRate},
		{"color_transfer", transfer},
		{"color_primaries", primaries},
		{"pix_fmt", pixFmt},
	} {
		if kv[1] != "" {
			stream += fmt.Sprintf(`,%q:%q`, kv[0], kv[1])
		}
	}
	return `{"streams":[{` + stream + `}],"format":{"format_name":"mov,mp4","duration":"10.0","size":"1024"}}`
}

// WriteProbeSidecar stores the ffprobe answer for video.
func WriteProbeSidecar(t testing.TB, video, json string) {
	t.Helper()
	WriteFile(t, video+".probe.json", json)
}

// WriteExifSidecar stores the exiftool answer for video.
func WriteExifSidecar(t testing.TB, video, json string) {
	t.Helper()
	WriteFile(t, video+".exif.json", json)
}
