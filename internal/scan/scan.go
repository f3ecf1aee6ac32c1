// Package scan enumerates video files under a root directory.
package scan

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultExtensions are the container and elementary stream extensions the
// audit picks up when no list is configured.
var DefaultExtensions = []string{
	".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v",
	".mpg", ".mpeg", ".ts", ".mts", ".m2ts", ".hevc", ".h264", ".264",
	".265", ".rmvb", ".rm", ".3gp", ".f4v", ".m2v", ".mp2", ".mpe",
	".mpv", ".ogv", ".qt", ".vob",
	".crm", ".mxf", ".nev", ".r3d",
}

// File is one discovered video file.
type File struct {
	Path    string    `json:"path"`
	RelPath string    `json:"rel_path"`
	Ext     string    `json:"ext"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Options narrows a scan.
type Options struct {
	// Extensions are matched case-insensitively. Empty means DefaultExtensions.
	Extensions []string
	// ExcludeDirs are relative to root unless absolute.
	ExcludeDirs []string
}

// Videos walks root and returns every video file, sorted by relative path.
// Unreadable subdirectories are skipped; an unreadable root is an error.
// Only directory entries are stat'ed, file contents are never read.
func Videos(root string, opts Options) ([]File, error) {
	root = filepath.Clean(root)
	allowed := extensionSet(opts.Extensions)
	excluded := buildExcluded(root, opts.ExcludeDirs)

	files := make([]File, 0, 128)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && isExcluded(path, excluded) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !allowed[ext] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, File{
			Path:    path,
			RelPath: rel,
			Ext:     ext,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

func buildExcluded(root string, excludeDirs []string) []string {
	excluded := make([]string, 0, len(excludeDirs))
	for _, x := range excludeDirs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if filepath.IsAbs(x) {
			excluded = append(excluded, filepath.Clean(x))
			continue
		}
		excluded = append(excluded, filepath.Clean(filepath.Join(root, x)))
	}
	sort.Strings(excluded)
	return excluded
}

func isExcluded(path string, excluded []string) bool {
	path = filepath.Clean(path)
	for _, base := range excluded {
		if isUnder(path, base) {
			return true
		}
	}
	return false
}

func isUnder(path, base string) bool {
	if path == base {
		return true
	}
	return strings.HasPrefix(path, base+string(filepath.Separator))
}
