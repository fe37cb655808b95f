package pipeline

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/welpo/shuku/internal/subtitles"
)

// Discover expands the given paths into the list of media files to
// process. Files are taken as-is; directories are walked recursively.
// Subtitle files and hidden files are ignored during directory walks,
// and paths that do not exist are logged and dropped.
func Discover(paths []string, log *slog.Logger) []string {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var inputs []string
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			log.Warn("skipping input", "input", path, "error", err)
			continue
		}
		if !fi.IsDir() {
			inputs = append(inputs, path)
			continue
		}
		found := discoverDir(path, log)
		if len(found) == 0 {
			log.Warn("no media files found", "directory", path)
		}
		inputs = append(inputs, found...)
	}
	return inputs
}

func discoverDir(root string, log *slog.Logger) []string {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("cannot read path", "path", path, "error", err)
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || subtitles.IsSubtitlePath(path) {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		log.Warn("directory walk failed", "directory", root, "error", err)
	}
	sort.Strings(found)
	return found
}
