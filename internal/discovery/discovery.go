// Package discovery resolves user-supplied paths into the list of media
// files to analyze.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/mediaqc/internal/errors"
	"github.com/five82/mediaqc/internal/util"
)

// Result contains discovered media files with metadata about what was
// skipped.
type Result struct {
	Files        []string
	SkippedCount int
}

// FindMediaFiles finds media files in the given directory.
// Returns files sorted alphabetically by filename.
func FindMediaFiles(inputDir string) (*Result, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, errors.NewPathError(fmt.Sprintf("directory does not exist: %s", inputDir))
	}
	if !info.IsDir() {
		return nil, errors.NewPathError(fmt.Sprintf("%s is not a directory", inputDir))
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("cannot read directory %s", inputDir), err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if util.IsMediaFile(fullPath) {
			result.Files = append(result.Files, fullPath)
		} else {
			result.SkippedCount++
		}
	}

	if len(result.Files) == 0 {
		return nil, errors.NewNoFilesFoundError(inputDir)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(result.Files[i])) < strings.ToLower(filepath.Base(result.Files[j]))
	})

	return result, nil
}

// ResolvePaths expands each argument into media file paths. Directory
// arguments are scanned for media files; file arguments are taken as-is
// after an existence check.
func ResolvePaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		switch {
		case util.DirectoryExists(arg):
			result, err := FindMediaFiles(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, result.Files...)
		case util.FileExists(arg):
			files = append(files, arg)
		default:
			return nil, errors.NewPathError(fmt.Sprintf("path does not exist: %s", arg))
		}
	}

	if len(files) == 0 {
		return nil, &errors.CoreError{Kind: errors.KindNoFilesFound, Message: "no files to analyze"}
	}
	return files, nil
}
