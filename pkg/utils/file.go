package utils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ryanuber/go-glob"
)

// TreeStats summarizes the content transferred by a tree operation.
type TreeStats struct {
	Files int
	Bytes int64
	Sum   uint64
}

// Exists will check if the provided file or directory exists.
func Exists(path string) (bool, error) {
	// get file info
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}

	// check for known error
	if os.IsNotExist(err) {
		return false, nil
	}

	return true, err
}

// CopyFile will copy the source file to the destination path and return the
// number of bytes written. An existing destination file is overwritten. If sum
// is not nil the copied content is also written to it.
func CopyFile(src, dst string, sum io.Writer) (int64, error) {
	// open source
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}

	// make sure source gets closed
	defer in.Close()

	// create destination
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	// make sure destination gets closed
	defer out.Close()

	// prepare writer
	var w io.Writer = out
	if sum != nil {
		w = io.MultiWriter(out, sum)
	}

	// write content
	n, err := io.Copy(w, in)
	if err != nil {
		return n, err
	}

	// properly close destination
	err = out.Close()
	if err != nil {
		return n, err
	}

	return n, nil
}

// MergeTree will copy all files and subfolders from the source directory into
// the destination directory, merging with the existing content: same-named
// destination files are overwritten, new entries are added and destination
// entries unknown to the source are left untouched. The destination directory
// is created if missing.
func MergeTree(src, dst string) (TreeStats, error) {
	return walkTree(src, dst, false)
}

// ScanTree will compute the stats a MergeTree call would produce without
// copying anything.
func ScanTree(src string) (TreeStats, error) {
	return walkTree(src, "", true)
}

func walkTree(src, dst string, scan bool) (TreeStats, error) {
	// prepare stats
	var stats TreeStats

	// prepare fingerprint
	sum, err := NewFingerprint()
	if err != nil {
		return stats, err
	}

	// ensure destination
	if !scan {
		err = os.MkdirAll(dst, 0755)
		if err != nil {
			return stats, err
		}
	}

	// walk source tree
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		// directly return errors
		if err != nil {
			return err
		}

		// get path relative to the source root
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		// skip the root itself
		if rel == "." {
			return nil
		}

		// merge directories
		if d.IsDir() {
			if !scan {
				return os.MkdirAll(filepath.Join(dst, rel), 0755)
			}
			return nil
		}

		// fingerprint the file location
		_, err = sum.Write([]byte(filepath.ToSlash(rel)))
		if err != nil {
			return err
		}

		// copy or hash the file
		var n int64
		if scan {
			n, err = hashFile(sum, path)
		} else {
			n, err = CopyFile(path, filepath.Join(dst, rel), sum)
		}
		if err != nil {
			return err
		}

		// update stats
		stats.Files++
		stats.Bytes += n

		return nil
	})
	if err != nil {
		return stats, err
	}

	// finalize fingerprint
	stats.Sum = sum.Sum64()

	return stats, nil
}

func hashFile(sum io.Writer, path string) (int64, error) {
	// open file
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	// make sure file gets closed
	defer file.Close()

	return io.Copy(sum, file)
}

// CopyTree will copy the whole source directory to the destination path. It
// fails with a wrapped os.ErrExist when the destination already exists, which
// lets callers decide to clear the destination and retry.
func CopyTree(src, dst string) (TreeStats, error) {
	// check destination
	ok, err := Exists(dst)
	if err != nil {
		return TreeStats{}, err
	} else if ok {
		return TreeStats{}, fmt.Errorf("copy tree %s: %w", dst, os.ErrExist)
	}

	return MergeTree(src, dst)
}

// ClearTree will delete all entries inside the given directory, keeping the
// directory itself.
func ClearTree(dir string) error {
	// list entries
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	// remove all entries
	for _, entry := range entries {
		err = os.RemoveAll(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
	}

	return nil
}

// Purge will delete the immediate entries of the directory whose name matches
// any of the provided glob patterns and return the names of the deleted
// entries.
func Purge(dir string, patterns ...string) ([]string, error) {
	// list entries
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	// delete matching entries
	var deleted []string
	for _, entry := range entries {
		for _, pattern := range patterns {
			// check name against pattern
			if !glob.Glob(pattern, entry.Name()) {
				continue
			}

			// remove entry
			err = os.RemoveAll(filepath.Join(dir, entry.Name()))
			if err != nil {
				return deleted, err
			}

			// track name
			deleted = append(deleted, entry.Name())

			break
		}
	}

	return deleted, nil
}
