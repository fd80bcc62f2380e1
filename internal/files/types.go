package files

import "errors"

var (
	// ErrOutsideRoot is returned for a path that escapes the checkout root
	ErrOutsideRoot = errors.New("access denied: path outside checkout root")
	// ErrNotDirectory is returned when a listed path names a file
	ErrNotDirectory = errors.New("path is not a directory")
)

// skipNames are directory entries never offered to the crawler
var skipNames = map[string]bool{
	".git": true,
}
