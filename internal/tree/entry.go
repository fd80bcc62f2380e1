package tree

import "context"

// Entry is one item of a directory listing: a File or a Dir
type Entry interface {
	EntryPath() string
	isEntry()
}

// File is a file in the repository tree
type File struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url"`
	SHA         string `json:"sha"`
}

// Dir is a subdirectory in the repository tree
type Dir struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (f File) EntryPath() string { return f.Path }
func (d Dir) EntryPath() string  { return d.Path }

func (File) isEntry() {}
func (Dir) isEntry()  {}

// Lister returns the immediate children of one directory path.
// The repository root is the empty path.
type Lister interface {
	List(ctx context.Context, path string) ([]Entry, error)
}

// Acceptor decides which files are kept by a crawl
type Acceptor interface {
	Accepts(name string) bool
}
