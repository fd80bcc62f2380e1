// Package files lists a local checkout of the gallery repository with the
// same entry shape the GitHub lister produces.
package files

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

// MaxDirEntries matches the per-directory cap of the GitHub contents API
const MaxDirEntries = 1000

// Browser lists directories below a checkout root (read-only)
type Browser struct {
	root   string
	accept tree.Acceptor
}

// Option configures a Browser
type Option func(*Browser)

// HashOnly limits content hashing to files accept keeps. Other files are still
// listed, with an empty SHA, so the crawler can drop them without the I/O.
func HashOnly(accept tree.Acceptor) Option {
	return func(b *Browser) {
		b.accept = accept
	}
}

// NewBrowser creates a browser over the directory root
func NewBrowser(root string, opts ...Option) (*Browser, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root: %w", err)
	}
	absRoot = filepath.Clean(absRoot)

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", absRoot, ErrNotDirectory)
	}

	b := &Browser{root: absRoot}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// resolve maps a repository path below the root, refusing any escape
func (b *Browser) resolve(repoPath string) (string, error) {
	abs := filepath.Clean(filepath.Join(b.root, filepath.FromSlash(repoPath)))
	if abs != b.root && !strings.HasPrefix(abs, b.root+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return abs, nil
}

// List returns the entries of one directory, in name order. Symlinks and
// special files are skipped, as the contents API reports them as neither file
// nor dir.
func (b *Browser) List(ctx context.Context, repoPath string) ([]tree.Entry, error) {
	absPath, err := b.resolve(repoPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		return nil, ErrNotDirectory
	}

	dirEntries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]tree.Entry, 0, len(dirEntries))
	for i, de := range dirEntries {
		if i >= MaxDirEntries {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if skipNames[de.Name()] {
			continue
		}

		childPath := path.Join(repoPath, de.Name())
		childAbs := filepath.Join(absPath, de.Name())

		switch {
		case de.IsDir():
			entries = append(entries, tree.Dir{Name: de.Name(), Path: childPath})
		case de.Type().IsRegular():
			file, err := b.fileEntry(de.Name(), childPath, childAbs)
			if err != nil {
				return nil, err
			}
			entries = append(entries, file)
		}
	}

	return entries, nil
}

func (b *Browser) fileEntry(name, repoPath, absPath string) (tree.File, error) {
	file := tree.File{
		Name:        name,
		Path:        repoPath,
		DownloadURL: (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}).String(),
	}

	if b.accept != nil && !b.accept.Accepts(name) {
		info, err := os.Stat(absPath)
		if err != nil {
			return tree.File{}, fmt.Errorf("failed to stat file: %w", err)
		}
		file.Size = info.Size()
		return file, nil
	}

	f, err := os.Open(absPath)
	if err != nil {
		return tree.File{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return tree.File{}, fmt.Errorf("failed to stat file: %w", err)
	}

	sha, err := BlobSHA(f, info.Size())
	if err != nil {
		return tree.File{}, fmt.Errorf("failed to hash %s: %w", repoPath, err)
	}

	file.Size = info.Size()
	file.SHA = sha
	return file, nil
}

// BlobSHA returns the git blob object id of size bytes read from r, the same
// id the contents API reports as sha.
func BlobSHA(r io.Reader, size int64) (string, error) {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", size)
	n, err := io.Copy(h, r)
	if err != nil {
		return "", err
	}
	if n != size {
		return "", fmt.Errorf("read %d of %d bytes", n, size)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
