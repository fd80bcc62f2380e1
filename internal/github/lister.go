package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

// Compile-time check: *ContentsLister implements tree.Lister.
var _ tree.Lister = (*ContentsLister)(nil)

// ContentsLister lists one repository's directories. Each List call is a
// single contents API request: no retries, no pagination.
type ContentsLister struct {
	gh    *gogithub.Client
	owner string
	repo  string
	ref   string
}

// NewContentsLister creates a lister for owner/repo. An empty ref means the
// repository's default branch.
func NewContentsLister(gh *gogithub.Client, owner, repo, ref string) *ContentsLister {
	return &ContentsLister{
		gh:    gh,
		owner: owner,
		repo:  repo,
		ref:   ref,
	}
}

// List returns the files and subdirectories directly under path.
// Entries of other types (symlinks, submodules) are skipped.
//
// The request is built directly rather than through Repositories.GetContents,
// which refuses any path containing "..", including legal names like "v1..v2".
func (l *ContentsLister) List(ctx context.Context, path string) ([]tree.Entry, error) {
	u, err := l.contentsURL(path)
	if err != nil {
		return nil, &tree.RemoteListingError{Path: path, Status: "invalid path", Message: err.Error(), Err: err}
	}

	req, err := l.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, &tree.RemoteListingError{Path: path, Status: "invalid request", Message: err.Error(), Err: err}
	}

	var raw json.RawMessage
	resp, err := l.gh.Do(ctx, req, &raw)
	if err != nil {
		return nil, listingError(path, resp, err)
	}

	// A file path answers with a single object instead of a list.
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, &tree.UnexpectedShapeError{Path: path}
	}
	var dir []*gogithub.RepositoryContent
	if err := json.Unmarshal(raw, &dir); err != nil {
		return nil, &tree.UnexpectedShapeError{Path: path, Err: err}
	}

	entries := make([]tree.Entry, 0, len(dir))
	for _, item := range dir {
		switch item.GetType() {
		case "file":
			entries = append(entries, tree.File{
				Name:        item.GetName(),
				Path:        item.GetPath(),
				Size:        int64(item.GetSize()),
				DownloadURL: item.GetDownloadURL(),
				SHA:         item.GetSHA(),
			})
		case "dir":
			entries = append(entries, tree.Dir{
				Name: item.GetName(),
				Path: item.GetPath(),
			})
		}
	}
	return entries, nil
}

// contentsURL builds the API path relative to the client's BaseURL with each
// segment escaped. Only a segment that is exactly "." or ".." is refused.
func (l *ContentsLister) contentsURL(path string) (string, error) {
	var segments []string
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		if seg == "." || seg == ".." {
			return "", fmt.Errorf("path %q has a %q segment", path, seg)
		}
		segments = append(segments, url.PathEscape(seg))
	}

	u := fmt.Sprintf("repos/%s/%s/contents/%s",
		url.PathEscape(l.owner), url.PathEscape(l.repo), strings.Join(segments, "/"))
	if l.ref != "" {
		u += "?ref=" + url.QueryEscape(l.ref)
	}
	return u, nil
}

// listingError classifies a failed contents request. A non-success status
// carries its code; a success status with an undecodable body is an unexpected
// shape; no response at all is a transport failure with StatusCode 0.
func listingError(path string, resp *gogithub.Response, err error) error {
	if resp != nil && resp.Response != nil {
		code := resp.StatusCode
		if code < 200 || code > 299 {
			listingErr := &tree.RemoteListingError{
				Path:       path,
				StatusCode: code,
				Status:     http.StatusText(code),
				Err:        err,
			}
			var ghErr *gogithub.ErrorResponse
			if errors.As(err, &ghErr) {
				listingErr.Message = ghErr.Message
			}
			return listingErr
		}
		return &tree.UnexpectedShapeError{Path: path, Err: err}
	}
	return &tree.RemoteListingError{
		Path:    path,
		Status:  "request failed",
		Message: err.Error(),
		Err:     err,
	}
}
