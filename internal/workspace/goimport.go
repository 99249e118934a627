package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxMetaBody caps how much of a go-get=1 page is read.
const maxMetaBody = 1 << 20

// RepoRoot is the repository holding an import path.
type RepoRoot struct {
	// Prefix is the import path of the repository root.
	Prefix string
	VCS    string
	URL    string
}

// ImportResolver finds the repository behind an import path the way the
// go command does: from the go-import meta tag served at
// https://<import path>?go-get=1.
type ImportResolver struct {
	// Client defaults to an http.Client with a 30s timeout.
	Client *http.Client
}

func (r *ImportResolver) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Resolve returns the repository root for importPath.
func (r *ImportResolver) Resolve(ctx context.Context, importPath string) (RepoRoot, error) {
	if root, ok := knownRoot(importPath); ok {
		return root, nil
	}

	url := "https://" + importPath + "?go-get=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RepoRoot{}, fmt.Errorf("invalid import path %q: %w", importPath, err)
	}
	resp, err := r.client().Do(req)
	if err != nil {
		return RepoRoot{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RepoRoot{}, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	imports, err := parseMetaGoImports(io.LimitReader(resp.Body, maxMetaBody))
	if err != nil {
		return RepoRoot{}, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return matchRepoRoot(importPath, imports)
}

// knownRoot resolves hosts whose layout is fixed without a request.
func knownRoot(importPath string) (RepoRoot, bool) {
	parts := strings.Split(importPath, "/")
	if parts[0] != "github.com" || len(parts) < 3 || parts[1] == "" || parts[2] == "" {
		return RepoRoot{}, false
	}
	prefix := strings.Join(parts[:3], "/")
	return RepoRoot{Prefix: prefix, VCS: "git", URL: "https://" + prefix}, true
}

// parseMetaGoImports collects the go-import meta tags of an HTML head.
func parseMetaGoImports(r io.Reader) ([]RepoRoot, error) {
	var out []RepoRoot
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return out, err
			}
			return out, nil
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "head" {
				return out, nil
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) == "body" {
				return out, nil
			}
			if string(name) != "meta" || !hasAttr {
				continue
			}

			var metaName, content string
			for more := true; more; {
				var key, val []byte
				key, val, more = z.TagAttr()
				switch string(key) {
				case "name":
					metaName = string(val)
				case "content":
					content = string(val)
				}
			}
			if metaName != "go-import" {
				continue
			}
			if f := strings.Fields(content); len(f) == 3 {
				out = append(out, RepoRoot{Prefix: f[0], VCS: f[1], URL: f[2]})
			}
		}
	}
}

// matchRepoRoot picks the tag whose prefix covers importPath. Module proxy
// entries are skipped: a GOPATH tree needs the repository itself.
func matchRepoRoot(importPath string, imports []RepoRoot) (RepoRoot, error) {
	var match *RepoRoot
	for i, imp := range imports {
		if imp.VCS == "mod" {
			continue
		}
		if importPath != imp.Prefix && !strings.HasPrefix(importPath, imp.Prefix+"/") {
			continue
		}
		if match != nil && *match != imp {
			return RepoRoot{}, fmt.Errorf("multiple go-import tags match %s: %s and %s", importPath, match.Prefix, imp.Prefix)
		}
		match = &imports[i]
	}
	if match == nil {
		return RepoRoot{}, fmt.Errorf("no go-import meta tag for %s", importPath)
	}
	return *match, nil
}
