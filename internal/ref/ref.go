package ref

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies which reference form matched.
type Kind int

const (
	KindUnknown Kind = iota
	ShorthandGitHub
	SSHGitHub
	HTTPSGitHub
	GenericGoGet
)

func (k Kind) String() string {
	switch k {
	case ShorthandGitHub:
		return "github-shorthand"
	case SSHGitHub:
		return "github-ssh"
	case HTTPSGitHub:
		return "github-https"
	case GenericGoGet:
		return "go-get"
	default:
		return "unknown"
	}
}

// IsGitHub reports whether the kind addresses a github.com owner/name pair.
func (k Kind) IsGitHub() bool {
	return k == ShorthandGitHub || k == SSHGitHub || k == HTTPSGitHub
}

// Transport hints carried by URL forms.
const (
	TransportSSH   = "ssh"
	TransportHTTPS = "https"
)

// GitHubHost is the provider prefix used under src/ for GitHub references.
const GitHubHost = "github.com"

// Descriptor is a classified repository reference.
// GitHub kinds populate Owner and Name; GenericGoGet populates RawPath.
type Descriptor struct {
	Kind      Kind
	Owner     string
	Name      string
	Transport string
	RawPath   string

	// Input is the reference exactly as given.
	Input string
}

// WorkspaceName returns the name used to derive the gopath-<name> directory.
func (d Descriptor) WorkspaceName() string {
	if d.Kind == GenericGoGet {
		return Sanitize(d.RawPath)
	}
	return d.Name
}

// ImportPath returns the package path relative to GOPATH/src.
func (d Descriptor) ImportPath() string {
	if d.Kind == GenericGoGet {
		return d.RawPath
	}
	return GitHubHost + "/" + d.Owner + "/" + d.Name
}

// String returns a short display form of the reference.
func (d Descriptor) String() string {
	if d.Kind.IsGitHub() {
		return d.Owner + "/" + d.Name
	}
	return d.RawPath
}

// CloneURL returns the URL handed to the clone client.
// SSH references are used verbatim; everything else becomes an HTTPS URL
// with a single .git suffix. Generic references have no clone URL.
func (d Descriptor) CloneURL() string {
	switch d.Kind {
	case SSHGitHub:
		return d.Input
	case ShorthandGitHub, HTTPSGitHub:
		url := "https://" + GitHubHost + "/" + d.Owner + "/" + d.Name
		if !strings.HasSuffix(url, ".git") {
			url += ".git"
		}
		return url
	default:
		return ""
	}
}

// ClassificationError reports a reference that matched no known form.
type ClassificationError struct {
	Input string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("invalid repository reference %q: expected owner/name, git@github.com:owner/name.git, https://github.com/owner/name or a go get path such as labix.org/mgo.v1", e.Input)
}

var (
	shorthandPattern = regexp.MustCompile(`^([A-Za-z0-9-]+)/([A-Za-z0-9-]+)$`)
	sshPattern       = regexp.MustCompile(`^git@github\.com:([A-Za-z0-9-]+)/([A-Za-z0-9._-]+?)\.git$`)
	httpsPattern     = regexp.MustCompile(`^https?://github\.com/([A-Za-z0-9-]+)/([A-Za-z0-9._-]+?)(?:\.git)?$`)
	goGetPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]*\.[A-Za-z0-9._-]*(?:/[A-Za-z0-9._-]+)+$`)
)

// classifier is one entry in the ordered match list.
type classifier func(input string) (Descriptor, bool)

// classifiers are evaluated in order; the first match wins. The GitHub forms
// come before the generic go get form, which would otherwise also accept
// inputs like github.com/owner/name.
var classifiers = []classifier{
	classifyShorthand,
	classifySSH,
	classifyHTTPS,
	classifyGoGet,
}

// Classify parses a repository reference. It never touches the network or
// the filesystem.
func Classify(input string) (Descriptor, error) {
	for _, c := range classifiers {
		if d, ok := c(input); ok {
			d.Input = input
			return d, nil
		}
	}
	return Descriptor{}, &ClassificationError{Input: input}
}

func classifyShorthand(input string) (Descriptor, bool) {
	m := shorthandPattern.FindStringSubmatch(input)
	if m == nil {
		return Descriptor{}, false
	}
	return Descriptor{Kind: ShorthandGitHub, Owner: m[1], Name: m[2]}, true
}

func classifySSH(input string) (Descriptor, bool) {
	m := sshPattern.FindStringSubmatch(input)
	if m == nil || !validRepoName(m[2]) {
		return Descriptor{}, false
	}
	return Descriptor{Kind: SSHGitHub, Owner: m[1], Name: m[2], Transport: TransportSSH}, true
}

func classifyHTTPS(input string) (Descriptor, bool) {
	m := httpsPattern.FindStringSubmatch(input)
	if m == nil || !validRepoName(m[2]) {
		return Descriptor{}, false
	}
	return Descriptor{Kind: HTTPSGitHub, Owner: m[1], Name: m[2], Transport: TransportHTTPS}, true
}

func classifyGoGet(input string) (Descriptor, bool) {
	if !goGetPattern.MatchString(input) {
		return Descriptor{}, false
	}
	for _, seg := range strings.Split(input, "/") {
		if strings.Trim(seg, ".") == "" {
			return Descriptor{}, false
		}
	}
	return Descriptor{Kind: GenericGoGet, RawPath: input}, true
}

// validRepoName rejects names made only of dots, which would address the
// parent of the owner directory.
func validRepoName(name string) bool {
	return strings.Trim(name, ".") != ""
}

// Sanitize maps a go get path to a directory-safe name by replacing every
// dot and slash with a hyphen.
func Sanitize(path string) string {
	return strings.NewReplacer(".", "-", "/", "-").Replace(path)
}
