package sysfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"voltgui/internal/catalog"
	"voltgui/internal/logging"
)

var (
	// ErrUnavailable means the backing file is missing or not permitted
	ErrUnavailable = errors.New("not available")
	// ErrUnreadable means the file exists but its content could not be parsed
	ErrUnreadable = errors.New("unreadable")
)

var bracketed = regexp.MustCompile(`\[([^\]]+)\]`)

// Reading is the outcome of one current-value query.
type Reading struct {
	Value string
	Err   error
}

// OK reports whether the reading holds a value.
func (r Reading) OK() bool { return r.Err == nil }

// Display returns the text a front-end shows for the reading.
func (r Reading) Display() string {
	switch {
	case r.Err == nil:
		return r.Value
	case errors.Is(r.Err, ErrUnavailable):
		return "not available"
	default:
		return "Error"
	}
}

// Reader reads live tunable values below a filesystem root.
type Reader struct {
	root   string
	icdDir string
	logger *logging.Logger
}

// NewReader creates a reader. An empty root means "/".
func NewReader(root, icdDir string, logger *logging.Logger) *Reader {
	if root == "" {
		root = "/"
	}
	return &Reader{root: root, icdDir: icdDir, logger: logger}
}

// Root returns the filesystem root the reader resolves paths against.
func (r *Reader) Root() string { return r.root }

// Resolve maps an absolute system path below the reader root.
func (r *Reader) Resolve(path string) string {
	if r.root == "/" {
		return path
	}
	return filepath.Join(r.root, path)
}

func (r *Reader) readFile(path string) (string, error) {
	data, err := os.ReadFile(r.Resolve(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%s: %w", path, ErrUnavailable)
		}
		return "", fmt.Errorf("%s: %w: %v", path, ErrUnreadable, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Available reports whether the backing file of d can be read.
func (r *Reader) Available(d catalog.Descriptor) bool {
	if d.Path == "" {
		return false
	}
	_, err := r.readFile(d.Path)
	return err == nil
}

// ReadCurrent returns the live value of a path-backed descriptor.
func (r *Reader) ReadCurrent(d catalog.Descriptor) Reading {
	if d.Path == "" {
		return Reading{Err: fmt.Errorf("%s has no backing file: %w", d.Key, ErrUnavailable)}
	}

	content, err := r.readFile(d.Path)
	if err != nil {
		r.logger.Debug("sysfs.read.failed", "Failed to read current value", map[string]interface{}{
			"key":   d.Key,
			"path":  d.Path,
			"error": err.Error(),
		})
		return Reading{Err: err}
	}

	switch {
	case d.Dynamic:
		value, ok := ParseBracketed(content)
		if !ok {
			return Reading{Err: fmt.Errorf("%s: %w: empty content", d.Path, ErrUnreadable)}
		}
		return Reading{Value: value}
	case d.Domain.Kind == catalog.DomainRange:
		n, err := strconv.Atoi(content)
		if err != nil {
			return Reading{Err: fmt.Errorf("%s: %w: %q is not an integer", d.Path, ErrUnreadable, content)}
		}
		if d.Domain.KHzToMHz {
			n /= 1000
		}
		return Reading{Value: strconv.Itoa(n)}
	default:
		return Reading{Value: content}
	}
}

// ReadAll reads every path-backed descriptor of c. Env-only and
// process-backed descriptors are absent from the result.
func (r *Reader) ReadAll(c *catalog.Catalog) map[string]Reading {
	out := make(map[string]Reading, c.Len())
	for _, d := range c.Descriptors() {
		if d.Path == "" {
			continue
		}
		out[d.Key] = r.ReadCurrent(d)
	}
	return out
}

// ParseBracketed extracts the current token of a bracket-annotated file
// such as "always [madvise] never". Without brackets the first token is
// current. Empty content yields false.
func ParseBracketed(content string) (string, bool) {
	if m := bracketed.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// ParseTokens returns the tokens of a bracket-annotated file with the
// brackets removed, deduplicated in first-seen order.
func ParseTokens(content string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, f := range strings.Fields(content) {
		f = strings.TrimSuffix(strings.TrimPrefix(f, "["), "]")
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
