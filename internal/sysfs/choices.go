package sysfs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"voltgui/internal/catalog"
	"voltgui/internal/fsutil"
)

// Choices returns the legal values of d, sentinel items first. Free-text
// descriptors have no list and return nil. An error means the control
// should be shown as unavailable.
func (r *Reader) Choices(d catalog.Descriptor) ([]string, error) {
	switch d.Domain.Kind {
	case catalog.DomainFixed:
		return append([]string(nil), d.Domain.Choices...), nil
	case catalog.DomainRange:
		return r.FrequencyChoices(d)
	case catalog.DomainDynamicFile:
		if d.Domain.ChoicesPath == "" {
			return nil, fmt.Errorf("%s: %w", d.Key, ErrUnavailable)
		}
		return r.ChoicesFromFile(d.Domain.ChoicesPath, d.Domain.Defaults...)
	case catalog.DomainExecutableScan:
		return ScanExecutables(d.Domain.SearchDirs, d.Domain.Prefix, d.Domain.Defaults...), nil
	case catalog.DomainVulkanICD:
		return append(append([]string(nil), d.Domain.Defaults...), ICDOptions(r.icdDir)...), nil
	default:
		return nil, nil
	}
}

// FrequencyChoices builds the list for a ranged descriptor from its min and
// max files: the sentinel first, then every Step between the bounds.
func (r *Reader) FrequencyChoices(d catalog.Descriptor) ([]string, error) {
	lo, err := r.readInt(d.Domain.MinPath)
	if err != nil {
		return nil, err
	}
	hi, err := r.readInt(d.Domain.MaxPath)
	if err != nil {
		return nil, err
	}
	if d.Domain.KHzToMHz {
		lo /= 1000
		hi /= 1000
	}
	if lo > hi {
		return nil, fmt.Errorf("%s: %w: min %d above max %d", d.Key, ErrUnreadable, lo, hi)
	}

	step := d.Domain.Step
	if step <= 0 {
		step = 1
	}

	values := make([]string, 0, (hi-lo)/step+1)
	for v := lo; v <= hi; v += step {
		values = append(values, strconv.Itoa(v))
	}
	if d.Domain.Descending {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}

	return append(append([]string(nil), d.Domain.Defaults...), values...), nil
}

func (r *Reader) readInt(path string) (int, error) {
	content, err := r.readFile(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(content)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q is not an integer", path, ErrUnreadable, content)
	}
	return n, nil
}

// ChoicesFromFile returns defaults followed by the tokens of path, with
// duplicates removed in first-seen order.
func (r *Reader) ChoicesFromFile(path string, defaults ...string) ([]string, error) {
	content, err := r.readFile(path)
	if err != nil {
		return nil, err
	}
	tokens := ParseTokens(content)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%s: %w: no tokens", path, ErrUnreadable)
	}
	return union(defaults, tokens), nil
}

// ScanExecutables lists executable files whose name starts with prefix in
// dirs, behind the given defaults. Directories are scanned in order and a
// name found twice is kept once.
func ScanExecutables(dirs []string, prefix string, defaults ...string) []string {
	var found []string
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if fsutil.IsExecutable(m) {
				found = append(found, filepath.Base(m))
			}
		}
	}
	return union(defaults, found)
}

func union(lists ...[]string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, list := range lists {
		for _, v := range list {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
