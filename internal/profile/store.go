package profile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"voltgui/internal/catalog"
	"voltgui/internal/fsutil"
	"voltgui/internal/logging"
)

// Store persists named profiles as INI files in one directory.
type Store struct {
	dir    string
	set    *catalog.Set
	logger *logging.Logger
}

// NewStore creates a profile store rooted at dir.
func NewStore(dir string, set *catalog.Set, logger *logging.Logger) *Store {
	return &Store{dir: dir, set: set, logger: logger}
}

// Dir returns the directory holding the profile files.
func (s *Store) Dir() string { return s.dir }

// FileName returns the file name used for a profile.
func FileName(name string) string {
	if name == DefaultName {
		return filePrefix + fileExt
	}
	return filePrefix + "-" + name + fileExt
}

// Path returns the absolute path of a profile file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, FileName(name))
}

// ValidateName checks that name can be used as a profile name. Names are
// case-sensitive.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name != strings.TrimSpace(name):
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	}
	return nil
}

// List returns Default followed by every other profile found, sorted.
func (s *Store) List() []string {
	names := []string{DefaultName}

	matches, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"-*"+fileExt))
	if err != nil {
		return names
	}

	var others []string
	for _, m := range matches {
		base := filepath.Base(m)
		name := strings.TrimSuffix(strings.TrimPrefix(base, filePrefix+"-"), fileExt)
		if name == "" || name == DefaultName {
			continue
		}
		others = append(others, name)
	}
	sort.Strings(others)
	return append(names, others...)
}

// Exists reports whether the profile file is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Save rewrites the profile file with sel.
func (s *Store) Save(name string, sel Selections) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := Encode(s.set, sel)
	if err != nil {
		return err
	}

	if err := fsutil.EnsureDir(s.dir); err != nil {
		return err
	}
	if err := fsutil.AtomicWriteFile(s.Path(name), data, fsutil.DefaultFilePermissions, s.logger); err != nil {
		return fmt.Errorf("save profile %s: %w", name, err)
	}

	s.logger.Info("profile.save", "Profile saved", map[string]interface{}{
		"profile": name,
		"path":    s.Path(name),
	})
	return nil
}

// Load reads a profile. The boolean is false when no file exists, in which
// case the selections are empty and every setting is unset.
func (s *Store) Load(name string) (Selections, bool, error) {
	if err := ValidateName(name); err != nil {
		return NewSelections(), false, err
	}

	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return NewSelections(), false, nil
	}
	if err != nil {
		return NewSelections(), false, fmt.Errorf("read profile %s: %w", name, err)
	}

	sel, err := Decode(s.set, data, s.logger)
	if err != nil {
		s.logger.Warn("profile.load.failed", "Failed to parse profile", map[string]interface{}{
			"profile": name,
			"error":   err.Error(),
		})
		return sel, true, fmt.Errorf("load profile %s: %w", name, err)
	}

	s.logger.Debug("profile.load", "Profile loaded", map[string]interface{}{
		"profile": name,
	})
	return sel, true, nil
}

// Delete removes a profile file. It returns false for Default and for a
// profile that does not exist.
func (s *Store) Delete(name string) (bool, error) {
	if name == DefaultName {
		return false, nil
	}
	if err := ValidateName(name); err != nil {
		return false, err
	}

	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete profile %s: %w", name, err)
	}

	s.logger.Info("profile.delete", "Profile deleted", map[string]interface{}{
		"profile": name,
	})
	return true, nil
}

// Export writes the canonical INI text of a profile to w.
func (s *Store) Export(name string, w io.Writer) error {
	data, err := s.canonical(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export profile %s: %w", name, err)
	}
	return nil
}

// Import parses r as a profile and saves it under name. The stored file is
// re-encoded, so unknown keys are dropped.
func (s *Store) Import(name string, r io.Reader) (Selections, error) {
	if err := ValidateName(name); err != nil {
		return NewSelections(), err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return NewSelections(), fmt.Errorf("import profile %s: %w", name, err)
	}
	sel, err := Decode(s.set, data, s.logger)
	if err != nil {
		return sel, fmt.Errorf("import profile %s: %w", name, err)
	}
	if err := s.Save(name, sel); err != nil {
		return sel, err
	}
	return sel, nil
}

// Diff compares the canonical text of two profiles line by line.
func (s *Store) Diff(a, b string) ([]DiffLine, error) {
	left, err := s.canonical(a)
	if err != nil {
		return nil, err
	}
	right, err := s.canonical(b)
	if err != nil {
		return nil, err
	}
	return DiffText(string(left), string(right)), nil
}

func (s *Store) canonical(name string) ([]byte, error) {
	sel, ok, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return Encode(s.set, sel)
}

// DiffText returns a line diff of two texts. Equal inputs yield only
// DiffEqual lines.
func DiffText(oldText, newText string) []DiffLine {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// Changed reports whether a diff contains any insertion or deletion.
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}
