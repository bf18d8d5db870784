package options

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"voltgui/internal/fsutil"
	"voltgui/internal/logging"
)

// FileName is the options file inside the config directory.
const FileName = "volt-options.ini"

const (
	enable  = "enable"
	disable = "disable"
)

// Themes are the selectable colour palettes.
var Themes = []string{"amd", "intel", "nvidia"}

// ScalingFactors are the selectable UI scale factors.
var ScalingFactors = []string{"1.0", "1.25", "1.5", "1.75", "2.0"}

// Options is the global, non-profiled front-end configuration.
type Options struct {
	Theme             string
	Transparency      bool
	RunInTray         bool
	StartMinimized    bool
	StartMaximized    bool
	ScalingFactor     string
	ShowWelcome       bool
	RestoreOnClose    bool
	LastActiveProfile string
}

// Defaults returns the options used when no file exists.
func Defaults() Options {
	return Options{
		Theme:             "amd",
		Transparency:      true,
		RunInTray:         true,
		StartMinimized:    false,
		StartMaximized:    false,
		ScalingFactor:     "1.0",
		ShowWelcome:       true,
		RestoreOnClose:    true,
		LastActiveProfile: "Default",
	}
}

// field binds one option to its INI location.
type field struct {
	name    string
	section string
	key     string
	// legacy is the section older releases stored the key under.
	legacy  string
	get     func(*Options) string
	set     func(*Options, string) error
}

func boolField(name, section, key, legacy string, ptr func(*Options) *bool) field {
	return field{
		name: name, section: section, key: key, legacy: legacy,
		get: func(o *Options) string { return formatBool(*ptr(o)) },
		set: func(o *Options, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			*ptr(o) = b
			return nil
		},
	}
}

var fields = []field{
	{
		name: "theme", section: "Theme", key: "selected_theme",
		get: func(o *Options) string { return o.Theme },
		set: func(o *Options, v string) error {
			if !contains(Themes, v) {
				return fmt.Errorf("unknown theme %q (valid: %s)", v, strings.Join(Themes, ", "))
			}
			o.Theme = v
			return nil
		},
	},
	boolField("transparency", "Transparency", "transparency", "Appearance",
		func(o *Options) *bool { return &o.Transparency }),
	boolField("tray", "SystemTray", "run_in_tray", "",
		func(o *Options) *bool { return &o.RunInTray }),
	boolField("start-minimized", "StartupMinimized", "start_minimized", "StartupBehavior",
		func(o *Options) *bool { return &o.StartMinimized }),
	boolField("start-maximized", "StartupMaximized", "start_maximized", "",
		func(o *Options) *bool { return &o.StartMaximized }),
	{
		name: "scaling", section: "Scaling", key: "scaling_factor",
		get: func(o *Options) string { return o.ScalingFactor },
		set: func(o *Options, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0.5 || f > 4 {
				return fmt.Errorf("invalid scaling factor %q", v)
			}
			o.ScalingFactor = v
			return nil
		},
	},
	boolField("welcome", "WelcomeMessage", "show_welcome", "",
		func(o *Options) *bool { return &o.ShowWelcome }),
	boolField("restore-on-close", "RestoreOnClose", "restore_on_close", "CPUBehavior",
		func(o *Options) *bool { return &o.RestoreOnClose }),
	{
		name: "last-profile", section: "Profile", key: "LastActiveProfile",
		get: func(o *Options) string { return o.LastActiveProfile },
		set: func(o *Options, v string) error {
			if strings.TrimSpace(v) == "" {
				return errors.New("profile name must not be empty")
			}
			o.LastActiveProfile = v
			return nil
		},
	},
}

// Names lists the option names accepted by Set, in display order.
func Names() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.name
	}
	return out
}

// Get returns the file representation of an option.
func (o *Options) Get(name string) (string, error) {
	f, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown option %q", name)
	}
	return f.get(o), nil
}

// Set assigns an option from text. Flags accept enable/disable as well as
// the usual boolean spellings.
func (o *Options) Set(name, value string) error {
	f, ok := lookup(name)
	if !ok {
		return fmt.Errorf("unknown option %q", name)
	}
	if err := f.set(o, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("option %s: %w", name, err)
	}
	return nil
}

// Store reads and writes the options file.
type Store struct {
	path   string
	logger *logging.Logger
}

// NewStore creates a store for the options file in dir.
func NewStore(dir string, logger *logging.Logger) *Store {
	return &Store{path: filepath.Join(dir, FileName), logger: logger}
}

// Path returns the options file path.
func (s *Store) Path() string { return s.path }

// Load reads the options file. Missing keys keep their defaults and a
// missing file yields Defaults. Invalid values are logged and ignored.
func (s *Store) Load() (Options, error) {
	o := Defaults()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return o, nil
	}
	if err != nil {
		return o, fmt.Errorf("read options: %w", err)
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
		PreserveSurroundedQuote: true,
	}, data)
	if err != nil {
		return o, fmt.Errorf("parse options: %w", err)
	}

	for _, fd := range fields {
		value, ok := readKey(f, fd.section, fd.key)
		if !ok && fd.legacy != "" {
			value, ok = readKey(f, fd.legacy, fd.key)
		}
		if !ok {
			continue
		}
		if err := fd.set(&o, value); err != nil {
			s.logger.Warn("options.value.invalid", "Ignoring invalid option value", map[string]interface{}{
				"option": fd.name,
				"value":  value,
				"error":  err.Error(),
			})
		}
	}
	return o, nil
}

// Save rewrites the options file.
func (s *Store) Save(o Options) error {
	f := ini.Empty()
	for _, fd := range fields {
		sec, err := f.NewSection(fd.section)
		if err != nil {
			return fmt.Errorf("create section %s: %w", fd.section, err)
		}
		if _, err := sec.NewKey(fd.key, fd.get(&o)); err != nil {
			return fmt.Errorf("set %s: %w", fd.key, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	if err := fsutil.EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}
	if err := fsutil.AtomicWriteFile(s.path, buf.Bytes(), fsutil.DefaultFilePermissions, s.logger); err != nil {
		return fmt.Errorf("save options: %w", err)
	}

	s.logger.Info("options.save", "Options saved", map[string]interface{}{
		"path": s.path,
	})
	return nil
}

// Update loads the options, applies fn and saves the result.
func (s *Store) Update(fn func(*Options) error) (Options, error) {
	o, err := s.Load()
	if err != nil {
		return o, err
	}
	if err := fn(&o); err != nil {
		return o, err
	}
	return o, s.Save(o)
}

func readKey(f *ini.File, section, key string) (string, bool) {
	sec, err := f.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return "", false
	}
	return strings.TrimSpace(sec.Key(key).String()), true
}

func lookup(name string) (field, bool) {
	for _, f := range fields {
		if f.name == name {
			return f, true
		}
	}
	return field{}, false
}

func formatBool(b bool) string {
	if b {
		return enable
	}
	return disable
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case enable, "true", "on", "yes", "1":
		return true, nil
	case disable, "false", "off", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected %s or %s, got %q", enable, disable, v)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
