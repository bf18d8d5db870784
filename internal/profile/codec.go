package profile

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"voltgui/internal/catalog"
	"voltgui/internal/logging"
)

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
		PreserveSurroundedQuote: true,
	}
}

// Encode renders selections as profile INI text. Keys follow catalog order,
// sentinel and empty values are omitted.
func Encode(set *catalog.Set, sel Selections) ([]byte, error) {
	f := ini.Empty(loadOptions())

	cpu, err := f.NewSection(sectionCPU)
	if err != nil {
		return nil, fmt.Errorf("create section %s: %w", sectionCPU, err)
	}
	writeCatalog(cpu, set.CPU, sel.CPU)

	gpu, err := f.NewSection(sectionGPU)
	if err != nil {
		return nil, fmt.Errorf("create section %s: %w", sectionGPU, err)
	}
	for _, c := range set.GPU {
		writeCatalog(gpu, c, sel.GPU)
	}

	launch, err := f.NewSection(sectionLaunchOptions)
	if err != nil {
		return nil, fmt.Errorf("create section %s: %w", sectionLaunchOptions, err)
	}
	if opts := strings.TrimSpace(sel.LaunchOptions); opts != "" {
		setKey(launch, keyLaunchOptions, escapePercent(opts))
	}

	kernel, err := f.NewSection(sectionKernel)
	if err != nil {
		return nil, fmt.Errorf("create section %s: %w", sectionKernel, err)
	}
	writeCatalog(kernel, set.Kernel, sel.Kernel)

	disk, err := f.NewSection(sectionDisk)
	if err != nil {
		return nil, fmt.Errorf("create section %s: %w", sectionDisk, err)
	}
	devices := make([]string, 0, len(sel.Disk))
	for dev := range sel.Disk {
		devices = append(devices, dev)
	}
	sort.Strings(devices)
	for _, dev := range devices {
		for _, setting := range diskSettingOrder(set.DiskSettingKeys(), sel.Disk[dev]) {
			if v := strings.TrimSpace(sel.Disk[dev][setting]); !isSentinel(v) {
				setKey(disk, diskKey(dev, setting), v)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses profile INI text. Unknown keys and sections are skipped
// and logged.
func Decode(set *catalog.Set, data []byte, logger *logging.Logger) (Selections, error) {
	f, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return NewSelections(), fmt.Errorf("parse profile: %w", err)
	}
	return decodeFile(set, f, logger), nil
}

func decodeFile(set *catalog.Set, f *ini.File, logger *logging.Logger) Selections {
	sel := NewSelections()

	readCatalog(f, sectionCPU, sel.CPU, logger, func(k string) bool {
		_, ok := set.CPU.Lookup(k)
		return ok
	})
	readCatalog(f, sectionKernel, sel.Kernel, logger, func(k string) bool {
		_, ok := set.Kernel.Lookup(k)
		return ok
	})

	isGPU := func(k string) bool {
		_, ok := set.LookupGPU(k)
		return ok
	}
	for _, name := range legacySections {
		readCatalog(f, name, sel.GPU, logger, isGPU)
	}
	readCatalog(f, sectionGPU, sel.GPU, logger, isGPU)

	if sec, err := f.GetSection(sectionLaunchOptions); err == nil {
		sel.LaunchOptions = unescapePercent(strings.TrimSpace(sec.Key(keyLaunchOptions).String()))
	}

	if sec, err := f.GetSection(sectionDisk); err == nil {
		vocab := set.DiskSettingKeys()
		for _, key := range sec.Keys() {
			v := strings.TrimSpace(key.String())
			if isSentinel(v) {
				continue
			}
			dev, setting, ok := ParseDiskKey(key.Name(), vocab)
			if !ok {
				logger.Warn("profile.key.malformed", "Skipping malformed disk key", map[string]interface{}{
					"key": key.Name(),
				})
				continue
			}
			sel.SetDisk(dev, setting, v)
		}
	}

	return sel
}

func readCatalog(f *ini.File, section string, into map[string]string, logger *logging.Logger, known func(string) bool) {
	sec, err := f.GetSection(section)
	if err != nil {
		return
	}
	for _, key := range sec.Keys() {
		if !known(key.Name()) {
			logger.Warn("profile.key.unknown", "Skipping unknown profile key", map[string]interface{}{
				"section": section,
				"key":     key.Name(),
			})
			continue
		}
		if v := strings.TrimSpace(key.String()); !isSentinel(v) {
			into[key.Name()] = v
		}
	}
}

func writeCatalog(sec *ini.Section, c *catalog.Catalog, values map[string]string) {
	for _, key := range c.Keys() {
		if v := strings.TrimSpace(values[key]); !isSentinel(v) {
			setKey(sec, key, v)
		}
	}
}

func setKey(sec *ini.Section, key, value string) {
	// NewKey only fails on an empty name, which catalogs never contain.
	_, _ = sec.NewKey(key, value)
}

func isSentinel(v string) bool {
	return v == "" || v == catalog.Unset
}

func diskKey(device, setting string) string {
	return device + "_" + setting
}

// diskSettingOrder lists the settings of one device: the known vocabulary
// first, then any others sorted.
func diskSettingOrder(vocab []string, settings map[string]string) []string {
	out := make([]string, 0, len(settings))
	known := map[string]struct{}{}
	for _, s := range vocab {
		known[s] = struct{}{}
		if _, ok := settings[s]; ok {
			out = append(out, s)
		}
	}
	var extra []string
	for s := range settings {
		if _, ok := known[s]; !ok {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// ParseDiskKey splits a [Disk] key into device and setting. Known setting
// suffixes are matched first so device names containing underscores
// survive; otherwise the key splits at its last underscore. A key without
// any underscore is a legacy scheduler entry.
func ParseDiskKey(key string, vocab []string) (device, setting string, ok bool) {
	for _, s := range vocab {
		suffix := "_" + s
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return strings.TrimSuffix(key, suffix), s, true
		}
	}
	i := strings.LastIndex(key, "_")
	switch {
	case key == "":
		return "", "", false
	case i < 0:
		return key, catalog.KeyDiskScheduler, true
	case i == 0 || i == len(key)-1:
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

func unescapePercent(s string) string {
	return strings.ReplaceAll(s, "%%", "%")
}
