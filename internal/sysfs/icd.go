package sysfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"voltgui/internal/catalog"
)

// ICD is one Vulkan driver found in the manifest directory. A driver may
// ship several manifests, one per architecture.
type ICD struct {
	Name     string
	Files    []string
	Software bool
}

// DisplayName is the choice shown for the driver.
func (i ICD) DisplayName() string {
	if i.Software {
		return i.Name + catalog.SoftwareRenderingSuffix
	}
	return i.Name
}

// DiscoverICDs groups the .json manifests of dir by driver name, the part
// of the file name before the first dot. A missing directory yields nil.
func DiscoverICDs(dir string) []ICD {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	byName := map[string]*ICD{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := icdName(e.Name())
		icd, ok := byName[name]
		if !ok {
			icd = &ICD{Name: name, Software: strings.Contains(name, "lvp")}
			byName[name] = icd
		}
		icd.Files = append(icd.Files, filepath.Join(dir, e.Name()))
	}

	out := make([]ICD, 0, len(byName))
	for _, icd := range byName {
		sort.Strings(icd.Files)
		out = append(out, *icd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ICDOptions lists the selectable driver names of dir, sorted.
func ICDOptions(dir string) []string {
	icds := DiscoverICDs(dir)
	out := make([]string, len(icds))
	for i, icd := range icds {
		out[i] = icd.DisplayName()
	}
	return out
}

// ResolveICD returns the manifest paths for a selection, which may carry
// the software rendering suffix.
func ResolveICD(dir, selection string) []string {
	name := strings.TrimSuffix(selection, catalog.SoftwareRenderingSuffix)
	for _, icd := range DiscoverICDs(dir) {
		if icd.Name == name {
			return icd.Files
		}
	}
	return nil
}

func icdName(file string) string {
	if i := strings.Index(file, "."); i >= 0 {
		return file[:i]
	}
	return file
}
