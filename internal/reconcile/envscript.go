package reconcile

import (
	"strconv"
	"strings"

	"voltgui/internal/catalog"
	"voltgui/internal/fsutil"
	"voltgui/internal/logging"
	"voltgui/internal/sysfs"
)

const bytesPerGiB = 1073741824

// EnvScript is the generated launch environment.
type EnvScript struct {
	// Lines are NAME=value assignments in emission order.
	Lines         []string
	LaunchOptions string
	UsesOverlay   bool
}

// Empty reports whether the script would have no content.
func (s EnvScript) Empty() bool {
	return len(s.Lines) == 0 && s.LaunchOptions == ""
}

// Render returns the file content: one assignment per line followed by an
// optional launch_options line.
func (s EnvScript) Render() string {
	var b strings.Builder
	for _, l := range s.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if s.LaunchOptions != "" {
		b.WriteString("launch_options=")
		b.WriteString(s.LaunchOptions)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTemp writes the script to a fresh volt-*.conf file in dir, or the
// system temp dir when dir is empty, and returns its path.
func (s EnvScript) WriteTemp(dir string) (string, error) {
	return fsutil.WriteTempFile(dir, "volt-*.conf", []byte(s.Render()), fsutil.ScriptFilePermissions)
}

// envBuilder keeps assignments unique by name in first-assigned order.
type envBuilder struct {
	names  []string
	values map[string]string
}

func newEnvBuilder() *envBuilder {
	return &envBuilder{values: map[string]string{}}
}

func (b *envBuilder) set(name, value string) {
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = value
}

// force moves name to the end with value, dropping any earlier assignment.
func (b *envBuilder) force(name, value string) {
	if _, ok := b.values[name]; ok {
		for i, n := range b.names {
			if n == name {
				b.names = append(b.names[:i], b.names[i+1:]...)
				break
			}
		}
	}
	b.names = append(b.names, name)
	b.values[name] = value
}

func (b *envBuilder) lines() []string {
	out := make([]string, len(b.names))
	for i, n := range b.names {
		out[i] = n + "=" + b.values[n]
	}
	return out
}

// BuildEnvScript translates GPU selections into environment assignments.
// Values without a mapping are skipped silently. Options targeting the
// overlay are merged into one comma-separated assignment, and flags
// implied by a selection are appended once, overriding an explicit
// assignment of the same variable.
func BuildEnvScript(set *catalog.Set, gpu map[string]string, launchOptions, icdDir string, logger *logging.Logger) EnvScript {
	env := newEnvBuilder()
	var overlayParts []string
	var implied []string
	usesOverlay := false

	provider := gpu[catalog.KeyOGLProvider]
	if provider == catalog.Unset {
		provider = ""
	}

	for _, c := range set.GPU {
		for _, d := range c.Descriptors() {
			if d.Env == nil {
				continue
			}
			v := strings.TrimSpace(gpu[d.Key])
			if d.IsDefault(v) {
				continue
			}
			if d.Env.Var == catalog.OverlayConfigVar {
				usesOverlay = true
			}
			if d.Env.MesaOnly && !strings.HasPrefix(provider, catalog.ProviderMesa) {
				continue
			}

			mapped, ok := mapValue(d, v, icdDir)
			if !ok {
				logger.Debug("reconcile.env.unmapped", "Skipping value without mapping", map[string]interface{}{
					"key":   d.Key,
					"value": v,
				})
				continue
			}

			if d.Env.Var == catalog.OverlayConfigVar {
				overlayParts = append(overlayParts, d.Env.Prefix+mapped)
			} else {
				env.set(d.Env.Var, d.Env.Prefix+mapped)
			}
			implied = appendUnique(implied, d.Env.Implies...)

			if d.Key == catalog.KeyOGLProvider {
				for _, kv := range providerExtras(v, gpu[catalog.KeyVulkanICD]) {
					name, value, _ := strings.Cut(kv, "=")
					env.set(name, value)
				}
			}
		}
	}

	if len(overlayParts) > 0 {
		env.set(catalog.OverlayConfigVar, strings.Join(overlayParts, ","))
	}
	for _, kv := range implied {
		name, value, _ := strings.Cut(kv, "=")
		env.force(name, value)
	}

	opts := strings.TrimSpace(launchOptions)
	if usesOverlay {
		opts = strings.TrimSpace(catalog.OverlayCommand + " " + opts)
	}

	return EnvScript{Lines: env.lines(), LaunchOptions: opts, UsesOverlay: usesOverlay}
}

func mapValue(d catalog.Descriptor, v, icdDir string) (string, bool) {
	m := d.Env
	switch m.Kind {
	case catalog.EnvLookup:
		mapped, ok := m.Values[v]
		return mapped, ok && mapped != ""
	case catalog.EnvDirect:
		return v, true
	case catalog.EnvLookupOrDirect:
		if mapped, ok := m.Values[v]; ok {
			return mapped, true
		}
		return v, true
	case catalog.EnvBytes:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(n*bytesPerGiB, 10), true
	case catalog.EnvExtractPrefix:
		prefix, _, _ := strings.Cut(v, " - ")
		prefix = strings.TrimSpace(prefix)
		return prefix, prefix != ""
	case catalog.EnvVulkanICD:
		files := sysfs.ResolveICD(icdDir, v)
		if len(files) == 0 {
			return "", false
		}
		return strings.Join(files, ":"), true
	}
	return "", false
}

// providerExtras returns the assignments a GL provider choice adds beyond
// the vendor library name.
func providerExtras(provider, vulkanICD string) []string {
	switch provider {
	case catalog.ProviderMesaSoftware:
		return []string{"LIBGL_ALWAYS_SOFTWARE=1"}
	case catalog.ProviderMesaZink:
		extras := []string{"MESA_LOADER_DRIVER_OVERRIDE=zink", "LIBGL_KOPPER_DRI2=1"}
		if strings.Contains(strings.ToLower(vulkanICD), strings.TrimSpace(catalog.SoftwareRenderingSuffix)) {
			extras = append(extras, "LIBGL_ALWAYS_SOFTWARE=1")
		}
		return extras
	}
	return nil
}

func appendUnique(list []string, items ...string) []string {
	for _, it := range items {
		found := false
		for _, l := range list {
			if l == it {
				found = true
				break
			}
		}
		if !found {
			list = append(list, it)
		}
	}
	return list
}
