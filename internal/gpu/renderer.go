package gpu

import (
	"context"
	"strings"

	"voltgui/internal/procexec"
)

const (
	openGLRendererPrefix = "OpenGL renderer string:"
	vulkanDeviceKey      = "deviceName"
)

// OpenGLRenderer asks glxinfo for the active OpenGL renderer. Returns ""
// when glxinfo is missing or prints no renderer line.
func OpenGLRenderer(ctx context.Context, r procexec.Runner) string {
	res := r.Run(ctx, "glxinfo", "-B")
	if !res.OK() {
		return ""
	}
	return ParseOpenGLRenderer(res.Stdout)
}

// ParseOpenGLRenderer extracts the renderer string from glxinfo output.
func ParseOpenGLRenderer(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, openGLRendererPrefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// VulkanDevices asks vulkaninfo for the device names it can see.
func VulkanDevices(ctx context.Context, r procexec.Runner) []string {
	res := r.Run(ctx, "vulkaninfo", "--summary")
	if !res.OK() {
		return nil
	}
	return ParseVulkanDevices(res.Stdout)
}

// ParseVulkanDevices extracts deviceName values from vulkaninfo --summary
// output in order of appearance.
func ParseVulkanDevices(out string) []string {
	var devices []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, vulkanDeviceKey) {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			devices = append(devices, value)
		}
	}
	return devices
}
