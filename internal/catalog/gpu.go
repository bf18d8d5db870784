package catalog

import "strconv"

const (
	// KeyOGLProvider selects the GLX vendor library
	KeyOGLProvider = "ogl_provider_combo"
	// KeyDRIPrime selects the Mesa PRIME GPU index
	KeyDRIPrime = "dri_prime_combo"
	// KeyVulkanICD selects the Vulkan driver manifest
	KeyVulkanICD = "vulkan_render_combo"

	// ProviderNVIDIA is the proprietary GLX vendor
	ProviderNVIDIA = "nvidia"
	// ProviderMesa is the default Mesa GLX vendor
	ProviderMesa = "mesa"
	// ProviderMesaSoftware forces llvmpipe
	ProviderMesaSoftware = "mesa (software rendering)"
	// ProviderMesaZink runs OpenGL on Vulkan through zink
	ProviderMesaZink = "mesa (zink)"

	// SoftwareRenderingSuffix marks CPU-based Vulkan ICDs such as lavapipe
	SoftwareRenderingSuffix = " (software rendering)"

	// OverlayConfigVar accumulates every render pipeline option
	OverlayConfigVar = "MANGOHUD_CONFIG"
	// OverlayCommand is prepended to launch options when the overlay is used
	OverlayCommand = "mangohud"
)

var onOff = []string{"on", "off"}

func choices(values ...string) Domain {
	return Domain{
		Kind:     DomainFixed,
		Choices:  append([]string{Unset}, values...),
		Defaults: []string{Unset},
	}
}

func intChoices(from, to int) Domain {
	values := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		values = append(values, strconv.Itoa(i))
	}
	return choices(values...)
}

func lookup(name string, values map[string]string) *EnvMapping {
	return &EnvMapping{Var: name, Kind: EnvLookup, Values: values}
}

func direct(name string) *EnvMapping {
	return &EnvMapping{Var: name, Kind: EnvDirect}
}

func onOffTo(name, on, off string) *EnvMapping {
	return lookup(name, map[string]string{"on": on, "off": off})
}

func mesaDescriptors() []Descriptor {
	return []Descriptor{
		{Key: "mesa_vsync_vk_combo", Label: "Vulkan Vsync",
			Domain: choices("mailbox", "adaptive vsync", "on", "off"),
			Env: lookup("MESA_VK_WSI_PRESENT_MODE", map[string]string{
				"mailbox": "mailbox", "adaptive vsync": "relaxed", "on": "fifo", "off": "immediate",
			})},
		{Key: "mesa_vsync_gl_combo", Label: "OpenGL Vsync",
			Domain: choices("default interval 0", "default interval 1", "on", "off"),
			Env: lookup("vblank_mode", map[string]string{
				"default interval 0": "1", "default interval 1": "2", "on": "3", "off": "0",
			})},
		{Key: "mesa_thread_opt_combo", Label: "OpenGL Thread Optimizations",
			Domain: choices(onOff...),
			Env:    onOffTo("mesa_glthread", "true", "false")},
		{Key: "mesa_extension_override_combo", Label: "OpenGL Extension Overrides",
			Domain: choices("try to disable anisotropic", "try to disable antialiasing", "try to disable both"),
			Env: lookup("MESA_EXTENSION_OVERRIDE", map[string]string{
				"try to disable anisotropic":  "-GL_EXT_texture_filter_anisotropic",
				"try to disable antialiasing": "-GL_EXT_framebuffer_multisample -GL_EXT_framebuffer_multisample_blit_scaled",
				"try to disable both":         "-GL_EXT_framebuffer_multisample -GL_EXT_framebuffer_multisample_blit_scaled -GL_EXT_texture_filter_anisotropic",
			})},
		{Key: "mesa_dither_combo", Label: "Texture Dithering",
			Domain: choices(onOff...),
			Env:    onOffTo("MESA_NO_DITHER", "0", "1")},
		{Key: "mesa_shader_cache_combo", Label: "Shader Cache",
			Domain: choices(onOff...),
			Env:    onOffTo("MESA_SHADER_CACHE_DISABLE", "false", "true")},
		{Key: "mesa_cache_size_combo", Label: "Shader Cache Size (GB)",
			Domain: intChoices(1, 10),
			Env:    direct("MESA_SHADER_CACHE_MAX_SIZE")},
		{Key: "mesa_error_check_combo", Label: "Error Checking",
			Domain: choices(onOff...),
			Env:    onOffTo("MESA_NO_ERROR", "false", "true")},
		{Key: "mesa_fake_vk_combo", Label: "Vulkan Version Spoofing",
			Domain: choices("1.1", "1.2", "1.3", "1.4"),
			Env:    direct("MESA_VK_VERSION_OVERRIDE")},
		{Key: "mesa_fake_gl_combo", Label: "OpenGL Version Spoofing",
			Domain: choices("3.3", "3.3compat", "4.6", "4.6compat"),
			Env:    direct("MESA_GL_VERSION_OVERRIDE")},
		{Key: "mesa_fake_glsl_combo", Label: "GLSL Version Spoofing",
			Domain: choices("330", "460"),
			Env:    direct("MESA_GLSL_VERSION_OVERRIDE")},
	}
}

func nvidiaDescriptors() []Descriptor {
	return []Descriptor{
		{Key: "nvidia_vsync_gl_combo", Label: "OpenGL Vsync",
			Domain: choices(onOff...),
			Env:    onOffTo("__GL_SYNC_TO_VBLANK", "1", "0")},
		{Key: "nvidia_gsync_combo", Label: "OpenGL G-SYNC",
			Domain: choices(onOff...),
			Env:    onOffTo("__GL_VRR_ALLOWED", "1", "0")},
		{Key: "nvidia_thread_opt_combo", Label: "OpenGL Thread Optimizations",
			Domain: choices(onOff...),
			Env:    onOffTo("__GL_THREADED_OPTIMIZATIONS", "1", "0")},
		{Key: "nvidia_fsaa_combo", Label: "OpenGL Full Scene Antialiasing",
			Domain: choices(
				"0 - off", "1 - 2x (2xms)", "5 - 4x (4xms)",
				"7 - 8x (4xms, 4xcs)", "8 - 16x (4xms, 12xcs)",
				"9 - 8x (4xss, 2xms)", "10 - 8x (8xms)",
				"11 - 16x (4xss, 4xms)", "12 - 16x (8xms, 8xcs)",
				"14 - 32x (8xms, 24xcs)",
			),
			Env: &EnvMapping{Var: "__GL_FSAA_MODE", Kind: EnvExtractPrefix}},
		{Key: "nvidia_fxaa_combo", Label: "OpenGL FXAA",
			Domain: choices(onOff...),
			Env:    onOffTo("__GL_ALLOW_FXAA_USAGE", "1", "0")},
		{Key: "nvidia_aniso_combo", Label: "OpenGL Anisotropic Filtering",
			Domain: choices(
				"0 - no anisotropic filtering",
				"1 - 2x anisotropic filtering", "2 - 4x anisotropic filtering",
				"3 - 8x anisotropic filtering", "4 - 16x anisotropic filtering",
			),
			Env: &EnvMapping{Var: "__GL_LOG_MAX_ANISO", Kind: EnvExtractPrefix}},
		{Key: "nvidia_tex_quality_combo", Label: "OpenGL Texture Quality",
			Domain: choices("quality", "mixed", "performance"),
			Env: lookup("__GL_OpenGLImageSettings", map[string]string{
				"quality": "1", "mixed": "2", "performance": "3",
			})},
		{Key: "nvidia_shader_cache_combo", Label: "Shader Cache",
			Domain: choices(onOff...),
			Env:    onOffTo("__GL_SHADER_DISK_CACHE", "1", "0")},
		{Key: "nvidia_cache_size_combo", Label: "Shader Cache Size (GB)",
			Domain: intChoices(1, 10),
			Env:    &EnvMapping{Var: "__GL_SHADER_DISK_CACHE_SIZE", Kind: EnvBytes}},
		{Key: "nvidia_glsl_ext_combo", Label: "Ignore GLSL Extensions Requirements",
			Domain: choices(onOff...),
			Env:    onOffTo("__GL_IGNORE_GLSL_EXT_REQ", "1", "0")},
		{Key: "nvidia_glx_combo", Label: "Use Unofficial GLX Protocol",
			Domain: choices(onOff...),
			Env:    onOffTo("__GL_ALLOW_UNOFFICIAL_PROTOCOL", "1", "0")},
	}
}

func renderSelectorDescriptors() []Descriptor {
	return []Descriptor{
		{Key: KeyOGLProvider, Label: "OpenGL Provider",
			Domain: choices(ProviderNVIDIA, ProviderMesa, ProviderMesaSoftware, ProviderMesaZink),
			Env: lookup("__GLX_VENDOR_LIBRARY_NAME", map[string]string{
				ProviderNVIDIA:       "nvidia",
				ProviderMesa:         "mesa",
				ProviderMesaSoftware: "mesa",
				ProviderMesaZink:     "mesa",
			})},
		{Key: KeyDRIPrime, Label: "Mesa Select GPU",
			Domain: intChoices(0, 10),
			Env:    &EnvMapping{Var: "DRI_PRIME", Kind: EnvDirect, MesaOnly: true}},
		{Key: KeyVulkanICD, Label: "Vulkan ICD",
			Domain: Domain{Kind: DomainVulkanICD, Defaults: []string{Unset}},
			Env: &EnvMapping{Var: "VK_DRIVER_FILES", Kind: EnvVulkanICD,
				Implies: []string{"DISABLE_LAYER_AMD_SWITCHABLE_GRAPHICS_1=1"}}},
	}
}

func overlay(kind EnvRuleKind, prefix string, values map[string]string) *EnvMapping {
	return &EnvMapping{Var: OverlayConfigVar, Kind: kind, Prefix: prefix, Values: values}
}

func renderPipelineDescriptors() []Descriptor {
	return []Descriptor{
		{Key: "display_combo", Label: "Display Elements",
			Domain: choices("no hud", "fps only", "horizontal", "extended", "detailed"),
			Env: overlay(EnvLookup, "", map[string]string{
				"no hud": "preset=0", "fps only": "preset=1", "horizontal": "preset=2",
				"extended": "preset=3", "detailed": "preset=4",
			})},
		{Key: "fps_limit_combo", Label: "Fps Limit",
			Domain: choices("unlimited", "15", "20", "24", "25", "30", "40", "45", "50", "60",
				"72", "75", "90", "100", "120", "144", "165", "180", "200", "240", "360"),
			Env: overlay(EnvLookupOrDirect, "fps_limit=", map[string]string{"unlimited": "0"})},
		{Key: "fps_method_combo", Label: "Fps Limit Method",
			Domain: choices("early - smoothest frametimes", "late - lowest latency"),
			Env: overlay(EnvLookup, "fps_limit_method=", map[string]string{
				"early - smoothest frametimes": "early", "late - lowest latency": "late",
			})},
		{Key: "texture_filter_combo", Label: "Texture Filtering",
			Domain: choices("bicubic", "retro", "trilinear"),
			Env: overlay(EnvLookup, "", map[string]string{
				"bicubic": "bicubic", "retro": "retro", "trilinear": "trilinear",
			})},
		{Key: "mipmap_lod_bias_combo", Label: "Mipmap LOD Bias",
			Domain: intChoices(-16, 16),
			Env:    overlay(EnvDirect, "picmip=", nil)},
		{Key: "anisotropic_filter_combo", Label: "Anisotropic Filtering",
			Domain: intChoices(0, 16),
			Env:    overlay(EnvDirect, "af=", nil)},
	}
}

const fsrEnable = "WINE_FULLSCREEN_FSR=1"

func upscalingDescriptors() []Descriptor {
	return []Descriptor{
		{Key: "fsr_upscaling_combo", Label: "Proton FSR Upscaling",
			Domain: choices(onOff...),
			Env:    onOffTo("WINE_FULLSCREEN_FSR", "1", "0")},
		{Key: "fsr_sharpening_combo", Label: "Proton FSR Sharpening Strength",
			Description: "0 is the sharpest, 5 the softest.",
			Domain:      intChoices(0, 5),
			Env: &EnvMapping{Var: "WINE_FULLSCREEN_FSR_STRENGTH", Kind: EnvDirect,
				Implies: []string{fsrEnable}}},
		{Key: "fsr_mode_combo", Label: "Proton FSR Resolution Mode",
			Domain: choices("performance", "balanced", "quality", "ultra"),
			Env: &EnvMapping{Var: "WINE_FULLSCREEN_FSR_MODE", Kind: EnvLookup,
				Values: map[string]string{
					"performance": "performance", "balanced": "balanced",
					"quality": "quality", "ultra": "ultra",
				},
				Implies: []string{fsrEnable}}},
	}
}

const lsfgLegacy = "LSFG_LEGACY=1"

func frameGenerationDescriptors() []Descriptor {
	return []Descriptor{
		{Key: "lsfg_multiplier_combo", Label: "Frame Generation Multiplier",
			Domain: choices("2", "3", "4"),
			Env: &EnvMapping{Var: "LSFG_MULTIPLIER", Kind: EnvDirect,
				Implies: []string{lsfgLegacy}}},
		{Key: "lsfg_flow_scale_combo", Label: "Flow Scale",
			Domain: choices("0.25", "0.5", "0.75", "1.0"),
			Env: &EnvMapping{Var: "LSFG_FLOW_SCALE", Kind: EnvDirect,
				Implies: []string{lsfgLegacy}}},
		{Key: "lsfg_performance_combo", Label: "Performance Mode",
			Domain: choices(onOff...),
			Env: &EnvMapping{Var: "LSFG_PERFORMANCE_MODE", Kind: EnvLookup,
				Values:  map[string]string{"on": "1", "off": "0"},
				Implies: []string{lsfgLegacy}}},
		{Key: "lsfg_hdr_combo", Label: "HDR Mode",
			Domain: choices(onOff...),
			Env: &EnvMapping{Var: "LSFG_HDR_MODE", Kind: EnvLookup,
				Values:  map[string]string{"on": "1", "off": "0"},
				Implies: []string{lsfgLegacy}}},
		{Key: "lsfg_present_mode_combo", Label: "Present Mode",
			Domain: choices("fifo", "mailbox", "immediate"),
			Env: &EnvMapping{Var: "LSFG_EXPERIMENTAL_PRESENT_MODE", Kind: EnvDirect,
				Implies: []string{lsfgLegacy}}},
	}
}
