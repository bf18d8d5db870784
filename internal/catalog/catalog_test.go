package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	s, err := New(Options{SchedulerSearch: []string{"/opt/scx/bin"}})
	require.NoError(t, err)
	return s
}

func TestNew_BuildsEveryCatalog(t *testing.T) {
	s := newTestSet(t)

	assert.Equal(t, 4, s.CPU.Len())
	assert.Equal(t, 20, s.Kernel.Len())
	assert.Equal(t, 1, s.Disk.Len())
	require.Len(t, s.GPU, 6)

	sizes := map[Category]int{
		CategoryMesa:            11,
		CategoryNVIDIA:          11,
		CategoryRenderSelector:  3,
		CategoryRenderPipeline:  6,
		CategoryUpscaling:       3,
		CategoryFrameGeneration: 5,
	}
	for category, want := range sizes {
		c, ok := s.GPUCatalog(category)
		require.True(t, ok, "missing %s", category)
		assert.Equal(t, want, c.Len(), category)
	}
}

func TestNew_UsesSchedulerSearchDirs(t *testing.T) {
	s := newTestSet(t)

	d, ok := s.CPU.Lookup(KeyScheduler)
	require.True(t, ok)
	assert.Equal(t, []string{"/opt/scx/bin"}, d.Domain.SearchDirs)
	assert.Equal(t, []string{Unset, SchedulerNone}, d.Domain.Defaults)
}

func TestValidate_RejectsDuplicateKeys(t *testing.T) {
	s := newTestSet(t)
	s.GPU = append(s.GPU, NewCatalog(CategoryMesa, "Duplicate", []Descriptor{{Key: "mesa_dither_combo"}}))

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mesa_dither_combo")
}

func TestValidate_RejectsEmptyKey(t *testing.T) {
	s := newTestSet(t)
	s.Kernel = NewCatalog(CategoryKernel, "Kernel", []Descriptor{{Key: ""}})

	assert.Error(t, s.Validate())
}

func TestKernel_DynamicEntries(t *testing.T) {
	s := newTestSet(t)

	var dynamic []string
	for _, d := range s.Kernel.Descriptors() {
		if d.Dynamic {
			dynamic = append(dynamic, d.Key)
			assert.True(t, strings.HasPrefix(d.Path, "/sys/kernel/mm/transparent_hugepage/"), d.Path)
			assert.Equal(t, d.Path, d.Domain.ChoicesPath)
		} else {
			assert.Equal(t, DomainFreeText, d.Domain.Kind, d.Key)
		}
	}
	assert.Equal(t, []string{"thp_enabled", "thp_shmem_enabled", "thp_defrag"}, dynamic)
}

func TestDescriptor_Defaults(t *testing.T) {
	s := newTestSet(t)

	gov, _ := s.CPU.Lookup(KeyGovernor)
	assert.Equal(t, Unset, gov.Default())
	assert.True(t, gov.IsDefault(Unset))
	assert.True(t, gov.IsDefault(""))
	assert.False(t, gov.IsDefault("performance"))

	swappiness, _ := s.Kernel.Lookup("swappiness")
	assert.Equal(t, "", swappiness.Default())
	assert.True(t, swappiness.IsDefault(""))
	assert.False(t, swappiness.IsDefault("10"))
}

func TestFixedDomains_StartWithUnset(t *testing.T) {
	s := newTestSet(t)

	for _, c := range s.GPU {
		for _, d := range c.Descriptors() {
			if d.Domain.Kind != DomainFixed {
				continue
			}
			require.NotEmpty(t, d.Domain.Choices, d.Key)
			assert.Equal(t, Unset, d.Domain.Choices[0], d.Key)
			assert.NotNil(t, d.Env, d.Key)
			assert.True(t, d.IsEnvOnly(), d.Key)
		}
	}
}

func TestRenderPipeline_AllWriteOverlayConfig(t *testing.T) {
	s := newTestSet(t)
	c, _ := s.GPUCatalog(CategoryRenderPipeline)

	for _, d := range c.Descriptors() {
		assert.Equal(t, OverlayConfigVar, d.Env.Var, d.Key)
	}
}

func TestImpliedFlags(t *testing.T) {
	s := newTestSet(t)

	sharpen, ok := s.LookupGPU("fsr_sharpening_combo")
	require.True(t, ok)
	assert.Equal(t, []string{"WINE_FULLSCREEN_FSR=1"}, sharpen.Env.Implies)

	fg, _ := s.GPUCatalog(CategoryFrameGeneration)
	for _, d := range fg.Descriptors() {
		assert.Contains(t, d.Env.Implies, "LSFG_LEGACY=1", d.Key)
	}
}

func TestLookupGPU_AndKeys(t *testing.T) {
	s := newTestSet(t)

	_, ok := s.LookupGPU(KeyVulkanICD)
	assert.True(t, ok)
	_, ok = s.LookupGPU("governor")
	assert.False(t, ok)

	keys := s.GPUKeys()
	assert.Equal(t, "mesa_vsync_vk_combo", keys[0])
	assert.Len(t, keys, 39)
}

func TestEnvVars_SortedAndUnique(t *testing.T) {
	s := newTestSet(t)

	vars := s.EnvVars()
	count := 0
	for i, v := range vars {
		if i > 0 {
			assert.Less(t, vars[i-1], v)
		}
		if v == OverlayConfigVar {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDescriptors_ReturnsCopy(t *testing.T) {
	s := newTestSet(t)

	entries := s.CPU.Descriptors()
	entries[0].Key = "mutated"

	d, ok := s.CPU.Lookup(KeyGovernor)
	require.True(t, ok)
	assert.Equal(t, KeyGovernor, d.Key)
}

func TestDiskSettingKeys(t *testing.T) {
	s := newTestSet(t)
	assert.Equal(t, []string{KeyDiskScheduler}, s.DiskSettingKeys())
}

func TestDomainKind_String(t *testing.T) {
	assert.Equal(t, "range", DomainRange.String())
	assert.Equal(t, "unknown", DomainKind(99).String())
}
