package catalog

import (
	"fmt"
	"sort"
)

// Catalog is an ordered, immutable table of descriptors.
type Catalog struct {
	category Category
	label    string
	entries  []Descriptor
	index    map[string]int
}

// NewCatalog builds a catalog. The category is stamped on every entry.
func NewCatalog(category Category, label string, entries []Descriptor) *Catalog {
	c := &Catalog{
		category: category,
		label:    label,
		entries:  entries,
		index:    make(map[string]int, len(entries)),
	}
	for i := range c.entries {
		c.entries[i].Category = category
		if _, dup := c.index[c.entries[i].Key]; !dup {
			c.index[c.entries[i].Key] = i
		}
	}
	return c
}

// Category returns the catalog category.
func (c *Catalog) Category() Category { return c.category }

// Label returns the human readable catalog title.
func (c *Catalog) Label() string { return c.label }

// Len returns the number of descriptors.
func (c *Catalog) Len() int { return len(c.entries) }

// Descriptors returns a copy of the entries in display order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds a descriptor by key.
func (c *Catalog) Lookup(key string) (Descriptor, bool) {
	i, ok := c.index[key]
	if !ok {
		return Descriptor{}, false
	}
	return c.entries[i], true
}

// Keys returns descriptor keys in display order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, d := range c.entries {
		keys[i] = d.Key
	}
	return keys
}

// Options tunes catalog construction to the host layout.
type Options struct {
	SchedulerSearch []string
}

// Set holds every catalog the application uses. It is built once at start-up
// and passed explicitly to the reader, reconciler and front-ends.
type Set struct {
	CPU    *Catalog
	Kernel *Catalog
	Disk   *Catalog
	GPU    []*Catalog
}

// New builds the catalog set.
func New(opts Options) (*Set, error) {
	searchDirs := opts.SchedulerSearch
	if len(searchDirs) == 0 {
		searchDirs = []string{"/usr/bin", "/usr/local/bin"}
	}

	s := &Set{
		CPU:    NewCatalog(CategoryCPU, "CPU", cpuDescriptors(searchDirs)),
		Kernel: NewCatalog(CategoryKernel, "Kernel", kernelDescriptors()),
		Disk:   NewCatalog(CategoryDisk, "Disk", diskDescriptors()),
		GPU: []*Catalog{
			NewCatalog(CategoryMesa, "Mesa", mesaDescriptors()),
			NewCatalog(CategoryNVIDIA, "NVIDIA (Proprietary)", nvidiaDescriptors()),
			NewCatalog(CategoryRenderSelector, "Render Selector", renderSelectorDescriptors()),
			NewCatalog(CategoryRenderPipeline, "Render Pipeline", renderPipelineDescriptors()),
			NewCatalog(CategoryUpscaling, "Upscaling", upscalingDescriptors()),
			NewCatalog(CategoryFrameGeneration, "Frame Generation", frameGenerationDescriptors()),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is New for callers with static options.
func MustNew(opts Options) *Set {
	s, err := New(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate enforces key uniqueness within each catalog and across the GPU
// catalogs, which share one profile section.
func (s *Set) Validate() error {
	for _, c := range append([]*Catalog{s.CPU, s.Kernel, s.Disk}, s.GPU...) {
		if err := checkUnique(c.label, c.entries); err != nil {
			return err
		}
	}

	var gpu []Descriptor
	for _, c := range s.GPU {
		gpu = append(gpu, c.entries...)
	}
	return checkUnique("GPU", gpu)
}

func checkUnique(scope string, entries []Descriptor) error {
	seen := make(map[string]struct{}, len(entries))
	for _, d := range entries {
		if d.Key == "" {
			return fmt.Errorf("catalog %s: descriptor with empty key", scope)
		}
		if _, dup := seen[d.Key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q", scope, d.Key)
		}
		seen[d.Key] = struct{}{}
	}
	return nil
}

// GPUCatalog returns the GPU catalog of the given category.
func (s *Set) GPUCatalog(category Category) (*Catalog, bool) {
	for _, c := range s.GPU {
		if c.category == category {
			return c, true
		}
	}
	return nil, false
}

// LookupGPU searches every GPU catalog for key.
func (s *Set) LookupGPU(key string) (Descriptor, bool) {
	for _, c := range s.GPU {
		if d, ok := c.Lookup(key); ok {
			return d, true
		}
	}
	return Descriptor{}, false
}

// GPUKeys returns every GPU key in display order.
func (s *Set) GPUKeys() []string {
	var keys []string
	for _, c := range s.GPU {
		keys = append(keys, c.Keys()...)
	}
	return keys
}

// EnvVars lists every environment variable the GPU catalogs may emit,
// sorted. Used by the status view to show what a launcher inherits.
func (s *Set) EnvVars() []string {
	seen := map[string]struct{}{}
	for _, c := range s.GPU {
		for _, d := range c.entries {
			if d.Env == nil || d.Env.Var == "" {
				continue
			}
			seen[d.Env.Var] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
