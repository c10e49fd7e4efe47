package candycane

import (
	"sync"

	"github.com/soypat/candycane/sdf"
)

// construct carries the configuration through a build. A nil cache
// disables memoization.
type construct struct {
	cfg   Config
	cache *cache
}

// cache memoizes solids by their parameter tuple. Solids are never mutated
// after construction so they are shared freely between callers.
type cache struct {
	mu     sync.Mutex
	solids map[any]sdf.SDF3
	hits   int
}

func (c *cache) lookup(key any) (sdf.SDF3, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.solids[key]
	if ok {
		c.hits++
	}
	return s, ok
}

func (c *cache) store(key any, s sdf.SDF3) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.solids == nil {
		c.solids = make(map[any]sdf.SDF3)
	}
	c.solids[key] = s
}

// Builder builds cane solids with a fixed configuration and memoizes every
// spiral, cap, hook and half it builds. A Builder is safe for concurrent use.
type Builder struct {
	c construct
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{c: construct{cfg: cfg, cache: &cache{}}}, nil
}

// Config returns the configuration of the Builder.
func (b *Builder) Config() Config { return b.c.cfg }

// Spiral is the memoized version of Spiral.
func (b *Builder) Spiral(p SpiralParams) (sdf.SDF3, error) {
	return b.c.spiral(p)
}

// EndCap is the memoized version of EndCap.
func (b *Builder) EndCap(phase, outerRadius, innerRadius, colorHeight float64) (sdf.SDF3, error) {
	return b.c.endCap(phase, outerRadius, innerRadius, colorHeight)
}

// CurvedPart is the memoized version of CurvedPart.
func (b *Builder) CurvedPart(p CurveParams) (sdf.SDF3, error) {
	return b.c.curvedPart(p)
}

// Half is the memoized version of Half.
func (b *Builder) Half(p CaneParams) (sdf.SDF3, error) {
	return b.c.half(p)
}

// Assemble is the memoized version of Assemble.
func (b *Builder) Assemble(p CaneParams) (Model, error) {
	return b.c.assemble(p)
}

// CacheHits returns how many builds were served from the cache.
func (b *Builder) CacheHits() int {
	b.c.cache.mu.Lock()
	defer b.c.cache.mu.Unlock()
	return b.c.cache.hits
}
