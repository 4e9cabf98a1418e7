package generator

import (
	"fmt"
	"sync"

	"claimdesk/internal/port"
)

// Cache memoizes schema-bound generators for the process lifetime, keyed by
// schema name. Construction is expensive relative to invocation, so each
// schema's generator is built at most once, even when many requests hit an
// unbuilt schema at the same time. Shared across requests; safe for
// concurrent use.
type Cache struct {
	build port.GeneratorBuilder

	mu         sync.Mutex
	generators map[string]port.StructuredGenerator
}

// NewCache creates a Cache that constructs generators with build.
func NewCache(build port.GeneratorBuilder) *Cache {
	return &Cache{
		build:      build,
		generators: make(map[string]port.StructuredGenerator),
	}
}

// For returns the generator bound to spec, constructing it on first use.
// Construction failures are not cached; the next caller retries.
func (c *Cache) For(spec port.SchemaSpec) (port.StructuredGenerator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen, ok := c.generators[spec.Name]; ok {
		return gen, nil
	}

	gen, err := c.build(spec)
	if err != nil {
		return nil, fmt.Errorf("building generator for schema %s: %w", spec.Name, err)
	}
	c.generators[spec.Name] = gen
	return gen, nil
}
