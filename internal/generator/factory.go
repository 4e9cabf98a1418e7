package generator

import (
	"fmt"

	"claimdesk/internal/config"
	"claimdesk/internal/port"
)

// ProviderFactory creates a schema-bound StructuredGenerator from a provider
// config and a schema spec.
type ProviderFactory func(cfg *config.GeneratorConfig, spec port.SchemaSpec) (port.StructuredGenerator, error)

// registry of generator provider factories, populated explicitly via
// RegisterProvider at wiring time.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a generator provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a StructuredGenerator for the configured provider, bound to the
// given schema.
func New(cfg *config.GeneratorConfig, spec port.SchemaSpec) (port.StructuredGenerator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
	}
	return factory(cfg, spec)
}

// Builder returns a port.GeneratorBuilder closed over the provider config,
// suitable for seeding a Cache.
func Builder(cfg *config.GeneratorConfig) port.GeneratorBuilder {
	return func(spec port.SchemaSpec) (port.StructuredGenerator, error) {
		return New(cfg, spec)
	}
}
