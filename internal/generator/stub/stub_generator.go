// Package stub provides a deterministic offline generator provider used in
// development and by the claimbatch dry-run mode. Every call returns an empty
// record that satisfies the bound schema's shape for classification-style
// schemas; extraction schemas get an empty object.
package stub

import (
	"context"
	"encoding/json"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// Generator is a schema-bound no-op generator.
type Generator struct {
	spec port.SchemaSpec
}

// Factory adapts New to the generator provider registry.
func Factory(_ *config.GeneratorConfig, spec port.SchemaSpec) (port.StructuredGenerator, error) {
	return New(spec), nil
}

// New creates a stub generator bound to spec.
func New(spec port.SchemaSpec) *Generator {
	return &Generator{spec: spec}
}

// Generate returns a minimal record matching the bound schema: all-absent
// verdicts for the classification and fused schemas, an empty object
// otherwise.
func (g *Generator) Generate(_ context.Context, _ string) (json.RawMessage, error) {
	switch g.spec.Name {
	case "classification_result":
		result := make(domain.ClassificationResult, len(domain.Categories()))
		for _, cat := range domain.Categories() {
			result[cat] = domain.ClassificationVerdict{
				Present:   false,
				Rationale: "stub provider: no model configured",
			}
		}
		return json.Marshal(result)

	case "fused_claim":
		record := make(map[string]any, 2*len(domain.Categories()))
		for _, cat := range domain.Categories() {
			record[string(cat)+"_classification"] = domain.ClassificationVerdict{
				Present:   false,
				Rationale: "stub provider: no model configured",
			}
			record[string(cat)+"_data"] = nil
		}
		return json.Marshal(record)

	default:
		return json.RawMessage(`{}`), nil
	}
}
