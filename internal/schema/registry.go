// Package schema holds the fixed mapping from document category to its
// extraction schema and prompt template. The mapping is checked exhaustively
// at package init: adding a category without registering its schema is a
// startup failure, not a runtime surprise.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// Definition pairs a schema spec with the prompt builder that targets it.
type Definition struct {
	Spec   port.SchemaSpec
	Prompt func(content string) string
}

var (
	classificationDef Definition
	fusedClaimDef     Definition
	extractionDefs    map[domain.Category]Definition
)

func init() {
	classificationDef = Definition{
		Spec:   mustSpec("classification_result", classificationSchema()),
		Prompt: BuildClassificationPrompt,
	}
	fusedClaimDef = Definition{
		Spec:   mustSpec("fused_claim", fusedClaimSchema()),
		Prompt: BuildFusedClaimPrompt,
	}

	builders := map[domain.Category]map[string]any{
		domain.CategoryBill:             billSchema(),
		domain.CategoryDischargeSummary: dischargeSummarySchema(),
		domain.CategoryIDCard:           idCardSchema(),
		domain.CategoryPharmacyBill:     pharmacyBillSchema(),
		domain.CategoryClaimForm:        claimFormSchema(),
	}

	extractionDefs = make(map[domain.Category]Definition, len(builders))
	for cat, doc := range builders {
		c := cat
		extractionDefs[c] = Definition{
			Spec: mustSpec(specNameFor(c), doc),
			Prompt: func(content string) string {
				return BuildExtractionPrompt(c, content)
			},
		}
	}

	// Exhaustiveness: every category must have a registered definition.
	for _, cat := range domain.Categories() {
		if _, ok := extractionDefs[cat]; !ok {
			panic(fmt.Sprintf("schema: no extraction definition registered for category %s", cat))
		}
	}
}

func specNameFor(cat domain.Category) string {
	switch cat {
	case domain.CategoryBill:
		return "bill_extraction"
	case domain.CategoryDischargeSummary:
		return "discharge_summary_extraction"
	case domain.CategoryIDCard:
		return "id_card_extraction"
	case domain.CategoryPharmacyBill:
		return "pharmacy_bill_extraction"
	case domain.CategoryClaimForm:
		return "claim_form_extraction"
	}
	panic(fmt.Sprintf("schema: unknown category %s", cat))
}

// mustSpec marshals and compiles a schema document, panicking on any defect.
// Schemas are static; a compile failure is a programming error.
func mustSpec(name string, doc map[string]any) port.SchemaSpec {
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("schema: marshaling %s: %v", name, err))
	}
	if _, err := Compile(port.SchemaSpec{Name: name, Document: raw}); err != nil {
		panic(fmt.Sprintf("schema: compiling %s: %v", name, err))
	}
	return port.SchemaSpec{Name: name, Document: raw}
}

// Compile compiles a schema spec for validation of generated records.
func Compile(spec port.SchemaSpec) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	resource := spec.Name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(spec.Document)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", spec.Name, err)
	}
	return compiled, nil
}

// Check recompiles every registered schema. Used by the readiness probe.
func Check() error {
	specs := []port.SchemaSpec{classificationDef.Spec, fusedClaimDef.Spec}
	for _, def := range extractionDefs {
		specs = append(specs, def.Spec)
	}
	for _, spec := range specs {
		if _, err := Compile(spec); err != nil {
			return err
		}
	}
	return nil
}

// Classification returns the definition for the classification call.
func Classification() Definition {
	return classificationDef
}

// FusedClaim returns the definition for the single-call fast path.
func FusedClaim() Definition {
	return fusedClaimDef
}

// ForCategory returns the extraction definition registered for cat.
// Unknown categories are rejected; callers derive categories from
// domain.Categories(), so an error here indicates a programming error.
func ForCategory(cat domain.Category) (Definition, error) {
	def, ok := extractionDefs[cat]
	if !ok {
		return Definition{}, fmt.Errorf("no extraction schema registered for category %s", cat)
	}
	return def, nil
}
