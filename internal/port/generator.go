package port

import (
	"context"
	"encoding/json"
)

// SchemaSpec identifies a target record schema for structured generation.
// Name is the cache identity; Document is the JSON-Schema the generated
// record must conform to.
type SchemaSpec struct {
	Name     string
	Document json.RawMessage
}

// StructuredGenerator turns an unstructured text payload into a record
// conforming to the schema the generator was constructed for. Implementations
// wrap one model provider and are bound to a single schema; they are safe for
// concurrent use. Timeouts, upstream errors, and schema violations all
// surface as a plain error — callers must not inspect provider detail.
type StructuredGenerator interface {
	Generate(ctx context.Context, prompt string) (json.RawMessage, error)
}

// GeneratorBuilder constructs a StructuredGenerator bound to a schema.
// Construction is expensive relative to invocation; the generator cache
// ensures it runs at most once per schema for the process lifetime.
type GeneratorBuilder func(spec SchemaSpec) (StructuredGenerator, error)

// GeneratorSource yields the shared, schema-bound generator for a spec.
// Implementations reuse one generator per schema across calls and requests.
type GeneratorSource interface {
	For(spec SchemaSpec) (StructuredGenerator, error)
}
