package payload

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema names declared in the embedded submissions document.
const (
	DesignSchema       = "DesignSubmission"
	RegistrationSchema = "RegistrationSubmission"
)

//go:embed schemas/submissions.yaml
var submissionsDocument []byte

// SchemaError reports a payload that does not satisfy its declared schema.
type SchemaError struct {
	Schema string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("payload: %s does not match schema: %v", e.Schema, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Schemas validates payloads against the OpenAPI components document.
type Schemas struct {
	doc *openapi3.T
}

var (
	defaultSchemasOnce sync.Once
	defaultSchemas     *Schemas
	defaultSchemasErr  error
)

// DefaultSchemas loads the embedded document once.
func DefaultSchemas() (*Schemas, error) {
	defaultSchemasOnce.Do(func() {
		defaultSchemas, defaultSchemasErr = LoadSchemas(context.Background(), submissionsDocument)
	})
	return defaultSchemas, defaultSchemasErr
}

// LoadSchemas parses and validates an OpenAPI document holding payload
// schemas under components.schemas.
func LoadSchemas(ctx context.Context, raw []byte) (*Schemas, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("payload: load schemas: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("payload: validate schemas: %w", err)
	}
	return &Schemas{doc: doc}, nil
}

// Check serialises value and validates it against the named schema.
func (s *Schemas) Check(name string, value any) error {
	if s == nil || s.doc == nil || s.doc.Components == nil {
		return fmt.Errorf("payload: schemas not loaded")
	}
	ref, ok := s.doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("payload: unknown schema %q", name)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("payload: encode %s: %w", name, err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("payload: decode %s: %w", name, err)
	}

	if err := ref.Value.VisitJSON(generic); err != nil {
		return &SchemaError{Schema: name, Err: err}
	}
	return nil
}
