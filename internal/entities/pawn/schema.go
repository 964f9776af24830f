package pawn

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
)

// SchemaURL identifies the embedded pawn document schema
const SchemaURL = "https://schemas.massaffect.dev/pawn.schema.json"

//go:embed pawn.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Schema returns the compiled JSON schema for pawn documents
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(SchemaURL, schemaSource)
		if schemaErr != nil {
			schemaErr = errors.Wrap(schemaErr, "failed to compile pawn schema")
		}
	})
	return schema, schemaErr
}

// Decode checks a JSON pawn document against the schema and decodes it.
// Structural problems come back as InvalidArgument with the schema path.
func Decode(raw []byte) (*Pawn, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "pawn document is not valid json")
	}
	if err := s.Validate(doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "pawn document does not match schema")
	}

	p := &Pawn{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode pawn document")
	}

	return p, nil
}
