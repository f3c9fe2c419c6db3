// Package validation checks request bodies against JSON schemas reflected
// from the request types.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/model"
)

var _ model.Validator = (*Validator)(nil)

// Validator holds one compiled schema per request type.
type Validator struct {
	schemas map[reflect.Type]*jschema.Schema
}

// New compiles schemas for every request type of the API.
func New() (*Validator, error) {
	return NewFor(
		&RegisterRequest{},
		&LoginRequest{},
		&EditAccountRequest{},
		&CreateSalonRequest{},
		&EditSalonRequest{},
		&DeleteSalonRequest{},
	)
}

// NewFor compiles schemas for the given request types. Each value must be a
// pointer to a struct.
func NewFor(types ...any) (*Validator, error) {
	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	compiler := jschema.NewCompiler()
	compiler.AssertFormat()

	v := &Validator{schemas: make(map[reflect.Type]*jschema.Schema, len(types))}
	for _, t := range types {
		rt := reflect.TypeOf(t)
		if rt.Kind() != reflect.Pointer || rt.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("request type %T is not a pointer to struct", t)
		}

		raw, err := json.Marshal(reflector.Reflect(t))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema of %s: %w", rt.Elem().Name(), err)
		}
		doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema of %s: %w", rt.Elem().Name(), err)
		}

		url := strings.ToLower(rt.Elem().Name()) + ".json"
		if err := compiler.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema of %s: %w", rt.Elem().Name(), err)
		}
		sch, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema of %s: %w", rt.Elem().Name(), err)
		}
		v.schemas[rt] = sch
	}

	return v, nil
}

// Decode validates body against the schema of dst and unmarshals it into
// dst. Violations are returned as validation failures.
func (v *Validator) Decode(body []byte, dst any) error {
	sch, ok := v.schemas[reflect.TypeOf(dst)]
	if !ok {
		return fmt.Errorf("no schema registered for %T", dst)
	}

	inst, err := jschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return apierrors.NewValidationFailure("request body must be a JSON object")
	}

	if err := sch.Validate(inst); err != nil {
		var ve *jschema.ValidationError
		if errors.As(err, &ve) {
			return apierrors.NewValidationFailure(describe(ve))
		}
		return apierrors.NewValidationFailure(err.Error())
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apierrors.NewValidationFailure("request body does not match the expected shape")
	}

	return nil
}

// DecodeTarget reads the resource id and claimed owner from a mutation body
// without validating the rest of it.
func DecodeTarget(body []byte) (Target, error) {
	var t Target
	if err := json.Unmarshal(body, &t); err != nil {
		return Target{}, apierrors.NewValidationFailure("request body must be a JSON object")
	}
	return t, nil
}

// describe returns the first concrete violation of ve on one line.
func describe(ve *jschema.ValidationError) string {
	for _, line := range strings.Split(ve.Error(), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- at ") {
			return strings.TrimPrefix(line, "- ")
		}
	}
	return "request body is invalid"
}
