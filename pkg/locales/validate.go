package locales

import (
	"context"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	TypeObject = "object"
	TypeString = "string"
)

// Schema is the subset of JSON schema the bundles are checked against
type Schema struct {
	Type                 string             `json:"type"`
	Required             []string           `json:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
	MinLength            *int               `json:"minLength,omitempty"`
}

// Problem is a single validation failure
type Problem struct {
	Path    string
	Message string
}

func (p *Problem) Error() string {
	return p.Path + ": " + p.Message
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Schema loads schema.json from the store
func (s *Store) Schema(ctx context.Context) (*Schema, error) {
	data, err := s.storage.Read(ctx, SchemaKey)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSchemaNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read schema")
	}
	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, errors.Wrap(err, "failed to decode schema")
	}
	return &schema, nil
}

// Validate checks every given locale, RequiredLocales if none, against the
// stored schema. All problems are returned combined; use multierr.Errors to
// split them.
func (s *Store) Validate(ctx context.Context, locales ...string) error {
	schema, err := s.Schema(ctx)
	if err != nil {
		return err
	}
	if len(locales) == 0 {
		locales = RequiredLocales
	}

	var errs error
	for _, locale := range locales {
		name := locale + BundleSuffix
		data, err := s.storage.Read(ctx, name)
		if errors.Is(err, os.ErrNotExist) {
			errs = multierr.Append(errs, &Problem{Path: name, Message: "file not found"})
			continue
		} else if err != nil {
			return errors.Wrapf(err, "failed to read %s", name)
		}

		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			errs = multierr.Append(errs, &Problem{Path: name, Message: fmt.Sprintf("invalid JSON (%s)", err)})
			continue
		}
		errs = multierr.Append(errs, ValidateValue(value, schema, name))
	}
	return errs
}

// ValidateValue checks a decoded JSON value against schema. Paths start with
// root and extend by "." and the property name.
func ValidateValue(value any, schema *Schema, root string) error {
	var errs error
	validateNode(value, schema, root, &errs)
	return errs
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func validateNode(value any, schema *Schema, path string, errs *error) {
	add := func(p, format string, args ...any) {
		*errs = multierr.Append(*errs, &Problem{Path: p, Message: fmt.Sprintf(format, args...)})
	}

	if schema == nil {
		schema = &Schema{}
	}

	switch schema.Type {
	case TypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			add(path, "expected object, got %s", typeName(value))
			return
		}

		required := append([]string(nil), schema.Required...)
		sort.Strings(required)
		for i, key := range required {
			if i > 0 && required[i-1] == key {
				continue
			}
			if _, ok := obj[key]; !ok {
				add(path+"."+key, "missing required key")
			}
		}

		if schema.AdditionalProperties != nil && !*schema.AdditionalProperties {
			for _, key := range sortedKeys(obj) {
				if _, ok := schema.Properties[key]; !ok {
					add(path+"."+key, "unexpected key")
				}
			}
		}

		for _, key := range sortedKeys(schema.Properties) {
			if v, ok := obj[key]; ok {
				validateNode(v, schema.Properties[key], path+"."+key, errs)
			}
		}
	case TypeString:
		str, ok := value.(string)
		if !ok {
			add(path, "expected string, got %s", typeName(value))
			return
		}
		if schema.MinLength != nil && utf8.RuneCountInString(str) < *schema.MinLength {
			add(path, "string length must be >= %d", *schema.MinLength)
		}
	default:
		add(path, "unsupported schema type '%s'", schema.Type)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
