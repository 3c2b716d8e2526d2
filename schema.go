package scoutelastic

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

const tagKey = "scout"

// SoftDeleteField is the metadata key stamped by soft-delete pushes.
const SoftDeleteField = "__soft_deleted"

// recordSchema holds parsed struct tag metadata, cached per type.
type recordSchema struct {
	typ reflect.Type

	keyIdx        int
	softDeleteIdx int // -1 if not present

	fieldMaps []fieldMapping // searchable fields
	metaMaps  []fieldMapping // metadata fields

	fieldNames []string
}

type fieldMapping struct {
	structIdx int
	name      string
}

var schemaCache sync.Map // reflect.Type -> *recordSchema

// AsSearchable wraps a plain struct as a Searchable using scout struct
// tags, for hosts without their own record contract:
//
//	`scout:"title"`               searchable field
//	`scout:"id,key"`              document key (required, exactly one)
//	`scout:"tenant,meta"`         metadata field (wins on name collision)
//	`scout:"deleted,soft_delete"` bool soft-delete state; grants the
//	                              SoftDeletable capability
//	`scout:"-"`                   skipped
//
// The wrapper declares its searchable field names, so free-text matches
// are restricted to exactly the tagged fields.
func AsSearchable(v any, typeLabel string) (Searchable, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("scoutelastic: type %T is not a struct", v)
	}

	schema, err := schemaFor(rv.Type())
	if err != nil {
		return nil, err
	}

	rec := taggedRecord{
		schema:    schema,
		value:     rv,
		typeLabel: typeLabel,
		meta:      map[string]any{},
	}
	if schema.softDeleteIdx != -1 {
		return &softDeleteRecord{taggedRecord: rec}, nil
	}
	return &rec, nil
}

func schemaFor(t reflect.Type) (*recordSchema, error) {
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*recordSchema), nil
	}
	schema, err := parseRecordSchema(t)
	if err != nil {
		return nil, err
	}
	schemaCache.Store(t, schema)
	return schema, nil
}

func parseRecordSchema(t reflect.Type) (*recordSchema, error) {
	schema := &recordSchema{typ: t, keyIdx: -1, softDeleteIdx: -1}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(schema, i, f, tag); err != nil {
			return nil, err
		}
	}

	if schema.keyIdx == -1 {
		return nil, fmt.Errorf("scoutelastic: no field with `scout:\"...,key\"` tag in %s", t)
	}
	return schema, nil
}

func applyTag(schema *recordSchema, idx int, f reflect.StructField, tag string) error {
	name, modifier, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}

	switch modifier {
	case "key":
		if schema.keyIdx != -1 {
			return fmt.Errorf("scoutelastic: duplicate key tag on field %s", f.Name)
		}
		schema.keyIdx = idx
	case "meta":
		schema.metaMaps = append(schema.metaMaps, fieldMapping{structIdx: idx, name: name})
	case "soft_delete":
		if schema.softDeleteIdx != -1 {
			return fmt.Errorf("scoutelastic: duplicate soft_delete tag on field %s", f.Name)
		}
		if f.Type.Kind() != reflect.Bool {
			return fmt.Errorf("scoutelastic: soft_delete field %s must be bool", f.Name)
		}
		schema.softDeleteIdx = idx
	case "":
		schema.fieldMaps = append(schema.fieldMaps, fieldMapping{structIdx: idx, name: name})
		schema.fieldNames = append(schema.fieldNames, name)
	default:
		return fmt.Errorf("scoutelastic: unknown modifier %q on field %s", modifier, f.Name)
	}
	return nil
}

// taggedRecord adapts a tagged struct value to the Searchable contract.
type taggedRecord struct {
	schema    *recordSchema
	value     reflect.Value
	typeLabel string
	meta      map[string]any
}

func (r *taggedRecord) SearchKey() string {
	return fmt.Sprint(r.value.Field(r.schema.keyIdx).Interface())
}

func (r *taggedRecord) SearchType() string { return r.typeLabel }

func (r *taggedRecord) SearchableFields() map[string]any {
	fields := make(map[string]any, len(r.schema.fieldMaps))
	for _, fm := range r.schema.fieldMaps {
		fields[fm.name] = r.value.Field(fm.structIdx).Interface()
	}
	return fields
}

func (r *taggedRecord) SearchMetadata() map[string]any {
	meta := make(map[string]any, len(r.schema.metaMaps)+len(r.meta))
	for _, mm := range r.schema.metaMaps {
		meta[mm.name] = r.value.Field(mm.structIdx).Interface()
	}
	for k, v := range r.meta {
		meta[k] = v
	}
	return meta
}

func (r *taggedRecord) DeclaredSearchableFields() []string {
	return r.schema.fieldNames
}

// softDeleteRecord adds the SoftDeletable capability for schemas with a
// soft_delete tagged field.
type softDeleteRecord struct {
	taggedRecord
}

func (r *softDeleteRecord) PushSoftDeleteMetadata() {
	deleted := r.value.Field(r.schema.softDeleteIdx).Bool()
	marker := 0
	if deleted {
		marker = 1
	}
	r.meta[SoftDeleteField] = marker
}
