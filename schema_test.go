package scoutelastic

import (
	"reflect"
	"sort"
	"testing"
)

type taggedProduct struct {
	ID          string  `scout:"id,key"`
	Title       string  `scout:"title"`
	Description string  `scout:"description"`
	Tenant      string  `scout:"tenant,meta"`
	Deleted     bool    `scout:"deleted,soft_delete"`
	Internal    string  `scout:"-"`
	Price       float64 `scout:"price"`
}

func TestAsSearchable_Contract(t *testing.T) {
	p := taggedProduct{
		ID:          "42",
		Title:       "widget",
		Description: "a fine widget",
		Tenant:      "acme",
		Internal:    "hidden",
		Price:       9.99,
	}

	rec, err := AsSearchable(&p, "product")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.SearchKey() != "42" {
		t.Errorf("expected key 42, got %q", rec.SearchKey())
	}
	if rec.SearchType() != "product" {
		t.Errorf("expected type product, got %q", rec.SearchType())
	}

	fields := rec.SearchableFields()
	want := map[string]any{"title": "widget", "description": "a fine widget", "price": 9.99}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("unexpected fields: %v", fields)
	}
	if _, ok := fields["Internal"]; ok {
		t.Error("skipped field must not be indexed")
	}

	meta := rec.SearchMetadata()
	if meta["tenant"] != "acme" {
		t.Errorf("expected tenant metadata, got %v", meta)
	}
}

func TestAsSearchable_DeclaresFieldList(t *testing.T) {
	rec, err := AsSearchable(taggedProduct{ID: "1"}, "product")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fl, ok := rec.(FieldLister)
	if !ok {
		t.Fatal("tagged record must declare its searchable fields")
	}
	got := append([]string(nil), fl.DeclaredSearchableFields()...)
	sort.Strings(got)
	want := []string{"description", "price", "title"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAsSearchable_SoftDeleteCapability(t *testing.T) {
	rec, err := AsSearchable(taggedProduct{ID: "1", Deleted: true}, "product")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sd, ok := rec.(SoftDeletable)
	if !ok {
		t.Fatal("soft_delete tag must grant the SoftDeletable capability")
	}

	sd.PushSoftDeleteMetadata()
	if rec.SearchMetadata()[SoftDeleteField] != 1 {
		t.Errorf("expected %s=1 after push, got %v", SoftDeleteField, rec.SearchMetadata())
	}
}

func TestAsSearchable_SoftDeleteMarkerZero(t *testing.T) {
	rec, _ := AsSearchable(taggedProduct{ID: "1", Deleted: false}, "product")

	rec.(SoftDeletable).PushSoftDeleteMetadata()
	if rec.SearchMetadata()[SoftDeleteField] != 0 {
		t.Errorf("expected %s=0 for a live record, got %v", SoftDeleteField, rec.SearchMetadata())
	}
}

func TestAsSearchable_NoSoftDeleteNoCapability(t *testing.T) {
	type plain struct {
		ID    string `scout:"id,key"`
		Title string `scout:"title"`
	}

	rec, err := AsSearchable(plain{ID: "1"}, "note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if UsesSoftDelete(rec) {
		t.Error("record without soft_delete tag must not be SoftDeletable")
	}
}

func TestAsSearchable_KeyRequired(t *testing.T) {
	type keyless struct {
		Title string `scout:"title"`
	}

	if _, err := AsSearchable(keyless{}, "note"); err == nil {
		t.Fatal("expected error for a schema without a key field")
	}
}

func TestAsSearchable_SoftDeleteMustBeBool(t *testing.T) {
	type badFlag struct {
		ID      string `scout:"id,key"`
		Deleted string `scout:"deleted,soft_delete"`
	}

	if _, err := AsSearchable(badFlag{}, "note"); err == nil {
		t.Fatal("expected error for non-bool soft_delete field")
	}
}

func TestAsSearchable_NotAStruct(t *testing.T) {
	if _, err := AsSearchable("just a string", "note"); err == nil {
		t.Fatal("expected error for non-struct value")
	}
}
