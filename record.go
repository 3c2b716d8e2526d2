package scoutelastic

// Searchable is the contract a host-framework record must expose to be
// indexed and retrieved through an Engine. The connector never persists
// or caches records; their lifetime is owned by the host.
type Searchable interface {
	// SearchKey returns the unique document identifier.
	SearchKey() string

	// SearchType returns the logical document type label.
	SearchType() string

	// SearchableFields returns the field name -> indexable value mapping.
	SearchableFields() map[string]any

	// SearchMetadata returns extra keys merged into the stored document.
	// Metadata keys win over searchable fields on collision.
	SearchMetadata() map[string]any
}

// SoftDeletable marks a record type that carries soft-delete state.
// PushSoftDeleteMetadata stamps the record's metadata with its current
// soft-delete marker before serialization.
type SoftDeletable interface {
	Searchable
	PushSoftDeleteMetadata()
}

// FieldLister marks a record type that declares an explicit list of
// searchable field names, restricting the free-text match to exactly
// those fields. Absence means the engine's default field set applies.
type FieldLister interface {
	Searchable
	DeclaredSearchableFields() []string
}

// UsesSoftDelete reports whether the record type carries the
// soft-delete capability. Pure capability test, no I/O.
func UsesSoftDelete(r Searchable) bool {
	_, ok := r.(SoftDeletable)
	return ok
}

// declaredFields returns the record type's explicit searchable field
// list, or nil when the type declares none.
func declaredFields(r Searchable) []string {
	if fl, ok := r.(FieldLister); ok {
		return fl.DeclaredSearchableFields()
	}
	return nil
}
