// Package reference defines the core domain types for bibliographic entries.
package reference

// Person roles used as keys in Entry.Persons.
const (
	RoleAuthor = "author"
	RoleEditor = "editor"
)

// Entry is one bibliographic record (one paper) as read from a .bbl file.
type Entry struct {
	Key  string `json:"key"`  // Citation key
	Type string `json:"type"` // Lower-cased entry type: article, inproceedings, ...

	// Fields maps lower-cased field names (title, journal, volume, pages,
	// year, month, doi, adsurl, ...) to their decoded text. Inner grouping
	// braces are preserved; only the outer delimiters are removed.
	Fields map[string]string `json:"fields"`

	// Persons holds name lists by role, in source order.
	Persons map[string][]Person `json:"persons,omitempty"`
}

// Field returns the named field and whether it is present.
func (e Entry) Field(name string) (string, bool) {
	v, ok := e.Fields[name]
	return v, ok
}

// Authors returns the persons listed under the author role.
func (e Entry) Authors() []Person {
	return e.Persons[RoleAuthor]
}

// WithField returns a copy of e with name set to value.
// The receiver's maps are never written.
func (e Entry) WithField(name, value string) Entry {
	fields := make(map[string]string, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[name] = value
	e.Fields = fields
	return e
}
