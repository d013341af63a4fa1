package reference

import "strings"

// Person is one author or editor name.
type Person struct {
	First   []string `json:"first,omitempty"`   // Given-name tokens, in order
	Prelast string   `json:"prelast,omitempty"` // "von" part
	Last    string   `json:"last"`              // Family name
	Lineage string   `json:"lineage,omitempty"` // "Jr." part
}

// String renders the person in "von Last, Jr, First" form.
func (p Person) String() string {
	last := p.Last
	if p.Prelast != "" {
		last = p.Prelast + " " + last
	}
	parts := []string{last}
	if p.Lineage != "" {
		parts = append(parts, p.Lineage)
	}
	if len(p.First) > 0 {
		parts = append(parts, strings.Join(p.First, " "))
	}
	return strings.Join(parts, ", ")
}
