package normalize

import (
	"strings"
	"testing"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

func persons(lasts ...string) []reference.Person {
	ps := make([]reference.Person, len(lasts))
	for i, last := range lasts {
		ps[i] = reference.Person{Last: last, First: []string{strings.ToLower(last[:1]) + "."}}
	}
	return ps
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		name string
		p    reference.Person
		want string
	}{
		{"initial from first token", reference.Person{Last: "Enoto", First: []string{"Teruaki"}}, "Enoto T."},
		{"lower-case initial is capitalized", reference.Person{Last: "Enoto", First: []string{"teruaki"}}, "Enoto T."},
		{"only first token used", reference.Person{Last: "Smith", First: []string{"J.", "A."}}, "Smith J."},
		{"no given name", reference.Person{Last: "Collaboration"}, "Collaboration"},
		{"braces stripped from last name", reference.Person{Last: "{Fermi-LAT}", First: []string{"X."}}, "Fermi-LAT X."},
		{"braced given name", reference.Person{Last: "Ozel", First: []string{"{F}eryal"}}, "Ozel F."},
		{"empty given token", reference.Person{Last: "Doe", First: []string{"{}"}}, "Doe"},
		{"non-ascii initial", reference.Person{Last: "Ozel", First: []string{"ému"}}, "Ozel É."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatName(tt.p); got != tt.want {
				t.Errorf("FormatName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthorOrder(t *testing.T) {
	ps := persons("Smith", "Enoto", "Jones", "Enoto")

	if got, ok := AuthorOrder(ps, "Enoto"); !ok || got != 2 {
		t.Errorf("AuthorOrder(Enoto) = %d, %v, want 2, true", got, ok)
	}
	if got, ok := AuthorOrder(ps, "Eno"); !ok || got != 2 {
		t.Errorf("AuthorOrder(Eno) substring = %d, %v, want 2, true", got, ok)
	}
	if _, ok := AuthorOrder(ps, "Nobody"); ok {
		t.Error("AuthorOrder(Nobody) found a match")
	}
	if _, ok := AuthorOrder(ps, ""); ok {
		t.Error("AuthorOrder with empty surname found a match")
	}
	if _, ok := AuthorOrder(nil, "Enoto"); ok {
		t.Error("AuthorOrder on empty list found a match")
	}
}

func TestFormatAuthorList(t *testing.T) {
	seven := persons("Aa", "Bb", "Cc", "Dd", "Ee", "Enoto", "Gg")

	tests := []struct {
		name    string
		persons []reference.Person
		surname string
		max     int
		want    string
	}{
		{
			name:    "no authors",
			persons: nil,
			surname: "Enoto",
			max:     5,
			want:    "",
		},
		{
			name:    "single author",
			persons: persons("Enoto"),
			surname: "Enoto",
			max:     5,
			want:    "and Enoto E., ",
		},
		{
			name:    "three authors keep trailing comma",
			persons: persons("Aa", "Bb", "Cc"),
			surname: "Enoto",
			max:     5,
			want:    "Aa A., Bb B., and Cc C., ",
		},
		{
			name:    "exactly max authors",
			persons: persons("Aa", "Bb", "Cc", "Dd", "Ee"),
			surname: "Ee",
			max:     5,
			want:    "Aa A., Bb B., Cc C., Dd D., and Ee E., ",
		},
		{
			name:    "truncated with subject listed",
			persons: seven,
			surname: "Bb",
			max:     5,
			want:    "Aa A., Bb B., Cc C., Dd D., and Ee E. et al., ",
		},
		{
			name:    "truncated with subject cut off",
			persons: seven,
			surname: "Enoto",
			max:     5,
			want:    "Aa A., Bb B., Cc C., Dd D., and Ee E. et al., (Enoto E. as 6-th author out of 7 authors),",
		},
		{
			name:    "subject not found",
			persons: seven,
			surname: "Nobody",
			max:     5,
			want:    "Aa A., Bb B., Cc C., Dd D., and Ee E. et al., ",
		},
		{
			name:    "max of one",
			persons: persons("Aa", "Enoto"),
			surname: "Enoto",
			max:     1,
			want:    "and Aa A. et al., (Enoto E. as 2-th author out of 2 authors),",
		},
		{
			name:    "non-positive max uses default",
			persons: seven,
			surname: "Enoto",
			max:     0,
			want:    "Aa A., Bb B., Cc C., Dd D., and Ee E. et al., (Enoto E. as 6-th author out of 7 authors),",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAuthorList(tt.persons, tt.surname, tt.max); got != tt.want {
				t.Errorf("FormatAuthorList() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}
