// Package normalize converts bibliographic entries into researchmap paper rows.
//
// Every column has a defined default, so each entry yields exactly one row.
// Columns that fall back to a default are reported as FieldIssues and
// logged as warnings; they never abort a batch.
package normalize

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

// DefaultMaxAuthors is how many authors are listed before "et al.".
const DefaultMaxAuthors = 5

// Logger receives structured log lines as alternating key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// FieldIssue records a column that fell back to its default.
type FieldIssue struct {
	Key   string // Entry citation key
	Field string // Source field name
	Err   error
}

func (i FieldIssue) Error() string {
	return fmt.Sprintf("%s: %s: %v", i.Key, i.Field, i.Err)
}

func (i FieldIssue) Unwrap() error {
	return i.Err
}

// Report summarizes a batch conversion.
type Report struct {
	Entries   int            `json:"entries"`
	Rows      int            `json:"rows"`
	Fallbacks map[string]int `json:"fallbacks"` // Issue count per source field
	Issues    []FieldIssue   `json:"-"`
}

// Normalizer converts entries for one subject surname.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	surname    string
	maxAuthors int
	logger     Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMaxAuthors sets the author-list truncation threshold.
// Values below 1 keep the default.
func WithMaxAuthors(n int) Option {
	return func(nz *Normalizer) {
		if n >= 1 {
			nz.maxAuthors = n
		}
	}
}

// WithLogger sets the logger used for field fallbacks.
func WithLogger(l Logger) Option {
	return func(nz *Normalizer) {
		if l != nil {
			nz.logger = l
		}
	}
}

// New creates a Normalizer for the given subject surname.
func New(surname string, opts ...Option) *Normalizer {
	nz := &Normalizer{
		surname:    surname,
		maxAuthors: DefaultMaxAuthors,
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(nz)
	}
	return nz
}

// Normalize converts one entry into a row. The returned issues list every
// column that fell back to a default because of missing or malformed data.
func (nz *Normalizer) Normalize(e reference.Entry) (Row, []FieldIssue) {
	var issues []FieldIssue
	check := func(name string, f Field) string {
		if f.Err != nil {
			issues = append(issues, FieldIssue{Key: e.Key, Field: name, Err: f.Err})
			nz.logger.Warn("field fallback", "key", e.Key, "field", name, "value", f.Value, "error", f.Err)
		}
		return f.Value
	}

	title := check("title", Title(e.Field("title")))
	authors := FormatAuthorList(e.Authors(), nz.surname, nz.maxAuthors)

	journalField := ResolveJournal(e.Field("journal"))
	if journalField.Fallback && journalField.Err == nil {
		nz.logger.Debug("journal not in abbreviation table", "key", e.Key, "journal", journalField.Value)
	}
	journal := check("journal", journalField)

	volume := check("volume", Volume(e.Field("volume")))

	startField, endField := SplitPages(e.Field("pages"))
	start := check("pages", startField)
	end := endField.Value

	year, yearOK := e.Field("year")
	month, monthOK := e.Field("month")
	date := check("date", PublicationDate(year, yearOK, month, monthOK))

	doiField, permalinkField := DOI(e.Field("doi"))
	doi := check("doi", doiField)
	permalink := permalinkField.Value

	url := check("adsurl", ADSURL(e.Field("adsurl")))

	row := Row{
		TitleEN:         title,
		TitleJA:         title,
		AuthorEN:        authors,
		AuthorJA:        authors,
		JournalEN:       journal,
		JournalJA:       journal,
		Volume:          volume,
		StartPage:       start,
		EndPage:         end,
		PublicationDate: date,
		Refereed:        1,
		Invited:         0,
		PublishingType:  0,
		DOI:             doi,
		Permalink:       permalink,
		URL:             url,
	}
	return row, issues
}

// NormalizeAll converts entries in order. With workers > 1 entries are
// converted concurrently; rows still come back in input order.
// An error is returned only if ctx is cancelled.
func (nz *Normalizer) NormalizeAll(ctx context.Context, entries []reference.Entry, workers int) ([]Row, Report, error) {
	rows := make([]Row, len(entries))
	issues := make([][]FieldIssue, len(entries))

	if workers <= 1 {
		for i, e := range entries {
			if err := ctx.Err(); err != nil {
				return nil, Report{}, err
			}
			rows[i], issues[i] = nz.Normalize(e)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range entries {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rows[i], issues[i] = nz.Normalize(entries[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, Report{}, err
		}
	}

	report := Report{
		Entries:   len(entries),
		Rows:      len(rows),
		Fallbacks: make(map[string]int),
	}
	for _, entryIssues := range issues {
		for _, issue := range entryIssues {
			report.Fallbacks[issue.Field]++
			report.Issues = append(report.Issues, issue)
		}
	}
	return rows, report, nil
}
