package normalize

import (
	"fmt"
	"strconv"
)

// NumColumns is the fixed width of the researchmap paper table.
const NumColumns = 24

var header = [NumColumns]string{
	"Title(English)", "Title(Japanese)",
	"Author(English)", "Author(Japanese)",
	"Journal(English)", "Journal(Japanese)",
	"Volume", "Number", "Starting page", "Ending page", "Publication date",
	"Refereed paper", "Invited paper", "Language", "Publishing type",
	"ISSN",
	"ID:DOI", "ID:JGlobalID", "ID:NAID", "ID:PMID",
	"Permalink", "URL",
	"Description(English)", "Description(Japanese)",
}

// Header returns the column names in output order.
func Header() []string {
	h := header
	return h[:]
}

// Row is one output record. English and Japanese columns always carry the
// same text.
type Row struct {
	TitleEN         string
	TitleJA         string
	AuthorEN        string
	AuthorJA        string
	JournalEN       string
	JournalJA       string
	Volume          string
	Number          string
	StartPage       string
	EndPage         string
	PublicationDate string
	Refereed        int
	Invited         int
	Language        string
	PublishingType  int
	ISSN            string
	DOI             string
	JGlobalID       string
	NAID            string
	PMID            string
	Permalink       string
	URL             string
	DescriptionEN   string
	DescriptionJA   string
}

// Values returns the columns in header order. Flag columns are ints.
func (r Row) Values() []any {
	return []any{
		r.TitleEN, r.TitleJA,
		r.AuthorEN, r.AuthorJA,
		r.JournalEN, r.JournalJA,
		r.Volume, r.Number, r.StartPage, r.EndPage, r.PublicationDate,
		r.Refereed, r.Invited, r.Language, r.PublishingType,
		r.ISSN,
		r.DOI, r.JGlobalID, r.NAID, r.PMID,
		r.Permalink, r.URL,
		r.DescriptionEN, r.DescriptionJA,
	}
}

// Record returns the columns in header order as strings.
func (r Row) Record() []string {
	values := r.Values()
	record := make([]string, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case string:
			record[i] = v
		case int:
			record[i] = strconv.Itoa(v)
		}
	}
	return record
}

// RowFromRecord rebuilds a Row from a 24-string record.
func RowFromRecord(record []string) (Row, error) {
	if len(record) != NumColumns {
		return Row{}, fmt.Errorf("record has %d columns, want %d", len(record), NumColumns)
	}
	ints := make(map[int]int, 3)
	for _, i := range []int{11, 12, 14} {
		n, err := strconv.Atoi(record[i])
		if err != nil {
			return Row{}, fmt.Errorf("column %q: %w", header[i], err)
		}
		ints[i] = n
	}
	return Row{
		TitleEN: record[0], TitleJA: record[1],
		AuthorEN: record[2], AuthorJA: record[3],
		JournalEN: record[4], JournalJA: record[5],
		Volume: record[6], Number: record[7],
		StartPage: record[8], EndPage: record[9],
		PublicationDate: record[10],
		Refereed:        ints[11],
		Invited:         ints[12],
		Language:        record[13],
		PublishingType:  ints[14],
		ISSN:            record[15],
		DOI:             record[16], JGlobalID: record[17], NAID: record[18], PMID: record[19],
		Permalink: record[20], URL: record[21],
		DescriptionEN: record[22], DescriptionJA: record[23],
	}, nil
}
