package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
)

const csvRowsPerPage = 20

// CSVParser handles CSV files. Every batch of data rows is one page headed
// by a "Rows a-b" line, with row numbers counted from the header as row 1.
type CSVParser struct{}

func (p *CSVParser) Extract(r io.Reader, filename string) ([]doctree.Page, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", filename, err)
	}
	if len(records) == 0 {
		return []doctree.Page{{Number: 1}}, nil
	}

	headers := records[0]
	dataRows := records[1:]
	if len(dataRows) == 0 {
		return []doctree.Page{{Number: 1, Text: strings.Join(headers, ", ")}}, nil
	}

	var pages []doctree.Page
	for i := 0; i < len(dataRows); i += csvRowsPerPage {
		end := min(i+csvRowsPerPage, len(dataRows))

		var text strings.Builder
		fmt.Fprintf(&text, "Rows %d-%d\n", i+2, end+1)
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}
		pages = append(pages, doctree.Page{Number: len(pages) + 1, Text: text.String()})
	}
	return pages, nil
}
