package csvimport

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ColumnMapping maps supplier CSV columns to arrival fields by index.
// A negative index means the column is absent from this supplier's
// export format.
type ColumnMapping struct {
	ItemName  int `json:"item_name_col"`
	Variety   int `json:"variety_col"`
	Quantity  int `json:"quantity_col"`
	UnitPrice int `json:"unit_price_col"`
}

// DefaultColumnMapping matches the most common market export layout:
// item name first, quantity second, no variety or price columns.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{ItemName: 0, Variety: -1, Quantity: 1, UnitPrice: -1}
}

// ArrivalRow is one parsed arrival candidate from a supplier CSV.
type ArrivalRow struct {
	LineNumber int              `json:"line_number"`
	Raw        []string         `json:"raw"`
	ItemName   string           `json:"item_name"`
	Variety    string           `json:"variety"`
	Quantity   int              `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
}

// ParseResult carries parsed rows plus the rows that were skipped.
type ParseResult struct {
	Rows     []ArrivalRow `json:"rows"`
	Skipped  int          `json:"skipped"`
	Errors   []RowError   `json:"errors"`
	RowCount int          `json:"row_count"`
}

// Parser reads supplier arrival CSVs. Input must already be UTF-8; run
// raw uploads through DecodeToUTF8 first.
type Parser struct {
	delimiter  rune
	skipHeader int
	mapping    ColumnMapping
}

// ParserOption is a functional option for Parser configuration
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) { p.delimiter = d }
}

// WithSkipHeader sets how many leading rows to ignore (default 1)
func WithSkipHeader(n int) ParserOption {
	return func(p *Parser) { p.skipHeader = n }
}

// WithMapping sets the column mapping
func WithMapping(m ColumnMapping) ParserOption {
	return func(p *Parser) { p.mapping = m }
}

// NewParser creates a parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		delimiter:  ',',
		skipHeader: 1,
		mapping:    DefaultColumnMapping(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads every data row, applying the skip rules: rows with a
// blank item name or a non-positive quantity are counted as skipped,
// not treated as errors.
func (p *Parser) Parse(data []byte) (*ParseResult, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	result := &ParseResult{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, NewRowError(line, "", err.Error()))
			result.Skipped++
			continue
		}
		if line <= p.skipHeader {
			continue
		}
		result.RowCount++

		row, ok := p.parseRow(line, record)
		if !ok {
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	if result.RowCount == 0 {
		return result, ErrNoDataRows
	}
	return result, nil
}

// RawRows returns up to limit raw data rows after the header skip,
// exactly as they appear in the file. Used for mapping previews.
func (p *Parser) RawRows(data []byte, limit int) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	line := 0
	for len(rows) < limit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line <= p.skipHeader {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// Headers returns the first row of the file, for mapping previews.
func (p *Parser) Headers(data []byte) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (p *Parser) parseRow(line int, record []string) (ArrivalRow, bool) {
	row := ArrivalRow{LineNumber: line, Raw: record}

	row.ItemName = strings.TrimSpace(field(record, p.mapping.ItemName))
	if row.ItemName == "" {
		return row, false
	}
	if p.mapping.Variety >= 0 {
		row.Variety = strings.TrimSpace(field(record, p.mapping.Variety))
	}

	row.Quantity = parseQuantity(field(record, p.mapping.Quantity))
	if row.Quantity <= 0 {
		return row, false
	}

	if p.mapping.UnitPrice >= 0 {
		row.UnitPrice = parsePrice(field(record, p.mapping.UnitPrice))
	}
	return row, true
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// parseQuantity accepts thousands separators and decimal notation;
// "1,200" and "12.0" both parse. Unparseable values collapse to 0.
func parseQuantity(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// parsePrice strips yen marks and separators; nil when absent or junk.
func parsePrice(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "¥", "")
	s = strings.ReplaceAll(s, "￥", "")
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
