package b3

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

// Required columns of the B3 "Negociação" export. Header matching is
// case-insensitive and accent-folded, so "Data do Negocio" is accepted.
var requiredColumns = []string{
	"DATA DO NEGOCIO",
	"TIPO DE MOVIMENTACAO",
	"MERCADO",
	"INSTITUICAO",
	"CODIGO DE NEGOCIACAO",
	"QUANTIDADE",
	"PRECO",
	"VALOR",
}

// Row is one trade record from a B3 statement, with columns already typed.
// MovementType is canonical (BUY/SELL) and the ticker is raw: normalization
// against the market label happens in the import pipeline.
type Row struct {
	TradeDate    time.Time
	MovementType string
	Market       string
	Institution  string
	Ticker       string
	Quantity     int64
	Price        float64
	Value        float64
}

// Statement is a parsed B3 trade export.
type Statement struct {
	Rows []Row
}

// ParseStatement reads a B3 "Negociação" CSV export. It validates the header
// before touching any row and fails on the first malformed row, naming its
// index.
func ParseStatement(r io.Reader) (*Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}

	records, err := parseCSV(data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.ErrEmptyStatement
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	if len(records) == 1 {
		return nil, apperrors.ErrEmptyStatement
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", apperrors.ErrMalformedRow, i+1, err)
		}
		rows = append(rows, row)
	}

	return &Statement{Rows: rows}, nil
}

// parseCSV decodes with the export's semicolon delimiter, falling back to
// comma for files that were re-saved by a spreadsheet program.
func parseCSV(data []byte) ([][]string, error) {
	for _, comma := range []rune{';', ','} {
		reader := csv.NewReader(strings.NewReader(string(data)))
		reader.Comma = comma
		reader.TrimLeadingSpace = true
		records, err := reader.ReadAll()
		if err != nil {
			continue
		}
		if len(records) > 0 && len(records[0]) > 1 {
			return records, nil
		}
		if len(records) > 0 && comma == ',' {
			// Single-column file: let header validation report what is missing.
			return records, nil
		}
	}
	return nil, apperrors.ErrEmptyStatement
}

// headerIndex maps each required column to its position, failing fast with
// the full list of missing columns.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		folded := foldAccents.Replace(strings.ToUpper(strings.TrimSpace(name)))
		index[folded] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(record []string, index map[string]int) (Row, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	tradeDate, err := parseDate(field("DATA DO NEGOCIO"))
	if err != nil {
		return Row{}, err
	}

	movement, err := parseMovement(field("TIPO DE MOVIMENTACAO"))
	if err != nil {
		return Row{}, err
	}

	quantity, err := parseQuantity(field("QUANTIDADE"))
	if err != nil {
		return Row{}, err
	}

	price, err := parseDecimal(field("PRECO"))
	if err != nil {
		return Row{}, fmt.Errorf("invalid price: %w", err)
	}
	if price <= 0 {
		return Row{}, fmt.Errorf("invalid price: must be positive, got %s", field("PRECO"))
	}

	value, err := parseDecimal(field("VALOR"))
	if err != nil {
		return Row{}, fmt.Errorf("invalid value: %w", err)
	}

	return Row{
		TradeDate:    tradeDate,
		MovementType: movement,
		Market:       field("MERCADO"),
		Institution:  field("INSTITUICAO"),
		Ticker:       field("CODIGO DE NEGOCIACAO"),
		Quantity:     quantity,
		Price:        price,
		Value:        value,
	}, nil
}

// parseDate accepts the export's DD/MM/YYYY format plus ISO dates from
// re-exported files.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid trade date %q", s)
}

func parseMovement(s string) (string, error) {
	switch foldAccents.Replace(strings.ToUpper(s)) {
	case "COMPRA", "BUY":
		return model.MovementBuy, nil
	case "VENDA", "SELL":
		return model.MovementSell, nil
	}
	return "", fmt.Errorf("invalid movement type %q", s)
}

func parseQuantity(s string) (int64, error) {
	// Statements occasionally format quantities as decimals ("100,0").
	v, err := parseDecimal(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity: %w", err)
	}
	q := int64(v)
	if q <= 0 {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return q, nil
}

// parseDecimal handles Brazilian number formatting: an optional "R$" prefix,
// "." as thousands separator and "," as decimal mark.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" || s == "-" {
		return 0, fmt.Errorf("empty number")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
