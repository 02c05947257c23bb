// Package importer turns delimited transaction files into typed rows.
//
// The expected layout is one header line followed by rows of
//
//	title,type,value,category
//
// Rows that cannot describe a transaction are dropped, not reported as errors.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	fieldTitle = iota
	fieldType
	fieldValue
	fieldCategory
)

// Row is one accepted line of an import file
type Row struct {
	Line          int
	Title         string
	Type          domain.TransactionType
	Value         decimal.Decimal
	CategoryTitle string
}

// Result holds the accepted rows in file order
type Result struct {
	Rows []Row
	// CategoryTitles has one entry per accepted row, duplicates included.
	CategoryTitles []string
	Skipped        int
}

// DistinctCategoryTitles returns the category titles in first-seen order
func (r *Result) DistinctCategoryTitles() []string {
	seen := make(map[string]struct{}, len(r.CategoryTitles))
	titles := make([]string, 0, len(r.CategoryTitles))
	for _, title := range r.CategoryTitles {
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

// ParseCSV reads a comma separated import file. The first record is a header and is skipped.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	result := &Result{}

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		row, ok := parseRecord(record)
		if !ok {
			result.Skipped++
			continue
		}
		row.Line = line

		result.Rows = append(result.Rows, row)
		result.CategoryTitles = append(result.CategoryTitles, row.CategoryTitle)
	}

	return result, nil
}

func parseRecord(record []string) (Row, bool) {
	title := field(record, fieldTitle)
	txType := domain.TransactionType(field(record, fieldType))
	rawValue := field(record, fieldValue)

	if !txType.IsValid() {
		return Row{}, false
	}
	if title == "" || rawValue == "" {
		return Row{}, false
	}

	value, ok := leadingInteger(rawValue)
	if !ok || domain.CheckValue(value) != nil {
		return Row{}, false
	}

	return Row{
		Title:         title,
		Type:          txType,
		Value:         value,
		CategoryTitle: field(record, fieldCategory),
	}, true
}

// leadingInteger reads an optionally signed run of decimal digits from the start
// of s and ignores whatever follows, so "1200.50" is 1200 and "12abc" is 12
func leadingInteger(s string) (decimal.Decimal, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return decimal.Decimal{}, false
	}

	value, err := decimal.NewFromString(strings.TrimPrefix(s[:end], "+"))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
