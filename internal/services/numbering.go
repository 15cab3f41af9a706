package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diewo77/go-cotizaciones/internal/models"
)

// NumberPrefix starts every quotation number.
const NumberPrefix = "COT-"

// Numbering selects how the next quotation number is derived.
type Numbering string

const (
	// NumberingCount counts the year's existing numbers and adds one. It can
	// hand out a number twice once a quotation has been deleted.
	NumberingCount Numbering = "count"
	// NumberingMax takes the highest sequence used in the year and adds one.
	NumberingMax Numbering = "max"
)

// ParseNumbering maps a configuration value to a strategy, defaulting to count.
func ParseNumbering(s string) Numbering {
	if Numbering(strings.ToLower(s)) == NumberingMax {
		return NumberingMax
	}
	return NumberingCount
}

// Next returns the number for a new quotation in year.
func (n Numbering) Next(existing []models.Quotation, year int) string {
	if n == NumberingMax {
		return GenerateNumberMax(existing, year)
	}
	return GenerateNumber(existing, year)
}

// GenerateNumber returns COT-<year>-NNNN where NNNN is one more than the
// number of quotations whose numero starts with COT-<year>.
func GenerateNumber(existing []models.Quotation, year int) string {
	prefix := fmt.Sprintf("%s%d", NumberPrefix, year)
	count := 0
	for _, q := range existing {
		if strings.HasPrefix(q.Number, prefix) {
			count++
		}
	}
	return formatNumber(year, count+1)
}

// GenerateNumberMax returns COT-<year>-NNNN with NNNN one above the largest
// sequence already issued for the year, so deletions never cause reuse.
func GenerateNumberMax(existing []models.Quotation, year int) string {
	prefix := fmt.Sprintf("%s%d-", NumberPrefix, year)
	highest := 0
	for _, q := range existing {
		rest, ok := strings.CutPrefix(q.Number, prefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return formatNumber(year, highest+1)
}

func formatNumber(year, seq int) string {
	return fmt.Sprintf("%s%d-%04d", NumberPrefix, year, seq)
}
