package amfi

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/finsightapp/market-data-backend/internal/model"
)

// separator delimits fields on data records; header lines contain none.
const separator = ";"

// navUnavailable is the literal AMFI publishes for schemes without a NAV.
const navUnavailable = "N.A."

// lineKind classifies a raw report line. Header lines carry no separator;
// whether one names a fund house or a category depends on parser state.
type lineKind int

const (
	lineBlank lineKind = iota
	lineHeader
	lineRecord
	lineMalformed
)

// classifyLine reports how a single report line should be treated. Data
// records have at least 6 separator-delimited fields: scheme code, two ISIN
// fields, scheme name, NAV value, NAV date.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return lineBlank
	}
	if !strings.Contains(trimmed, separator) {
		return lineHeader
	}
	if len(strings.Split(trimmed, separator)) >= 6 {
		return lineRecord
	}
	return lineMalformed
}

// parseState tracks the implicit grouping of the report. Header lines are
// fund houses or categories depending on what was seen last: the first
// header of a block names the fund house, a header directly after it names
// the category, and any header after a data record opens a new block.
type parseState int

const (
	stateStart parseState = iota
	stateFundHouse
	stateCategory
	stateRecord
)

// Result is the outcome of one full parse of the report.
type Result struct {
	// Records in file order, at most one per scheme code. A code repeated
	// later in the file overwrites the earlier record in place.
	Records []model.NavRecord
	// Skipped counts malformed lines and records without a usable NAV.
	Skipped int
}

// Parse processes the report in a single pass, attributing every data record
// to the fund-house and category headers that most recently preceded it.
// Individual bad lines are counted and skipped; only a read failure aborts
// the parse.
func Parse(r io.Reader) (Result, error) {
	var (
		result           Result
		state            = stateStart
		currentFundHouse string
		currentCategory  string
		byCode           = make(map[string]int)
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch classifyLine(line) {
		case lineBlank:
			continue

		case lineHeader:
			if state == stateFundHouse {
				currentCategory = line
				state = stateCategory
			} else {
				currentFundHouse = line
				state = stateFundHouse
			}

		case lineRecord:
			record, ok := parseRecord(line, currentFundHouse, currentCategory)
			if !ok {
				result.Skipped++
				continue
			}
			if i, seen := byCode[record.SchemeCode]; seen {
				result.Records[i] = record
			} else {
				byCode[record.SchemeCode] = len(result.Records)
				result.Records = append(result.Records, record)
			}
			state = stateRecord

		case lineMalformed:
			result.Skipped++
		}
	}

	if err := scanner.Err(); err != nil {
		return Result{}, err
	}
	return result, nil
}

// parseRecord extracts a NavRecord from a data line. Lines whose NAV field
// is absent, the "N.A." literal, or not a finite non-negative number yield
// no record.
func parseRecord(line, fundHouse, category string) (model.NavRecord, bool) {
	fields := strings.Split(line, separator)

	schemeCode := strings.TrimSpace(fields[0])
	schemeName := strings.TrimSpace(fields[3])
	navStr := strings.TrimSpace(fields[4])
	navDate := strings.TrimSpace(fields[5])

	if schemeCode == "" || navStr == "" || navStr == navUnavailable {
		return model.NavRecord{}, false
	}

	nav, err := strconv.ParseFloat(navStr, 64)
	if err != nil || math.IsNaN(nav) || math.IsInf(nav, 0) || nav < 0 {
		return model.NavRecord{}, false
	}

	record := model.NavRecord{
		SchemeCode: schemeCode,
		SchemeName: schemeName,
		Nav:        nav,
		NavDate:    navDate,
	}
	if category != "" {
		record.Category = &category
	}
	if fundHouse != "" {
		record.FundHouse = &fundHouse
	}
	return record, true
}
