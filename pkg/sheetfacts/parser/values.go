// Package parser provides Excel file parsing utilities.
package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// parseValue converts a raw numeric cell value to int64 or float64.
// Values that are not numeric are returned unchanged.
func parseValue(s string) interface{} {
	// Integers are written without a decimal point or exponent
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

// parseDate converts a serial date number to a time in UTC.
func parseDate(s string, date1904 bool) (interface{}, error) {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s, nil
	}
	return excelize.ExcelDateToTime(serial, date1904)
}

// builtinDateFormats lists the built-in number format ids that render dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormat reports whether a number format displays a date or time.
func isDateFormat(numFmt int, custom *string) bool {
	if builtinDateFormats[numFmt] {
		return true
	}
	return custom != nil && isDateFormatCode(*custom)
}

// isDateFormatCode inspects a custom format code for date or time tokens,
// ignoring quoted literals, escaped characters and bracketed sections other
// than elapsed-time markers like [h] or [mm].
func isDateFormatCode(code string) bool {
	if strings.EqualFold(code, "general") {
		return false
	}
	// Only the first section matters for positive numbers
	inQuote := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case c == ';':
			return false
		case c == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			if isElapsedToken(code[i+1 : i+end]) {
				return true
			}
			i += end
		default:
			switch c | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

func isElapsedToken(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(strings.ToLower(s), "hms") == ""
}

// parseISOTime parses the value of a t="d" cell.
func parseISOTime(s string) (time.Time, error) {
	return cast.ToTimeE(s)
}
