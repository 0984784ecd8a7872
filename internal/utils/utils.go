package utils

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/transform"
)

var printer = message.NewPrinter(language.Japanese)

// FormatYen renders an amount the way documents print it, e.g. ¥1,969,000.
func FormatYen(amount int64) string {
	if amount < 0 {
		return "-" + FormatYen(-amount)
	}
	return printer.Sprintf("¥%d", amount)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}

// ShiftJISWriter encodes everything written to it as Shift_JIS, the encoding
// spreadsheet software in Japan expects for CSV files.
func ShiftJISWriter(w io.Writer) *transform.Writer {
	return transform.NewWriter(w, japanese.ShiftJIS.NewEncoder())
}
