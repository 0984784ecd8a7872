package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Human readable record numbers. Each prefix keeps its own sequence.

func orderPrefix(t time.Time) string    { return fmt.Sprintf("ORD-%d", t.Year()) }
func purchasePrefix(t time.Time) string { return fmt.Sprintf("PUR-%d", t.Year()) }
func deliveryPrefix(t time.Time) string { return fmt.Sprintf("DEL-%d", t.Year()) }
func invoicePrefix(t time.Time) string  { return "INV-" + t.Format("200601") }
func noticePrefix(t time.Time) string   { return "PN-" + t.Format("200601") }

func width(prefix string) int {
	if strings.HasPrefix(prefix, "PUR-") {
		return 3
	}
	return 4
}

func formatNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width(prefix), seq)
}

// parseNumber splits a record number into its prefix and sequence.
func parseNumber(number string) (string, int, bool) {
	i := strings.LastIndex(number, "-")
	if i <= 0 {
		return "", 0, false
	}
	seq, err := strconv.Atoi(number[i+1:])
	if err != nil {
		return "", 0, false
	}
	return number[:i], seq, true
}
