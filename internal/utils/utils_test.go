package utils

import (
	"bytes"
	"io"
	"testing"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func TestFormatYen(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{1969000, "¥1,969,000"},
		{264000, "¥264,000"},
		{999, "¥999"},
		{0, "¥0"},
		{-200000, "-¥200,000"},
	}

	for _, tt := range tests {
		if got := FormatYen(tt.input); got != tt.want {
			t.Errorf("FormatYen(%d) = %q; want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)); got != "2024年3月25日" {
		t.Errorf("unexpected date: %s", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("zero date should render as -, got %s", got)
	}
}

func TestShiftJISWriter(t *testing.T) {
	var buf bytes.Buffer
	w := ShiftJISWriter(&buf)
	if _, err := io.WriteString(w, "請求書番号,金額\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(buf.Bytes(), []byte("請求書番号,金額\n")) {
		t.Fatal("output was not re-encoded")
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if string(decoded) != "請求書番号,金額\n" {
		t.Fatalf("round trip mismatch: %s", decoded)
	}
}
