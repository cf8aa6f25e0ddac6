package kdldoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(`{"a":1}`), DefaultTokenizerOptions())
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	defer doc.Dispose()
	n, err := doc.Root().PropertyCount()
	if err != nil || n != 1 {
		t.Fatalf("PropertyCount() = %d, %v; want 1", n, err)
	}
}

func TestParseGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(`[1,2,3]`)); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseGzip(&buf, DefaultTokenizerOptions())
	if err != nil {
		t.Fatalf("ParseGzip: %v", err)
	}
	defer doc.Dispose()
	n, err := doc.Root().ArrayLength()
	if err != nil || n != 3 {
		t.Fatalf("ArrayLength() = %d, %v; want 3", n, err)
	}
}

func TestParseGzipRejectsPlainInput(t *testing.T) {
	_, err := ParseGzip(strings.NewReader(`[1,2,3]`), DefaultTokenizerOptions())
	if err == nil {
		t.Fatal("expected an error decoding non-gzip input as gzip")
	}
}
