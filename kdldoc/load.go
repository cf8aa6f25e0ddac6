package kdldoc

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Parse is the primary entry point (spec §4.1): it owns buf for the
// lifetime of the returned Document (the document's Dispose will not
// return buf to any pool, since Parse did not rent it from one).
func Parse(buf []byte, opts TokenizerOptions) (*Document, error) {
	tok, err := NewTokenizer(buf, opts)
	if err != nil {
		return nil, err
	}
	db, err := parseDocument(tok)
	if err != nil {
		return nil, fmt.Errorf("kdldoc: parse: %w", err)
	}
	return newDocument(buf, db, true, false), nil
}

// ParseReader reads r fully, then parses it. The core requires a complete
// buffer (spec §1 Non-goals); there is no incremental/streaming mode.
func ParseReader(r io.Reader, opts TokenizerOptions) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("kdldoc: read: %w", err)
	}
	return Parse(data, opts)
}

// ParseGzip decompresses r as gzip before parsing. This is the one
// concession to an on-disk/wire format in the loader layer; it does not
// change the in-memory model (spec §6.4 "no on-disk format" still
// describes the Document itself).
func ParseGzip(r io.Reader, opts TokenizerOptions) (*Document, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("kdldoc: gzip: %w", err)
	}
	defer gz.Close()
	return ParseReader(gz, opts)
}
