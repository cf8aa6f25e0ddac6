package kdldoc

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// The TryGet family backs Element's typed conversions (spec §4.2
// try_get_value, §9 "generic numeric try-get family"). Each asserts the row
// kind up front (an argument fault, ErrWrongKind) and then reports malformed
// payloads as (zero, false, nil) rather than an error — a successful parse
// that does not consume the entire payload is treated identically to a
// failed parse, never as success-with-leftover (spec §7).

// TryGetInt64 parses a Number row as a signed 64-bit integer.
func (e *Element) TryGetInt64() (int64, bool, error) {
	raw, err := e.numberPayload()
	if err != nil {
		return 0, false, err
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return v, true, nil
}

// TryGetUint64 parses a Number row as an unsigned 64-bit integer.
func (e *Element) TryGetUint64() (uint64, bool, error) {
	raw, err := e.numberPayload()
	if err != nil {
		return 0, false, err
	}
	v, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return v, true, nil
}

// TryGetFloat64 parses a Number row as a float64.
func (e *Element) TryGetFloat64() (float64, bool, error) {
	raw, err := e.numberPayload()
	if err != nil {
		return 0, false, err
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false, nil
	}
	return v, true, nil
}

func (e *Element) numberPayload() ([]byte, error) {
	if err := e.doc.checkAlive(); err != nil {
		return nil, err
	}
	r := e.row()
	if r.Kind() != KindNumber {
		return nil, ErrWrongKind
	}
	return e.doc.buf[r.Location : int(r.Location)+int(r.SizeOrLength)], nil
}

// TryGetBool reads a True/False row.
func (e *Element) TryGetBool() (bool, bool, error) {
	if err := e.doc.checkAlive(); err != nil {
		return false, false, err
	}
	switch e.row().Kind() {
	case KindTrue:
		return true, true, nil
	case KindFalse:
		return false, true, nil
	default:
		return false, false, ErrWrongKind
	}
}

// TryGetTime parses a String row as RFC3339 (with optional fractional
// seconds). A length pre-check rejects obviously-invalid input before
// calling time.Parse (spec §4.2, §9).
func (e *Element) TryGetTime() (time.Time, bool, error) {
	if err := e.doc.checkAlive(); err != nil {
		return time.Time{}, false, err
	}
	r := e.row()
	if r.Kind() != KindString {
		return time.Time{}, false, ErrWrongKind
	}
	if r.SizeOrLength < int32(len("2006-01-02T15:04:05Z")) || r.SizeOrLength > 64 {
		return time.Time{}, false, nil
	}
	s, err := e.decodedPayload()
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// TryGetGUID parses a String row strictly in "D" format: 32 hex digits in
// 8-4-4-4-12 groups separated by hyphens, length exactly 36 (spec §9 Open
// Questions). Any other spelling is rejected by the length/hyphen gate
// before uuid.Parse ever runs.
func (e *Element) TryGetGUID() (uuid.UUID, bool, error) {
	if err := e.doc.checkAlive(); err != nil {
		return uuid.UUID{}, false, err
	}
	r := e.row()
	if r.Kind() != KindString {
		return uuid.UUID{}, false, ErrWrongKind
	}
	if r.SizeOrLength != 36 {
		return uuid.UUID{}, false, nil
	}
	s, err := e.decodedPayload()
	if err != nil {
		return uuid.UUID{}, false, err
	}
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid.UUID{}, false, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, false, nil
	}
	return id, true, nil
}

// TryGetBytes base64-decodes (standard encoding) a String row's decoded
// payload.
func (e *Element) TryGetBytes() ([]byte, bool, error) {
	if err := e.doc.checkAlive(); err != nil {
		return nil, false, err
	}
	if e.row().Kind() != KindString {
		return nil, false, ErrWrongKind
	}
	s, err := e.decodedPayload()
	if err != nil {
		return nil, false, err
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false, nil
	}
	return b, true, nil
}
