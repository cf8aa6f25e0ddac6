package kdldoc

import "fmt"

// containerPhase tracks what a jsonTokenizer expects next within an open
// container.
type containerPhase uint8

const (
	phaseExpectValueOrEnd containerPhase = iota // array, just opened: value or ']'
	phaseExpectValueStrict                      // array, after ',': value only
	phaseExpectCommaOrEndArray
	phaseExpectKeyOrEnd // object, just opened: key or '}'
	phaseExpectKeyStrict
	phaseExpectColon
	phaseExpectValue // object, after ':': a single value
	phaseExpectCommaOrEndObject
)

type containerFrame struct {
	isArray bool
	phase   containerPhase
}

// jsonTokenizer implements Tokenizer over the JSON grammar (the common
// token stream spec.md §1 describes as the KDL-ish superset's baseline).
type jsonTokenizer struct {
	buf  []byte
	pos  int
	opts TokenizerOptions

	stack []containerFrame

	started bool // the root value has begun
	ended   bool // Read has already reported EOF once

	// fields describing the token the last successful Read produced.
	kind          Kind
	tokenStart    int
	valueLen      int
	isInArray     bool
	escaped       bool
	bytesConsumed int
}

// NewTokenizer constructs a Tokenizer over buf. It returns ErrNotSupported
// if opts requests CommentsAllow (spec §6.1, §6.3).
func NewTokenizer(buf []byte, opts TokenizerOptions) (Tokenizer, error) {
	if opts.CommentHandling == CommentsAllow {
		return nil, fmt.Errorf("kdldoc: comment handling allow: %w", ErrNotSupported)
	}
	return &jsonTokenizer{buf: buf, opts: opts}, nil
}

func (t *jsonTokenizer) Kind() Kind              { return t.kind }
func (t *jsonTokenizer) TokenStartIndex() int    { return t.tokenStart }
func (t *jsonTokenizer) ValueSpanLength() int    { return t.valueLen }
func (t *jsonTokenizer) IsInArray() bool         { return t.isInArray }
func (t *jsonTokenizer) ValueIsEscaped() bool    { return t.escaped }
func (t *jsonTokenizer) BytesConsumed() int      { return t.bytesConsumed }

func (t *jsonTokenizer) setTok(kind Kind, start, length int, isInArray, escaped bool) {
	t.kind = kind
	t.tokenStart = start
	t.valueLen = length
	t.isInArray = isInArray
	t.escaped = escaped
	t.bytesConsumed = t.pos
}

// Read implements Tokenizer.
func (t *jsonTokenizer) Read() (bool, error) {
	if err := t.skipWhitespaceAndComments(); err != nil {
		return false, err
	}

	if t.pos >= len(t.buf) {
		if len(t.stack) > 0 {
			return false, fmt.Errorf("kdldoc: unexpected end of input inside container at offset %d: %w", t.pos, ErrInvalidKDL)
		}
		if !t.started {
			return false, fmt.Errorf("kdldoc: empty input: %w", ErrInvalidKDL)
		}
		t.ended = true
		return false, nil
	}

	if len(t.stack) == 0 {
		if t.started {
			return false, fmt.Errorf("kdldoc: trailing data at offset %d: %w", t.pos, ErrInvalidKDL)
		}
		return t.readValue(false)
	}

	top := &t.stack[len(t.stack)-1]
	c := t.buf[t.pos]

	if top.isArray {
		switch top.phase {
		case phaseExpectValueOrEnd, phaseExpectValueStrict:
			if c == ']' {
				if top.phase == phaseExpectValueStrict {
					return false, fmt.Errorf("kdldoc: trailing comma before ']' at offset %d: %w", t.pos, ErrInvalidKDL)
				}
				return t.readEndArray()
			}
			return t.readValue(true)
		case phaseExpectCommaOrEndArray:
			switch c {
			case ']':
				return t.readEndArray()
			case ',':
				t.pos++
				top.phase = phaseExpectValueStrict
				return t.Read()
			default:
				return false, fmt.Errorf("kdldoc: expected ',' or ']' at offset %d: %w", t.pos, ErrInvalidKDL)
			}
		}
	} else {
		switch top.phase {
		case phaseExpectKeyOrEnd, phaseExpectKeyStrict:
			if c == '}' {
				if top.phase == phaseExpectKeyStrict {
					return false, fmt.Errorf("kdldoc: trailing comma before '}' at offset %d: %w", t.pos, ErrInvalidKDL)
				}
				return t.readEndObject()
			}
			if c != '"' {
				return false, fmt.Errorf("kdldoc: expected property name at offset %d: %w", t.pos, ErrInvalidKDL)
			}
			return t.readPropertyName()
		case phaseExpectColon:
			if c != ':' {
				return false, fmt.Errorf("kdldoc: expected ':' at offset %d: %w", t.pos, ErrInvalidKDL)
			}
			t.pos++
			top.phase = phaseExpectValue
			if err := t.skipWhitespaceAndComments(); err != nil {
				return false, err
			}
			if t.pos >= len(t.buf) {
				return false, fmt.Errorf("kdldoc: unexpected end of input after ':': %w", ErrInvalidKDL)
			}
			return t.readValue(false)
		case phaseExpectCommaOrEndObject:
			switch c {
			case '}':
				return t.readEndObject()
			case ',':
				t.pos++
				top.phase = phaseExpectKeyStrict
				return t.Read()
			default:
				return false, fmt.Errorf("kdldoc: expected ',' or '}' at offset %d: %w", t.pos, ErrInvalidKDL)
			}
		}
	}
	panic("kdldoc: unreachable tokenizer state")
}

func (t *jsonTokenizer) readValue(isInArray bool) (bool, error) {
	c := t.buf[t.pos]
	switch {
	case c == '{':
		return t.readStartObject(isInArray)
	case c == '[':
		return t.readStartArray(isInArray)
	case c == '"':
		return t.readStringValue(isInArray)
	case c == '-' || (c >= '0' && c <= '9'):
		return t.readNumber(isInArray)
	case c == 't':
		return t.readLiteral(KindTrue, "true", isInArray)
	case c == 'f':
		return t.readLiteral(KindFalse, "false", isInArray)
	case c == 'n':
		return t.readLiteral(KindNull, "null", isInArray)
	default:
		return false, fmt.Errorf("kdldoc: unexpected character %q at offset %d: %w", c, t.pos, ErrInvalidKDL)
	}
}

func (t *jsonTokenizer) afterValueConsumed() {
	t.started = true
	if len(t.stack) == 0 {
		return
	}
	top := &t.stack[len(t.stack)-1]
	if top.isArray {
		top.phase = phaseExpectCommaOrEndArray
	} else {
		top.phase = phaseExpectCommaOrEndObject
	}
}

func (t *jsonTokenizer) readStartObject(isInArray bool) (bool, error) {
	start := t.pos
	t.pos++
	t.stack = append(t.stack, containerFrame{isArray: false, phase: phaseExpectKeyOrEnd})
	t.started = true
	t.setTok(KindStartObject, start, 1, isInArray, false)
	return true, nil
}

func (t *jsonTokenizer) readStartArray(isInArray bool) (bool, error) {
	start := t.pos
	t.pos++
	t.stack = append(t.stack, containerFrame{isArray: true, phase: phaseExpectValueOrEnd})
	t.started = true
	t.setTok(KindStartArray, start, 1, isInArray, false)
	return true, nil
}

func (t *jsonTokenizer) readEndObject() (bool, error) {
	start := t.pos
	t.pos++
	t.stack = t.stack[:len(t.stack)-1]
	parentIsArray := len(t.stack) > 0 && t.stack[len(t.stack)-1].isArray
	t.setTok(KindEndObject, start, 1, parentIsArray, false)
	t.afterValueConsumed()
	return true, nil
}

func (t *jsonTokenizer) readEndArray() (bool, error) {
	start := t.pos
	t.pos++
	t.stack = t.stack[:len(t.stack)-1]
	parentIsArray := len(t.stack) > 0 && t.stack[len(t.stack)-1].isArray
	t.setTok(KindEndArray, start, 1, parentIsArray, false)
	t.afterValueConsumed()
	return true, nil
}

func (t *jsonTokenizer) readPropertyName() (bool, error) {
	if len(t.stack) == 0 || t.stack[len(t.stack)-1].isArray {
		return false, fmt.Errorf("kdldoc: property name outside object at offset %d: %w", t.pos, ErrInvalidKDL)
	}
	start := t.pos
	length, escaped, err := t.scanQuotedString()
	if err != nil {
		return false, err
	}
	top := &t.stack[len(t.stack)-1]
	top.phase = phaseExpectColon
	t.setTok(KindPropertyName, start, length, false, escaped)
	return true, nil
}

func (t *jsonTokenizer) readStringValue(isInArray bool) (bool, error) {
	start := t.pos
	length, escaped, err := t.scanQuotedString()
	if err != nil {
		return false, err
	}
	t.setTok(KindString, start, length, isInArray, escaped)
	t.afterValueConsumed()
	return true, nil
}

// scanQuotedString scans a JSON string starting at the opening quote
// (t.pos) and returns the byte length of its content (excluding quotes)
// and whether it contains at least one backslash escape. It advances t.pos
// past the closing quote.
func (t *jsonTokenizer) scanQuotedString() (int, bool, error) {
	start := t.pos
	t.pos++ // opening quote
	contentStart := t.pos
	escaped := false

	for {
		if t.pos >= len(t.buf) {
			return 0, false, fmt.Errorf("kdldoc: unterminated string starting at offset %d: %w", start, ErrInvalidKDL)
		}
		c := t.buf[t.pos]
		switch {
		case c == '\\':
			escaped = true
			t.pos++
			if t.pos >= len(t.buf) {
				return 0, false, fmt.Errorf("kdldoc: unterminated escape at offset %d: %w", t.pos, ErrInvalidKDL)
			}
			esc := t.buf[t.pos]
			switch esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				t.pos++
			case 'u':
				t.pos++
				if t.pos+4 > len(t.buf) {
					return 0, false, fmt.Errorf("kdldoc: truncated \\u escape at offset %d: %w", t.pos, ErrInvalidKDL)
				}
				for k := 0; k < 4; k++ {
					if !isHexDigit(t.buf[t.pos+k]) {
						return 0, false, fmt.Errorf("kdldoc: invalid \\u escape at offset %d: %w", t.pos, ErrInvalidKDL)
					}
				}
				t.pos += 4
			default:
				return 0, false, fmt.Errorf("kdldoc: invalid escape %q at offset %d: %w", esc, t.pos, ErrInvalidKDL)
			}
		case c == '"':
			length := t.pos - contentStart
			t.pos++
			return length, escaped, nil
		case c < 0x20:
			return 0, false, fmt.Errorf("kdldoc: control character in string at offset %d: %w", t.pos, ErrInvalidKDL)
		default:
			t.pos++
		}
	}
}

func (t *jsonTokenizer) readNumber(isInArray bool) (bool, error) {
	start := t.pos

	if t.buf[t.pos] == '-' {
		t.pos++
	}
	if t.pos >= len(t.buf) || !isDigit(t.buf[t.pos]) {
		return false, fmt.Errorf("kdldoc: invalid number at offset %d: %w", start, ErrInvalidKDL)
	}
	if t.buf[t.pos] == '0' {
		t.pos++
	} else {
		for t.pos < len(t.buf) && isDigit(t.buf[t.pos]) {
			t.pos++
		}
	}

	if t.pos < len(t.buf) && t.buf[t.pos] == '.' {
		t.pos++
		if t.pos >= len(t.buf) || !isDigit(t.buf[t.pos]) {
			return false, fmt.Errorf("kdldoc: invalid number fraction at offset %d: %w", start, ErrInvalidKDL)
		}
		for t.pos < len(t.buf) && isDigit(t.buf[t.pos]) {
			t.pos++
		}
	}

	if t.pos < len(t.buf) && (t.buf[t.pos] == 'e' || t.buf[t.pos] == 'E') {
		t.pos++
		if t.pos < len(t.buf) && (t.buf[t.pos] == '+' || t.buf[t.pos] == '-') {
			t.pos++
		}
		if t.pos >= len(t.buf) || !isDigit(t.buf[t.pos]) {
			return false, fmt.Errorf("kdldoc: invalid number exponent at offset %d: %w", start, ErrInvalidKDL)
		}
		for t.pos < len(t.buf) && isDigit(t.buf[t.pos]) {
			t.pos++
		}
	}

	t.setTok(KindNumber, start, t.pos-start, isInArray, false)
	t.afterValueConsumed()
	return true, nil
}

func (t *jsonTokenizer) readLiteral(kind Kind, literal string, isInArray bool) (bool, error) {
	start := t.pos
	end := t.pos + len(literal)
	if end > len(t.buf) || string(t.buf[t.pos:end]) != literal {
		return false, fmt.Errorf("kdldoc: invalid literal at offset %d: %w", start, ErrInvalidKDL)
	}
	t.pos = end
	t.setTok(kind, start, len(literal), isInArray, false)
	t.afterValueConsumed()
	return true, nil
}

func (t *jsonTokenizer) skipWhitespaceAndComments() error {
	for t.pos < len(t.buf) {
		c := t.buf[t.pos]
		switch c {
		case ' ', '\t', '\r', '\n':
			t.pos++
			continue
		case '/':
			if t.pos+1 < len(t.buf) && t.buf[t.pos+1] == '/' {
				if t.opts.CommentHandling == CommentsDisallow {
					return fmt.Errorf("kdldoc: comments not allowed at offset %d: %w", t.pos, ErrInvalidKDL)
				}
				t.pos += 2
				for t.pos < len(t.buf) && t.buf[t.pos] != '\n' {
					t.pos++
				}
				continue
			}
			if t.pos+1 < len(t.buf) && t.buf[t.pos+1] == '*' {
				if t.opts.CommentHandling == CommentsDisallow {
					return fmt.Errorf("kdldoc: comments not allowed at offset %d: %w", t.pos, ErrInvalidKDL)
				}
				t.pos += 2
				closed := false
				for t.pos+1 < len(t.buf) {
					if t.buf[t.pos] == '*' && t.buf[t.pos+1] == '/' {
						t.pos += 2
						closed = true
						break
					}
					t.pos++
				}
				if !closed {
					return fmt.Errorf("kdldoc: unterminated comment: %w", ErrInvalidKDL)
				}
				continue
			}
			return nil
		default:
			return nil
		}
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
