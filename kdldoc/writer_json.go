package kdldoc

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// JSONWriter writes minified JSON directly to an io.Writer as structural
// calls arrive. The standard library's encoding/json has no push-style
// structural encoder, so this is hand-rolled (see DESIGN.md).
type JSONWriter struct {
	w     io.Writer
	stack []jsonFrame
}

type jsonFrame struct {
	isArray  bool
	count    int
	afterKey bool
}

// NewJSONWriter wraps w as a Writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (jw *JSONWriter) beforeValue() error {
	if len(jw.stack) == 0 {
		return nil
	}
	top := &jw.stack[len(jw.stack)-1]
	if top.afterKey {
		top.afterKey = false
		return nil
	}
	if top.count > 0 {
		if _, err := io.WriteString(jw.w, ","); err != nil {
			return err
		}
	}
	top.count++
	return nil
}

func (jw *JSONWriter) WriteStartObject() error {
	if err := jw.beforeValue(); err != nil {
		return err
	}
	if _, err := io.WriteString(jw.w, "{"); err != nil {
		return err
	}
	jw.stack = append(jw.stack, jsonFrame{})
	return nil
}

func (jw *JSONWriter) WriteEndObject() error {
	jw.stack = jw.stack[:len(jw.stack)-1]
	_, err := io.WriteString(jw.w, "}")
	return err
}

func (jw *JSONWriter) WriteStartArray() error {
	if err := jw.beforeValue(); err != nil {
		return err
	}
	if _, err := io.WriteString(jw.w, "["); err != nil {
		return err
	}
	jw.stack = append(jw.stack, jsonFrame{isArray: true})
	return nil
}

func (jw *JSONWriter) WriteEndArray() error {
	jw.stack = jw.stack[:len(jw.stack)-1]
	_, err := io.WriteString(jw.w, "]")
	return err
}

func (jw *JSONWriter) WritePropertyName(name []byte) error {
	if err := jw.beforeValue(); err != nil {
		return err
	}
	if err := writeJSONString(jw.w, name); err != nil {
		return err
	}
	if _, err := io.WriteString(jw.w, ":"); err != nil {
		return err
	}
	jw.stack[len(jw.stack)-1].afterKey = true
	return nil
}

func (jw *JSONWriter) WriteStringValue(value []byte) error {
	if err := jw.beforeValue(); err != nil {
		return err
	}
	return writeJSONString(jw.w, value)
}

func (jw *JSONWriter) WriteNumberValue(raw []byte) error {
	if err := jw.beforeValue(); err != nil {
		return err
	}
	_, err := jw.w.Write(raw)
	return err
}

func (jw *JSONWriter) WriteBooleanValue(v bool) error {
	if err := jw.beforeValue(); err != nil {
		return err
	}
	if v {
		_, err := io.WriteString(jw.w, "true")
		return err
	}
	_, err := io.WriteString(jw.w, "false")
	return err
}

func (jw *JSONWriter) WriteNullValue() error {
	if err := jw.beforeValue(); err != nil {
		return err
	}
	_, err := io.WriteString(jw.w, "null")
	return err
}

// writeJSONString re-escapes a decoded (already-unescaped) string into a
// quoted JSON string literal.
func writeJSONString(w io.Writer, s []byte) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRune(s[i:])
		switch r {
		case '"':
			buf = append(buf, '\\', '"')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		default:
			if r < 0x20 {
				buf = append(buf, []byte(fmt.Sprintf(`\u%04x`, r))...)
			} else {
				buf = append(buf, s[i:i+size]...)
			}
		}
		i += size
	}
	buf = append(buf, '"')
	_, err := w.Write(buf)
	return err
}
