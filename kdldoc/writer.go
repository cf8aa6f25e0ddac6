package kdldoc

// Writer is the opaque structural sink a subtree is rewritten to (spec
// §4.3, §6.2). A nil Writer is rejected at the boundary with
// ErrArgumentNull.
type Writer interface {
	WriteStartObject() error
	WriteEndObject() error
	WriteStartArray() error
	WriteEndArray() error
	WritePropertyName(name []byte) error
	WriteStringValue(value []byte) error
	WriteNumberValue(raw []byte) error
	WriteBooleanValue(v bool) error
	WriteNullValue() error
}

// WriteTo rewrites this element's subtree to w via structural calls (spec
// §4.3). Strings and property names are unescaped before being handed to
// w; numbers are passed as their raw byte span unchanged.
func (e *Element) WriteTo(w Writer) error {
	if w == nil {
		return ErrArgumentNull
	}
	if err := e.doc.checkAlive(); err != nil {
		return err
	}
	return e.writeSelfTo(w)
}

func (e *Element) writeSelfTo(w Writer) error {
	r := e.row()
	switch r.Kind() {
	case KindStartObject:
		if err := w.WriteStartObject(); err != nil {
			return err
		}
		return e.writeMembersTo(w)
	case KindStartArray:
		if err := w.WriteStartArray(); err != nil {
			return err
		}
		return e.writeMembersTo(w)
	default:
		return e.writeRowTo(w, r)
	}
}

// writeMembersTo walks rows [self+RowSize, end_index(true)) and emits one
// structural call per row, including the container's own matching End*
// (spec §4.3): nested containers' openers/closers appear in sequence and
// nest correctly purely because rows are produced in document order.
func (e *Element) writeMembersTo(w Writer) error {
	r := e.row()
	endOff := e.offset + int(r.NumberOfRows()-1)*RowSize
	off := e.offset + RowSize
	for off <= endOff {
		child := &Element{doc: e.doc, offset: off}
		cr := child.row()
		switch cr.Kind() {
		case KindStartObject:
			if err := w.WriteStartObject(); err != nil {
				return err
			}
		case KindEndObject:
			if err := w.WriteEndObject(); err != nil {
				return err
			}
		case KindStartArray:
			if err := w.WriteStartArray(); err != nil {
				return err
			}
		case KindEndArray:
			if err := w.WriteEndArray(); err != nil {
				return err
			}
		case KindPropertyName:
			s, err := child.decodedPayload()
			if err != nil {
				return err
			}
			if err := w.WritePropertyName([]byte(s)); err != nil {
				return err
			}
		default:
			if err := child.writeRowTo(w, cr); err != nil {
				return err
			}
		}
		off += RowSize
	}
	return nil
}

func (e *Element) writeRowTo(w Writer, r Row) error {
	switch r.Kind() {
	case KindString:
		s, err := e.decodedPayload()
		if err != nil {
			return err
		}
		return w.WriteStringValue([]byte(s))
	case KindNumber:
		raw := e.doc.buf[r.Location : int(r.Location)+int(r.SizeOrLength)]
		return w.WriteNumberValue(raw)
	case KindTrue:
		return w.WriteBooleanValue(true)
	case KindFalse:
		return w.WriteBooleanValue(false)
	case KindNull:
		return w.WriteNullValue()
	default:
		return ErrWrongKind
	}
}
