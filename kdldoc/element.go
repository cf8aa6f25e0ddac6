package kdldoc

import "bytes"

// Element is a non-owning cursor into a Document, identified by a row byte
// offset (spec §4.2, §9 "cyclic refs"). It never stores decoded payloads.
type Element struct {
	doc    *Document
	offset int
}

// Property pairs a PropertyName row with its value row, as returned by
// Element.GetProperty and Element.GetPropertyByName.
type Property struct {
	nameElem *Element
	Value    *Element
}

func (e *Element) row() Row { return e.doc.db.get(e.offset) }

// rowSpanRows returns how many rows a row at off occupies including any
// descendants: NumberOfRows for a container start, 1 otherwise.
func rowSpanRows(db *metadataDB, off int) int32 {
	r := db.get(off)
	if r.Kind().IsContainerStart() {
		return r.NumberOfRows()
	}
	return 1
}

// Kind returns the token kind at this row.
func (e *Element) Kind() (Kind, error) {
	if err := e.doc.checkAlive(); err != nil {
		return 0, err
	}
	return e.row().Kind(), nil
}

// ArrayLength asserts the element is a StartArray and returns its element
// count.
func (e *Element) ArrayLength() (int32, error) {
	if err := e.doc.checkAlive(); err != nil {
		return 0, err
	}
	r := e.row()
	if r.Kind() != KindStartArray {
		return 0, ErrWrongKind
	}
	return r.SizeOrLength, nil
}

// PropertyCount asserts the element is a StartObject and returns its
// property count.
func (e *Element) PropertyCount() (int32, error) {
	if err := e.doc.checkAlive(); err != nil {
		return 0, err
	}
	r := e.row()
	if r.Kind() != KindStartObject {
		return 0, ErrWrongKind
	}
	return r.SizeOrLength, nil
}

// ArrayElement returns the k-th direct child of a StartArray element. When
// the array has no complex (container) children, this is O(1); otherwise it
// walks the direct children, skipping each container child by its
// NumberOfRows (spec §4.2, §8 invariant 4).
func (e *Element) ArrayElement(k int) (*Element, error) {
	if err := e.doc.checkAlive(); err != nil {
		return nil, err
	}
	r := e.row()
	if r.Kind() != KindStartArray {
		return nil, ErrWrongKind
	}
	if k < 0 || int32(k) >= r.SizeOrLength {
		return nil, ErrIndexOutOfRange
	}

	if !r.HasComplexChildren() {
		off := e.offset + (k+1)*RowSize
		return &Element{doc: e.doc, offset: off}, nil
	}

	offset := e.offset + RowSize
	for i := 0; i < k; i++ {
		offset += int(rowSpanRows(e.doc.db, offset)) * RowSize
	}
	return &Element{doc: e.doc, offset: offset}, nil
}

// EndIndex returns the byte offset of this element's matching End* row
// (includeEnd false), or one row past it (includeEnd true). For a simple
// value it is always self+RowSize regardless of includeEnd, since there is
// no separate closing row.
func (e *Element) EndIndex(includeEnd bool) (int, error) {
	if err := e.doc.checkAlive(); err != nil {
		return 0, err
	}
	r := e.row()
	if !r.Kind().IsContainerStart() {
		return e.offset + RowSize, nil
	}
	endOff := e.offset + int(r.NumberOfRows()-1)*RowSize
	if includeEnd {
		return endOff + RowSize, nil
	}
	return endOff, nil
}

// rawSpan returns the [start, end) byte range of this element's raw value
// within doc.buf, with quotes included for String/PropertyName when
// includeQuotes is true.
func (e *Element) rawSpan(includeQuotes bool) (int, int) {
	r := e.row()
	if r.Kind().IsContainerStart() {
		endOff := e.offset + int(r.NumberOfRows()-1)*RowSize
		endRow := e.doc.db.get(endOff)
		return int(r.Location), int(endRow.Location) + int(endRow.SizeOrLength)
	}
	start := int(r.Location)
	end := start + int(r.SizeOrLength)
	if includeQuotes && (r.Kind() == KindString || r.Kind() == KindPropertyName) {
		start--
		end++
	}
	return start, end
}

// RawValue returns the raw UTF-8 bytes this element spans (spec §4.2
// get_raw_value). The returned slice aliases the document's buffer and must
// not be retained past the document's lifetime.
func (e *Element) RawValue(includeQuotes bool) ([]byte, error) {
	if err := e.doc.checkAlive(); err != nil {
		return nil, err
	}
	start, end := e.rawSpan(includeQuotes)
	return e.doc.buf[start:end], nil
}

// PropertyRawValue treats this element as a property's value row and
// returns the span from the property name's opening quote to the value's
// raw end (spec §4.2 get_property_raw_value).
func (e *Element) PropertyRawValue() ([]byte, error) {
	if err := e.doc.checkAlive(); err != nil {
		return nil, err
	}
	if e.offset < RowSize {
		return nil, ErrWrongKind
	}
	nameRow := e.doc.db.get(e.offset - RowSize)
	if nameRow.Kind() != KindPropertyName {
		return nil, ErrWrongKind
	}
	start := int(nameRow.Location) - 1
	_, end := e.rawSpan(false)
	if e.row().Kind() == KindString {
		end++
	}
	return e.doc.buf[start:end], nil
}

func (e *Element) decodedPayload() (string, error) {
	r := e.row()
	raw := e.doc.buf[r.Location : int(r.Location)+int(r.SizeOrLength)]
	if !r.HasComplexChildren() {
		return string(raw), nil
	}
	return unescapeToString(raw)
}

// GetString asserts the element is a String, returning its decoded value;
// a Null element returns "" with no error (spec §4.2 get_string).
func (e *Element) GetString() (string, error) {
	if err := e.doc.checkAlive(); err != nil {
		return "", err
	}
	switch e.row().Kind() {
	case KindNull:
		return "", nil
	case KindString:
		return e.decodedPayload()
	default:
		return "", ErrWrongKind
	}
}

// Name decodes the property name.
func (p Property) Name() (string, error) {
	if err := p.nameElem.doc.checkAlive(); err != nil {
		return "", err
	}
	return p.nameElem.decodedPayload()
}

func (e *Element) propertyAt(index int32) (Property, error) {
	r := e.row()
	offset := e.offset + RowSize
	for i := int32(0); i < r.SizeOrLength; i++ {
		nameOff := offset
		valueOff := nameOff + RowSize
		if i == index {
			return Property{
				nameElem: &Element{doc: e.doc, offset: nameOff},
				Value:    &Element{doc: e.doc, offset: valueOff},
			}, nil
		}
		offset = valueOff + int(rowSpanRows(e.doc.db, valueOff))*RowSize
	}
	return Property{}, ErrIndexOutOfRange
}

// GetProperty returns the index-th property of a StartObject element, in
// document order.
func (e *Element) GetProperty(index int) (Property, error) {
	if err := e.doc.checkAlive(); err != nil {
		return Property{}, err
	}
	if e.row().Kind() != KindStartObject {
		return Property{}, ErrWrongKind
	}
	if index < 0 || int32(index) >= e.row().SizeOrLength {
		return Property{}, ErrIndexOutOfRange
	}
	return e.propertyAt(int32(index))
}

// GetPropertyByName linearly scans a StartObject element's properties for
// one named name, returning ok=false if none matches.
func (e *Element) GetPropertyByName(name string) (Property, bool, error) {
	if err := e.doc.checkAlive(); err != nil {
		return Property{}, false, err
	}
	r := e.row()
	if r.Kind() != KindStartObject {
		return Property{}, false, ErrWrongKind
	}
	offset := e.offset + RowSize
	nameBytes := []byte(name)
	for i := int32(0); i < r.SizeOrLength; i++ {
		nameOff := offset
		valueOff := nameOff + RowSize
		nameElem := &Element{doc: e.doc, offset: nameOff}
		eq, err := nameElem.TextEquals(nameBytes, true)
		if err != nil {
			return Property{}, false, err
		}
		if eq {
			return Property{nameElem: nameElem, Value: &Element{doc: e.doc, offset: valueOff}}, true, nil
		}
		offset = valueOff + int(rowSpanRows(e.doc.db, valueOff))*RowSize
	}
	return Property{}, false, nil
}

// TextEquals compares this element's decoded payload against other without
// materializing a Go string when the stored segment has no escapes (spec
// §4.2 text_equals, §8 invariant 8). shouldUnescape controls whether an
// escaped segment is decoded before comparing; when false, an escaped
// segment matches only if its raw (still-escaped) bytes are identical to
// other.
func (e *Element) TextEquals(other []byte, shouldUnescape bool) (bool, error) {
	if err := e.doc.checkAlive(); err != nil {
		return false, err
	}
	r := e.row()
	raw := e.doc.buf[r.Location : int(r.Location)+int(r.SizeOrLength)]
	if !r.HasComplexChildren() {
		return bytes.Equal(raw, other), nil
	}
	if !shouldUnescape {
		return bytes.Equal(raw, other), nil
	}
	decoded, err := unescapeToString(raw)
	if err != nil {
		return false, err
	}
	return decoded == string(other), nil
}

// CloneSubtree produces a new, non-disposable Document whose buffer is a
// fresh copy of this element's raw span (quotes included) and whose
// metadataDB is a rebased copy of this element's rows (spec §4.2, §4.4).
// The clone is independent of the parent document's disposal.
func (e *Element) CloneSubtree() (*Document, error) {
	if err := e.doc.checkAlive(); err != nil {
		return nil, err
	}
	start, end := e.rawSpan(true)
	bufCopy := make([]byte, end-start)
	copy(bufCopy, e.doc.buf[start:end])

	r := e.row()
	var dbEnd int
	if r.Kind().IsContainerStart() {
		dbEnd = e.offset + int(r.NumberOfRows())*RowSize
	} else {
		dbEnd = e.offset + RowSize
	}

	newDB := e.doc.db.copySegment(e.offset, dbEnd, uint32(start))
	return newDocument(bufCopy, newDB, false, false), nil
}

// Digest returns a content fingerprint of this element's raw span (see
// digest.go).
func (e *Element) Digest() (uint64, error) {
	raw, err := e.RawValue(true)
	if err != nil {
		return 0, err
	}
	return digestBytes(raw), nil
}
