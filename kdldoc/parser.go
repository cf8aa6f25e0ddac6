package kdldoc

import "fmt"

// parser drives a Tokenizer and populates a metadataDB, back-patching
// container rows' size_or_length, number_of_rows, and has_complex_children
// when their matching End* arrives (spec §4.1).
type parser struct {
	db    *metadataDB
	stack parseStack
}

// parseDocument consumes tok to exhaustion and returns the populated,
// trimmed metadataDB. Any tokenizer error, or an input that ends with an
// unclosed container, disposes the partially-built DB and returns an error;
// no partial DB is ever exposed to a caller.
func parseDocument(tok Tokenizer) (*metadataDB, error) {
	p := &parser{db: newMetadataDB()}

	for {
		ok, err := tok.Read()
		if err != nil {
			p.db.dispose()
			return nil, err
		}
		if !ok {
			break
		}
		if err := p.step(tok); err != nil {
			p.db.dispose()
			return nil, err
		}
	}

	if !p.stack.empty() {
		p.db.dispose()
		return nil, fmt.Errorf("kdldoc: unexpected end of input: unclosed container: %w", ErrInvalidKDL)
	}

	p.db.completeAllocations()
	return p.db, nil
}

func (p *parser) step(tok Tokenizer) error {
	switch tok.Kind() {
	case KindStartObject:
		return p.startContainer(tok, false)
	case KindStartArray:
		return p.startContainer(tok, true)
	case KindEndObject:
		return p.endContainer(tok, KindStartObject, KindEndObject, false)
	case KindEndArray:
		return p.endContainer(tok, KindStartArray, KindEndArray, true)
	case KindPropertyName:
		return p.propertyName(tok)
	default:
		return p.value(tok)
	}
}

func (p *parser) startContainer(tok Tokenizer, isArray bool) error {
	kind := KindStartObject
	if isArray {
		kind = KindStartArray
	}
	loc := uint32(tok.TokenStartIndex())
	off := p.db.append(kind, loc, UnknownSize)

	if !p.stack.empty() {
		parent := p.stack.peek()
		// rowsInContainer for this child is credited in full when it closes
		// (endContainer adds its whole row span at once); crediting it here
		// too would double-count the child's own start row.
		parent.childCount++
		if parent.isArray {
			parent.anyContainerChild = true
		}
	}

	p.stack.push(parseFrame{isArray: isArray, startOffset: off})
	return nil
}

func (p *parser) endContainer(tok Tokenizer, startKind, endKind Kind, isArrayClose bool) error {
	if p.stack.empty() {
		return fmt.Errorf("kdldoc: unmatched %s at offset %d: %w", endKind, tok.TokenStartIndex(), ErrInvalidKDL)
	}

	startOff, ok := p.db.findIndexOfFirstUnsetSizeOrLength(startKind)
	if !ok {
		return fmt.Errorf("kdldoc: unmatched %s at offset %d: %w", endKind, tok.TokenStartIndex(), ErrInvalidKDL)
	}

	own := p.stack.pop()
	p.db.setSizeOrLength(startOff, own.childCount)

	endOff := p.db.append(endKind, uint32(tok.TokenStartIndex()), 1)
	total := own.rowsInContainer + 2 // +1 for the start row, +1 for the end row just appended
	p.db.setNumberOfRows(startOff, total)
	p.db.setNumberOfRows(endOff, total)

	if isArrayClose && own.anyContainerChild {
		p.db.setHasComplexChildren(startOff)
	}

	if !p.stack.empty() {
		parent := p.stack.peek()
		parent.rowsInContainer += total
	}
	return nil
}

func (p *parser) propertyName(tok Tokenizer) error {
	if p.stack.empty() || p.stack.peek().isArray {
		return fmt.Errorf("kdldoc: property name outside object at offset %d: %w", tok.TokenStartIndex(), ErrInvalidKDL)
	}
	loc := uint32(tok.TokenStartIndex() + 1) // skip the opening quote
	length := int32(tok.ValueSpanLength())
	off := p.db.append(KindPropertyName, loc, length)
	if tok.ValueIsEscaped() {
		p.db.setHasComplexChildren(off)
	}
	p.stack.peek().rowsInContainer++
	return nil
}

// value handles every simple value token except PropertyName: String,
// Number, True, False, Null.
func (p *parser) value(tok Tokenizer) error {
	kind := tok.Kind()
	loc := uint32(tok.TokenStartIndex())
	if kind == KindString {
		loc++ // skip the opening quote
	}
	length := int32(tok.ValueSpanLength())

	off := p.db.append(kind, loc, length)
	if kind == KindString && tok.ValueIsEscaped() {
		p.db.setHasComplexChildren(off)
	}

	if !p.stack.empty() {
		parent := p.stack.peek()
		parent.rowsInContainer++
		parent.childCount++
	}
	return nil
}
