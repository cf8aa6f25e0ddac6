// Package kdldoc implements a read-only, memory-efficient document model
// for a KDL-ish textual data format: a superset that parses into the same
// token stream as JSON (objects, arrays, strings, numbers, booleans, null).
//
// A Document is built in two passes: a Tokenizer emits structural tokens
// from a UTF-8 buffer, and a Parser records a compact side index (a
// MetadataDB of fixed-width Rows) that lets an Element navigate the parsed
// tree, recover raw spans, and decode values without re-scanning the input.
package kdldoc

// Kind identifies the lexical category of a token/row.
type Kind uint8

const (
	KindStartObject Kind = iota
	KindEndObject
	KindStartArray
	KindEndArray
	KindPropertyName
	KindString
	KindNumber
	KindTrue
	KindFalse
	KindNull
)

// String returns a debug name for the kind.
func (k Kind) String() string {
	switch k {
	case KindStartObject:
		return "StartObject"
	case KindEndObject:
		return "EndObject"
	case KindStartArray:
		return "StartArray"
	case KindEndArray:
		return "EndArray"
	case KindPropertyName:
		return "PropertyName"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// IsSimple reports whether a token is a simple value: everything except
// the container markers and property names.
func (k Kind) IsSimple() bool {
	switch k {
	case KindStartObject, KindEndObject, KindStartArray, KindEndArray, KindPropertyName:
		return false
	default:
		return true
	}
}

// IsContainerStart reports whether k opens a container.
func (k Kind) IsContainerStart() bool {
	return k == KindStartObject || k == KindStartArray
}
