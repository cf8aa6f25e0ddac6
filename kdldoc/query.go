package kdldoc

import (
	"fmt"

	"github.com/theory/jsonpath"
)

// Select evaluates a JSONPath expression against a parsed document (spec
// SPEC_FULL §6.6). It is a read-only, allocating convenience layer over the
// core element-walk API: the subtree is first converted to a Go `any` tree
// using the same decoding rules as Element.GetString/TryGet* (escapes
// resolved, numbers become int64/float64), then evaluated with
// github.com/theory/jsonpath.
func Select(doc *Document, path string) ([]any, error) {
	p, err := jsonpath.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("kdldoc: invalid JSONPath %q: %w", path, err)
	}
	tree, err := elementToAny(doc.Root())
	if err != nil {
		return nil, err
	}
	return p.Select(tree), nil
}

func elementToAny(e *Element) (any, error) {
	kind, err := e.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindNull:
		return nil, nil
	case KindTrue:
		return true, nil
	case KindFalse:
		return false, nil
	case KindNumber:
		if v, ok, err := e.TryGetInt64(); err != nil {
			return nil, err
		} else if ok {
			return v, nil
		}
		v, ok, err := e.TryGetFloat64()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("kdldoc: malformed number: %w", ErrInvalidKDL)
		}
		return v, nil
	case KindString:
		return e.GetString()
	case KindStartArray:
		n, err := e.ArrayLength()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, n)
		for i := int32(0); i < n; i++ {
			child, err := e.ArrayElement(int(i))
			if err != nil {
				return nil, err
			}
			v, err := elementToAny(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case KindStartObject:
		n, err := e.PropertyCount()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, n)
		for i := int32(0); i < n; i++ {
			prop, err := e.GetProperty(int(i))
			if err != nil {
				return nil, err
			}
			name, err := prop.Name()
			if err != nil {
				return nil, err
			}
			v, err := elementToAny(prop.Value)
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil
	default:
		return nil, ErrWrongKind
	}
}
