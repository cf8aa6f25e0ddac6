package kdldoc

import (
	"fmt"
	"strconv"
)

// treeWriter accumulates structural calls into a Go `any` tree, mirroring
// the Parser's own open-container stack. It backs both MsgpackWriter and
// YAMLWriter (spec §4.7): neither library's encoder can accept our
// structural calls directly, since a length-or-key-prefixed wire format
// needs to know a container's size/keys before its first element arrives,
// which a pure push sink does not supply. Both sinks buffer via this tree
// and encode the finished value on Close.
//
// Object key order is not preserved (objects become plain map[string]any);
// this only affects the two convenience sinks, not JSONWriter, which is the
// one the writer round-trip invariant is tested against.
type treeWriter struct {
	stack  []treeFrame
	result any
	done   bool
}

type treeFrame struct {
	isArray    bool
	arr        []any
	obj        map[string]any
	pendingKey string
	haveKey    bool
}

func (t *treeWriter) WriteStartObject() error {
	t.stack = append(t.stack, treeFrame{obj: map[string]any{}})
	return nil
}

func (t *treeWriter) WriteEndObject() error { return t.closeContainer() }

func (t *treeWriter) WriteStartArray() error {
	t.stack = append(t.stack, treeFrame{isArray: true, arr: []any{}})
	return nil
}

func (t *treeWriter) WriteEndArray() error { return t.closeContainer() }

func (t *treeWriter) closeContainer() error {
	n := len(t.stack) - 1
	top := t.stack[n]
	var val any
	if top.isArray {
		val = top.arr
	} else {
		val = top.obj
	}
	t.stack = t.stack[:n]
	return t.emit(val)
}

func (t *treeWriter) emit(val any) error {
	if len(t.stack) == 0 {
		t.result = val
		t.done = true
		return nil
	}
	top := &t.stack[len(t.stack)-1]
	if top.isArray {
		top.arr = append(top.arr, val)
		return nil
	}
	if !top.haveKey {
		return fmt.Errorf("kdldoc: value written without a preceding property name: %w", ErrInvalidKDL)
	}
	top.obj[top.pendingKey] = val
	top.haveKey = false
	return nil
}

func (t *treeWriter) WritePropertyName(name []byte) error {
	if len(t.stack) == 0 || t.stack[len(t.stack)-1].isArray {
		return fmt.Errorf("kdldoc: property name outside object: %w", ErrInvalidKDL)
	}
	top := &t.stack[len(t.stack)-1]
	top.pendingKey = string(name)
	top.haveKey = true
	return nil
}

func (t *treeWriter) WriteStringValue(value []byte) error {
	return t.emit(string(value))
}

func (t *treeWriter) WriteNumberValue(raw []byte) error {
	if i, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return t.emit(i)
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("kdldoc: malformed number %q: %w", raw, ErrInvalidKDL)
	}
	return t.emit(f)
}

func (t *treeWriter) WriteBooleanValue(v bool) error { return t.emit(v) }

func (t *treeWriter) WriteNullValue() error { return t.emit(nil) }
