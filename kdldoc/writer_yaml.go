package kdldoc

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// YAMLWriter is a Writer that encodes the rewritten subtree as YAML via
// github.com/goccy/go-yaml, which only exposes a tree-based Marshal(any).
// It buffers through treeWriter (see writer_tree.go) and must be closed
// after the structural walk completes.
type YAMLWriter struct {
	treeWriter
	w io.Writer
}

// NewYAMLWriter wraps w as a Writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: w}
}

// Close marshals the accumulated tree. It must be called exactly once,
// after the structural walk that populated it has completed.
func (yw *YAMLWriter) Close() error {
	if !yw.done {
		return fmt.Errorf("kdldoc: yaml writer closed before a complete value was written: %w", ErrInvalidKDL)
	}
	out, err := yaml.Marshal(yw.result)
	if err != nil {
		return err
	}
	_, err = yw.w.Write(out)
	return err
}
