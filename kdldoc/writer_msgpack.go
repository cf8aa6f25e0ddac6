package kdldoc

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackWriter is a Writer that encodes the rewritten subtree as MessagePack
// via github.com/vmihailenco/msgpack/v5. It buffers through treeWriter (see
// writer_tree.go) and must be closed after the structural walk completes.
type MsgpackWriter struct {
	treeWriter
	w io.Writer
}

// NewMsgpackWriter wraps w as a Writer.
func NewMsgpackWriter(w io.Writer) *MsgpackWriter {
	return &MsgpackWriter{w: w}
}

// Close encodes the accumulated tree. It must be called exactly once, after
// the structural walk that populated it has completed.
func (mw *MsgpackWriter) Close() error {
	if !mw.done {
		return fmt.Errorf("kdldoc: msgpack writer closed before a complete value was written: %w", ErrInvalidKDL)
	}
	enc := msgpack.NewEncoder(mw.w)
	return enc.Encode(mw.result)
}
