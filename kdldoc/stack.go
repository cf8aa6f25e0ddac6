package kdldoc

// parseFrame is the per-container bookkeeping the Parser keeps while a
// container is open (spec §4.1). Rather than the shared/reset/restore
// counter scheme implied by the prose, each frame carries its own running
// totals directly; this is behaviorally equivalent for every row the
// Parser ultimately writes (size_or_length, number_of_rows,
// has_complex_children) and is far less error-prone to get right by
// inspection alone.
type parseFrame struct {
	isArray         bool
	startOffset     int   // byte offset of this container's Start row
	childCount      int32 // array: elements; object: properties
	rowsInContainer int32 // rows contributed by direct children so far: +1 per simple child immediately, +span per container child when it closes
	anyContainerChild bool // array only: at least one direct child is itself a container
}

// parseStack is a LIFO of parseFrame used by the Parser while a document is
// being indexed. It is discarded once parsing completes.
type parseStack struct {
	frames []parseFrame
}

func (s *parseStack) push(f parseFrame) {
	s.frames = append(s.frames, f)
}

func (s *parseStack) pop() parseFrame {
	n := len(s.frames) - 1
	f := s.frames[n]
	s.frames = s.frames[:n]
	return f
}

// peek returns a pointer to the top frame for in-place mutation. It must
// not be retained past the next push, which may reallocate the backing
// array.
func (s *parseStack) peek() *parseFrame {
	return &s.frames[len(s.frames)-1]
}

func (s *parseStack) empty() bool {
	return len(s.frames) == 0
}
