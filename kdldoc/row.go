package kdldoc

import "encoding/binary"

// RowSize is the fixed width, in bytes, of every index row: three
// little-endian uint32 words. Row index and byte offset are related by
// this constant multiplier.
const RowSize = 12

// UnknownSize is the sentinel stored in size_or_length while a container
// is still open during parsing.
const UnknownSize int32 = -1

// Bit layout of the packed word (word index 2), MSB first.
//
// The spec reserves bit 31 for has_complex_children and suggests 3 bits
// for the kind tag, widened here to 4 bits because the format has 10
// distinct token kinds (0-9), which does not fit in 3 bits. Widening the
// tag by one bit is explicitly permitted as long as bit 31 stays reserved;
// number_of_rows correspondingly shrinks from 28 to 27 bits (still far
// beyond any realistic document size).
const (
	complexChildrenBit = uint32(1) << 31
	kindShift          = 27
	kindMask           = uint32(0xF) << kindShift
	rowsMask           = uint32(0x07FFFFFF)
)

// Row is the decoded, in-memory shape of one index entry.
type Row struct {
	Location     uint32
	SizeOrLength int32
	Packed       uint32
}

// Kind returns the token kind tag stored in the row.
func (r Row) Kind() Kind {
	return Kind((r.Packed & kindMask) >> kindShift)
}

// NumberOfRows returns the count of rows this row and all its descendants
// occupy, inclusive. For simple tokens this is 1.
func (r Row) NumberOfRows() int32 {
	return int32(r.Packed & rowsMask)
}

// HasComplexChildren reports the complex-children flag (spec §3.4).
func (r Row) HasComplexChildren() bool {
	return r.Packed&complexChildrenBit != 0
}

func packWord(kind Kind, numberOfRows int32, complex bool) uint32 {
	w := (uint32(kind) << kindShift) | (uint32(numberOfRows) & rowsMask)
	if complex {
		w |= complexChildrenBit
	}
	return w
}

// putRow writes a freshly-appended row at byte offset off within buf.
// number_of_rows starts at 1 (overwritten later for containers when their
// matching End* closes), has_complex_children starts clear.
func putRow(buf []byte, off int, kind Kind, location uint32, sizeOrLength int32) {
	binary.LittleEndian.PutUint32(buf[off:], location)
	binary.LittleEndian.PutUint32(buf[off+4:], uint32(sizeOrLength))
	binary.LittleEndian.PutUint32(buf[off+8:], packWord(kind, 1, false))
}

// getRow decodes the row at byte offset off within buf.
func getRow(buf []byte, off int) Row {
	return Row{
		Location:     binary.LittleEndian.Uint32(buf[off:]),
		SizeOrLength: int32(binary.LittleEndian.Uint32(buf[off+4:])),
		Packed:       binary.LittleEndian.Uint32(buf[off+8:]),
	}
}

func getLocation(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off:])
}

func getSizeOrLength(buf []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[off+4:]))
}

func getKind(buf []byte, off int) Kind {
	packed := binary.LittleEndian.Uint32(buf[off+8:])
	return Kind((packed & kindMask) >> kindShift)
}

func getNumberOfRows(buf []byte, off int) int32 {
	packed := binary.LittleEndian.Uint32(buf[off+8:])
	return int32(packed & rowsMask)
}

func getHasComplexChildren(buf []byte, off int) bool {
	packed := binary.LittleEndian.Uint32(buf[off+8:])
	return packed&complexChildrenBit != 0
}

func setLocation(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

func setSizeOrLength(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off+4:], uint32(v))
}

func setNumberOfRows(buf []byte, off int, v int32) {
	packed := binary.LittleEndian.Uint32(buf[off+8:])
	packed = (packed &^ rowsMask) | (uint32(v) & rowsMask)
	binary.LittleEndian.PutUint32(buf[off+8:], packed)
}

func setHasComplexChildren(buf []byte, off int) {
	packed := binary.LittleEndian.Uint32(buf[off+8:])
	packed |= complexChildrenBit
	binary.LittleEndian.PutUint32(buf[off+8:], packed)
}
