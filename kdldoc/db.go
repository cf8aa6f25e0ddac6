package kdldoc

import "math"

// maxRows is the hard cap on row count: spec §3.3 bounds total backing
// storage to int32.max - RowSize bytes.
const maxRows = (math.MaxInt32 - RowSize) / RowSize

const initialRowCapacity = 64

// metadataDB is an append-only, length-tracking vector of Rows backed by a
// pool-rented byte slice. Row i lives at byte offset i*RowSize within buf.
type metadataDB struct {
	buf    []byte // len(buf) == rows*RowSize; cap(buf) may be larger
	rows   int32
	pooled bool // false for clone_subtree output, which owns a fresh array
}

func newMetadataDB() *metadataDB {
	return &metadataDB{
		buf:    rowBufferPool.get(initialRowCapacity * RowSize)[:0],
		rows:   0,
		pooled: true,
	}
}

func (db *metadataDB) rowOffset(row int32) int { return int(row) * RowSize }

func (db *metadataDB) capacityRows() int32 { return int32(cap(db.buf) / RowSize) }

// append pushes a new row and returns its byte offset.
func (db *metadataDB) append(kind Kind, location uint32, sizeOrLength int32) int {
	if db.rows >= maxRows {
		panic("kdldoc: metadata DB row count exceeds int32 capacity")
	}
	db.growIfNeeded(db.rows + 1)
	off := db.rowOffset(db.rows)
	db.buf = db.buf[:off+RowSize]
	putRow(db.buf, off, kind, location, sizeOrLength)
	db.rows++
	return off
}

func (db *metadataDB) growIfNeeded(neededRows int32) {
	if neededRows <= db.capacityRows() {
		return
	}
	newCapRows := db.capacityRows()
	if newCapRows == 0 {
		newCapRows = initialRowCapacity
	}
	for newCapRows < neededRows {
		newCapRows *= 2
	}
	if newCapRows > maxRows {
		newCapRows = maxRows
	}
	grown := rowBufferPool.get(int(newCapRows) * RowSize)
	copy(grown, db.buf[:db.rows*RowSize])
	if db.pooled {
		rowBufferPool.put(db.buf)
	}
	db.buf = grown[:db.rows*RowSize]
}

func (db *metadataDB) get(rowByteOffset int) Row {
	return getRow(db.buf, rowByteOffset)
}

func (db *metadataDB) setSizeOrLength(rowByteOffset int, v int32) {
	setSizeOrLength(db.buf, rowByteOffset, v)
}

func (db *metadataDB) setNumberOfRows(rowByteOffset int, v int32) {
	setNumberOfRows(db.buf, rowByteOffset, v)
}

func (db *metadataDB) setHasComplexChildren(rowByteOffset int) {
	setHasComplexChildren(db.buf, rowByteOffset)
}

// findIndexOfFirstUnsetSizeOrLength scans backward from the last appended
// row and returns the byte offset of the most recent row of kind whose
// size_or_length is still UnknownSize. Used to locate the matching Start*
// when a container closes.
func (db *metadataDB) findIndexOfFirstUnsetSizeOrLength(kind Kind) (int, bool) {
	for i := db.rows - 1; i >= 0; i-- {
		off := db.rowOffset(i)
		if getKind(db.buf, off) == kind && getSizeOrLength(db.buf, off) == UnknownSize {
			return off, true
		}
	}
	return 0, false
}

// completeAllocations trims the logical view to the rows actually used.
// The pooled backing array keeps its larger capacity until dispose.
func (db *metadataDB) completeAllocations() {
	db.buf = db.buf[:db.rows*RowSize]
}

// copySegment produces a new DB whose rows are the contiguous slice
// [startOffset, endOffset), with every location rebased against bufferBase
// — the original byte offset that the clone's own buffer (byte 0) will
// correspond to. For a container or a non-quoted value this is the root
// row's own location; for a quoted String/PropertyName root it is one byte
// earlier (the opening quote), which is why the base is a parameter rather
// than derived from the root row itself. The new DB owns a freshly
// allocated (non-pooled) array.
func (db *metadataDB) copySegment(startOffset, endOffset int, bufferBase uint32) *metadataDB {
	n := endOffset - startOffset

	fresh := make([]byte, n)
	copy(fresh, db.buf[startOffset:endOffset])

	for off := 0; off < n; off += RowSize {
		loc := getLocation(fresh, off)
		setLocation(fresh, off, loc-bufferBase)
	}

	return &metadataDB{
		buf:    fresh,
		rows:   int32(n / RowSize),
		pooled: false,
	}
}

// dispose zeroes and returns the row-storage buffer to its pool. It is a
// no-op for non-pooled (cloned) DBs.
func (db *metadataDB) dispose() {
	if !db.pooled || db.buf == nil {
		return
	}
	rowBufferPool.put(db.buf)
	db.buf = nil
}
