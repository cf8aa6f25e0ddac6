package kdldoc

import "sync/atomic"

// Document owns the UTF-8 bytes a document was parsed from plus the
// metadataDB indexing them (spec §3.5). It is the entry point for
// navigating a parsed document via Element handles.
type Document struct {
	buf []byte
	db  *metadataDB

	disposable bool // false for clone_subtree output: dispose is a no-op
	pooledBuf  bool // true iff buf was rented from byteBufferPool
	disposed   atomic.Bool
}

func newDocument(buf []byte, db *metadataDB, disposable, pooledBuf bool) *Document {
	return &Document{buf: buf, db: db, disposable: disposable, pooledBuf: pooledBuf}
}

// Root returns an Element cursor at the document's single top-level value.
func (d *Document) Root() *Element {
	return &Element{doc: d, offset: 0}
}

// Dispose releases the document's pooled memory. It is idempotent and safe
// to call concurrently (spec §5.1): exactly one caller among concurrent
// disposers wins the compare-and-swap and performs the release. Documents
// produced by clone_subtree are not disposable and ignore this call.
func (d *Document) Dispose() {
	if !d.disposable {
		return
	}
	if !d.disposed.CompareAndSwap(false, true) {
		return
	}
	if d.pooledBuf && d.buf != nil {
		byteBufferPool.put(d.buf)
	}
	d.db.dispose()
	d.buf = nil
}

func (d *Document) checkAlive() error {
	if d.disposed.Load() {
		return ErrDisposed
	}
	return nil
}

// Digest returns a content fingerprint of the whole document (see
// digest.go). It fails with ErrDisposed if the document has been disposed.
func (d *Document) Digest() (uint64, error) {
	return d.Root().Digest()
}
