package kdldoc

import "testing"

func TestDocumentCheckAliveAfterDispose(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	root := doc.Root()
	doc.Dispose()

	if _, err := root.Kind(); err != ErrDisposed {
		t.Fatalf("Kind() after dispose = %v, want ErrDisposed", err)
	}
	if _, err := doc.Root().Kind(); err != ErrDisposed {
		t.Fatalf("new Root() after dispose should still see disposal: %v", err)
	}
}

func TestDocumentDigest(t *testing.T) {
	doc1 := mustParse(t, `{"a":1,"b":2}`)
	doc2 := mustParse(t, `{"a":1,"b":2}`)
	d1, err := doc1.Digest()
	if err != nil {
		t.Fatal(err)
	}
	d2, err := doc2.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Fatalf("digest of identical documents differs: %x vs %x", d1, d2)
	}

	doc3 := mustParse(t, `{"a":1,"b":3}`)
	d3, err := doc3.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if d1 == d3 {
		t.Fatal("digest of differing documents should not collide (for this trivial case)")
	}
}

func TestDocumentDisposeOnNonDisposableIsNoOp(t *testing.T) {
	doc := mustParse(t, `[1,2]`)
	clone, err := doc.Root().CloneSubtree()
	if err != nil {
		t.Fatal(err)
	}
	clone.Dispose()
	clone.Dispose() // second call must also be safe
	if _, err := clone.Root().ArrayLength(); err != nil {
		t.Fatalf("clone should remain usable after Dispose(): %v", err)
	}
}
