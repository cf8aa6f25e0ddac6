package kdldoc

import "testing"

func TestDigestBytesStable(t *testing.T) {
	a := digestBytes([]byte("hello"))
	b := digestBytes([]byte("hello"))
	if a != b {
		t.Fatalf("digestBytes not stable: %x vs %x", a, b)
	}
	c := digestBytes([]byte("world"))
	if a == c {
		t.Fatal("digestBytes collided on distinct input (unexpected for this trivial case)")
	}
}

// TestElementDigestMatchesClone checks invariant 7's underlying property:
// a clone's raw bytes are identical to the source, so their digests match.
func TestElementDigestMatchesClone(t *testing.T) {
	doc := mustParse(t, `[1,[2,3],4]`)
	elem, err := doc.Root().ArrayElement(1)
	if err != nil {
		t.Fatal(err)
	}
	origDigest, err := elem.Digest()
	if err != nil {
		t.Fatal(err)
	}

	clone, err := elem.CloneSubtree()
	if err != nil {
		t.Fatal(err)
	}
	cloneDigest, err := clone.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if origDigest != cloneDigest {
		t.Fatalf("clone digest %x != original digest %x", cloneDigest, origDigest)
	}
}
