package kdldoc

import "testing"

func TestPackWordRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		rows    int32
		complex bool
	}{
		{"start_object_simple", KindStartObject, 1, false},
		{"start_array_complex", KindStartArray, 42, true},
		{"null_kind", KindNull, 1, false},
		{"max_rows", KindNumber, int32(rowsMask), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := packWord(tt.kind, tt.rows, tt.complex)
			r := Row{Packed: w}
			if r.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", r.Kind(), tt.kind)
			}
			if r.NumberOfRows() != tt.rows {
				t.Errorf("NumberOfRows() = %d, want %d", r.NumberOfRows(), tt.rows)
			}
			if r.HasComplexChildren() != tt.complex {
				t.Errorf("HasComplexChildren() = %v, want %v", r.HasComplexChildren(), tt.complex)
			}
		})
	}
}

func TestAllKindsFitInTag(t *testing.T) {
	kinds := []Kind{
		KindStartObject, KindEndObject, KindStartArray, KindEndArray,
		KindPropertyName, KindString, KindNumber, KindTrue, KindFalse, KindNull,
	}
	for _, k := range kinds {
		w := packWord(k, 1, false)
		got := Row{Packed: w}.Kind()
		if got != k {
			t.Errorf("kind %d did not survive packing: got %d", k, got)
		}
	}
}

func TestPutGetRow(t *testing.T) {
	buf := make([]byte, RowSize)
	putRow(buf, 0, KindString, 7, 3)
	r := getRow(buf, 0)
	if r.Location != 7 || r.SizeOrLength != 3 || r.Kind() != KindString {
		t.Fatalf("getRow after putRow = %+v", r)
	}
	if r.NumberOfRows() != 1 || r.HasComplexChildren() {
		t.Fatalf("putRow should start with number_of_rows=1, has_complex_children=false, got %+v", r)
	}
}

func TestSetAccessorsRoundTrip(t *testing.T) {
	buf := make([]byte, RowSize)
	putRow(buf, 0, KindStartArray, 0, UnknownSize)
	setLocation(buf, 0, 99)
	setSizeOrLength(buf, 0, 5)
	setNumberOfRows(buf, 0, 12)
	setHasComplexChildren(buf, 0)

	if getLocation(buf, 0) != 99 {
		t.Errorf("location = %d, want 99", getLocation(buf, 0))
	}
	if getSizeOrLength(buf, 0) != 5 {
		t.Errorf("size_or_length = %d, want 5", getSizeOrLength(buf, 0))
	}
	if getNumberOfRows(buf, 0) != 12 {
		t.Errorf("number_of_rows = %d, want 12", getNumberOfRows(buf, 0))
	}
	if !getHasComplexChildren(buf, 0) {
		t.Error("has_complex_children should be set")
	}
	if getKind(buf, 0) != KindStartArray {
		t.Errorf("kind = %v, want StartArray", getKind(buf, 0))
	}
}

func TestUnknownSizeSentinel(t *testing.T) {
	buf := make([]byte, RowSize)
	putRow(buf, 0, KindStartObject, 0, UnknownSize)
	if getSizeOrLength(buf, 0) != UnknownSize {
		t.Fatalf("expected UnknownSize sentinel, got %d", getSizeOrLength(buf, 0))
	}
}
