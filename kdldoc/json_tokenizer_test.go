package kdldoc

import (
	"errors"
	"testing"
)

func readAll(t *testing.T, input string, opts TokenizerOptions) []Kind {
	t.Helper()
	tok, err := NewTokenizer([]byte(input), opts)
	if err != nil {
		t.Fatalf("NewTokenizer(%q): %v", input, err)
	}
	var kinds []Kind
	for {
		ok, err := tok.Read()
		if err != nil {
			t.Fatalf("Read() on %q: %v", input, err)
		}
		if !ok {
			break
		}
		kinds = append(kinds, tok.Kind())
	}
	return kinds
}

func TestTokenizerKindSequence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"object", `{"a":1}`, []Kind{KindStartObject, KindPropertyName, KindNumber, KindEndObject}},
		{"array", `[1,2]`, []Kind{KindStartArray, KindNumber, KindNumber, KindEndArray}},
		{"nested", `[1,[2]]`, []Kind{KindStartArray, KindNumber, KindStartArray, KindNumber, KindEndArray, KindEndArray}},
		{"literals", `[true,false,null]`, []Kind{KindStartArray, KindTrue, KindFalse, KindNull, KindEndArray}},
		{"string_root", `"hi"`, []Kind{KindString}},
		{"number_root", `-3.5e10`, []Kind{KindNumber}},
		{"empty_object", `{}`, []Kind{KindStartObject, KindEndObject}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, tt.input, DefaultTokenizerOptions())
			if len(got) != len(tt.want) {
				t.Fatalf("kind sequence = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("kind[%d] = %v, want %v (full: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestTokenizerValueIsEscaped(t *testing.T) {
	tok, err := NewTokenizer([]byte(`"a\nb"`), DefaultTokenizerOptions())
	if err != nil {
		t.Fatal(err)
	}
	ok, err := tok.Read()
	if err != nil || !ok {
		t.Fatalf("Read() = %v, %v", ok, err)
	}
	if !tok.ValueIsEscaped() {
		t.Fatal("ValueIsEscaped() should be true for an escaped string")
	}

	tok2, err := NewTokenizer([]byte(`"plain"`), DefaultTokenizerOptions())
	if err != nil {
		t.Fatal(err)
	}
	ok, err = tok2.Read()
	if err != nil || !ok {
		t.Fatalf("Read() = %v, %v", ok, err)
	}
	if tok2.ValueIsEscaped() {
		t.Fatal("ValueIsEscaped() should be false for a plain string")
	}
}

func TestTokenizerCommentHandling(t *testing.T) {
	input := `[1, // trailing comment
2]`
	if _, err := NewTokenizer([]byte(input), TokenizerOptions{CommentHandling: CommentsDisallow}); err != nil {
		t.Fatalf("NewTokenizer with CommentsDisallow should still construct: %v", err)
	}
	tok, _ := NewTokenizer([]byte(input), TokenizerOptions{CommentHandling: CommentsDisallow})
	if _, err := readUntilError(tok); err == nil {
		t.Fatal("expected a syntax error for a comment under CommentsDisallow")
	}

	tokSkip, err := NewTokenizer([]byte(input), TokenizerOptions{CommentHandling: CommentsSkip})
	if err != nil {
		t.Fatalf("NewTokenizer with CommentsSkip: %v", err)
	}
	kinds, err := readUntilError(tokSkip)
	if err != nil {
		t.Fatalf("CommentsSkip should tolerate the comment: %v", err)
	}
	want := []Kind{KindStartArray, KindNumber, KindNumber, KindEndArray}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
}

func TestTokenizerCommentsAllowRejected(t *testing.T) {
	_, err := NewTokenizer([]byte(`[]`), TokenizerOptions{CommentHandling: CommentsAllow})
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("NewTokenizer with CommentsAllow: got %v, want ErrNotSupported", err)
	}
}

func TestTokenizerMalformedInput(t *testing.T) {
	tests := []string{
		`{"a":}`,
		`[1,2`,
		`"unterminated`,
		`{"a" 1}`,
		`01`,
		`tru`,
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tok, err := NewTokenizer([]byte(input), DefaultTokenizerOptions())
			if err != nil {
				return // rejected at construction is fine too
			}
			if _, err := readUntilError(tok); err == nil {
				t.Fatalf("expected an error reading %q", input)
			}
		})
	}
}

func readUntilError(tok Tokenizer) ([]Kind, error) {
	var kinds []Kind
	for {
		ok, err := tok.Read()
		if err != nil {
			return kinds, err
		}
		if !ok {
			return kinds, nil
		}
		kinds = append(kinds, tok.Kind())
	}
}
