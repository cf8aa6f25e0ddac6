package kdldoc

// CommentHandling controls how a Tokenizer treats `//` and `/* */`
// sequences outside of strings.
type CommentHandling uint8

const (
	// CommentsDisallow treats any comment sequence as a syntax error. This
	// is the default.
	CommentsDisallow CommentHandling = iota
	// CommentsSkip treats comment sequences as insignificant whitespace;
	// they never reach the token stream.
	CommentsSkip
	// CommentsAllow is rejected at construction time (spec §6.1, §6.3):
	// this format has no comment-preservation story, so "allow" is not a
	// supported mode.
	CommentsAllow
)

// TokenizerOptions configures a Tokenizer.
type TokenizerOptions struct {
	CommentHandling CommentHandling
}

// DefaultTokenizerOptions returns the default (comments disallowed) options.
func DefaultTokenizerOptions() TokenizerOptions {
	return TokenizerOptions{CommentHandling: CommentsDisallow}
}

// Tokenizer is the stateful cursor a Parser drives over a complete UTF-8
// buffer (spec §4.1, §6.1). Read advances and reports true iff a token was
// emitted; the accessor methods below describe the token Read just
// produced.
type Tokenizer interface {
	// Read advances to the next token. It returns false (with nil error)
	// once the buffer is exhausted, and a non-nil error on malformed input.
	Read() (bool, error)

	// Kind is the token kind just read.
	Kind() Kind

	// TokenStartIndex is the byte offset of the structural character that
	// began the token, including any leading quote for strings/property
	// names.
	TokenStartIndex() int

	// ValueSpanLength is the byte length of the emitted payload: for
	// strings/property names this excludes the surrounding quotes; for
	// container markers and End* it is 1; for numbers and literals it is
	// their full byte length.
	ValueSpanLength() int

	// IsInArray reports whether the currently open enclosing container is
	// an array.
	IsInArray() bool

	// ValueIsEscaped reports whether at least one backslash appeared in a
	// just-read string or property-name payload.
	ValueIsEscaped() bool

	// BytesConsumed is the number of input bytes consumed up to and
	// including the just-read token.
	BytesConsumed() int
}
