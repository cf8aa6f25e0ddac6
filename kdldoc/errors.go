package kdldoc

import "errors"

// Public error surface (spec §6.3). No other sentinel category exists;
// callers should match against these with errors.Is.
var (
	ErrArgumentNull    = errors.New("kdldoc: argument null")
	ErrDisposed        = errors.New("kdldoc: object disposed")
	ErrIndexOutOfRange = errors.New("kdldoc: index out of range")
	ErrWrongKind       = errors.New("kdldoc: wrong kind")
	ErrInvalidKDL      = errors.New("kdldoc: invalid KDL")
	ErrNotSupported    = errors.New("kdldoc: not supported")
)
