package jsondelta

import "errors"

var (
	// ErrUnknownOpcode documents the closed wire opcode alphabet. Decoding a
	// Delta off the wire never returns it directly: an unrecognized opcode
	// decodes to (and is applied as) a no-op, per the receiver contract.
	// ValidateDelta returns it, wrapped with the offending key path, for
	// callers that want to pre-validate a Delta before applying it instead
	// of letting an unrecognized opcode silently no-op.
	ErrUnknownOpcode = errors.New("jsondelta: unknown opcode")

	// ErrTypeMismatch is returned when an Operation's opcode is applied to
	// a Value of a kind it cannot act on, for example an "I" (integer
	// delta) op against a string. The source spec leaves this case
	// undefined; this engine surfaces a typed error rather than guessing.
	ErrTypeMismatch = errors.New("jsondelta: opcode applied to a value of the wrong kind")

	// ErrEmbeddedNewline is returned when a list element's JSON encoding
	// contains a newline, which would corrupt the one-record-per-line
	// framing used by the "dL" (list text delta) opcode.
	ErrEmbeddedNewline = errors.New("jsondelta: array element contains an embedded newline")

	// ErrNotAnObject / ErrNotAList are returned by RequireObject / RequireList,
	// the pre-validation guards for callers about to route a caller-supplied
	// Value into ApplyObjectDiff/TransformObjectDiff or
	// ApplyListDiff/TransformListDiff.
	ErrNotAnObject = errors.New("jsondelta: value is not an object")
	ErrNotAList    = errors.New("jsondelta: value is not an array")
)
