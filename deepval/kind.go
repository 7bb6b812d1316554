package deepval

// Kind identifies the category of a Value. The set of kinds is closed:
// every Value in the model carries exactly one of these tags, and every
// algorithm in this package dispatches on it exhaustively.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindInstant
	KindPattern
	KindSequence
	KindMapping
	KindSet
	KindAssoc
	KindFunc
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindInstant:
		return "instant"
	case KindPattern:
		return "pattern"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindSet:
		return "set"
	case KindAssoc:
		return "assoc"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// IsContainer reports whether values of this kind can hold other values.
// Containers are the kinds that participate in cycle detection.
func (k Kind) IsContainer() bool {
	return k == KindSequence || k == KindMapping || k == KindSet || k == KindAssoc
}
