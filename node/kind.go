package node

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies the shape of a Node.
type Kind int

const (
	KindNull Kind = iota // zero value, also produced by explicit nulls in source documents
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsScalar reports whether the kind is a leaf value.
func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
}

// IsContainer reports whether the kind can be descended into.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}
