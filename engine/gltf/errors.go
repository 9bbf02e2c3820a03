package gltf

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is matched (via errors.Is) by every *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidAccessorType is returned for accessor type tags outside SCALAR, VECn and MATn.
	ErrInvalidAccessorType = errors.New("invalid accessor type")
)

// InvalidEnumCodeError reports a numeric code outside the closed set of a glTF enumeration.
type InvalidEnumCodeError struct {
	// Domain names the enumeration, e.g. "componentType" or "wrapMode".
	Domain string

	// Value is the rejected code.
	Value int
}

func (e *InvalidEnumCodeError) Error() string {
	return fmt.Sprintf("invalid %s code %d", e.Domain, e.Value)
}

// IndexOutOfRangeError reports an index field that points past the end of its collection.
type IndexOutOfRangeError struct {
	// Kind is the collection name, e.g. "accessors".
	Kind string

	// Index is the offending index.
	Index int

	// Len is the length of the collection.
	Len int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range (len %d)", e.Kind, e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) succeed.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
