package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedReference matches every *UnresolvedReferenceError.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrInvalidQueryCombination is returned when a max-speed query names
	// both a model and a brand.
	ErrInvalidQueryCombination = errors.New("model and brand are mutually exclusive")

	// ErrUnknownAttribute is returned for an attribute name DistinctValues
	// cannot enumerate.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Reasons a raw car is dropped by the builder. RefBrand and RefSpec are
// unresolved references; RefDuplicate is a repeated car ID.
const (
	RefBrand     = "brand"
	RefSpec      = "spec"
	RefDuplicate = "duplicate"
)

// UnresolvedReferenceError describes a raw car the builder had to drop.
type UnresolvedReferenceError struct {
	CarID int64
	Kind  string
	Ref   int64
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("car %d: %s %d not found", e.CarID, e.Kind, e.Ref)
}

func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}
