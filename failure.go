package semequal

import (
	"encoding/json"
	"fmt"
)

// FailureKind names the way two documents diverge
type FailureKind string

const (
	// FKTypeMismatch means nodes at the same path have different types
	FKTypeMismatch = FailureKind("TypeMismatch")
	// FKUnexpectedPresence means one side has a value where the other has none
	FKUnexpectedPresence = FailureKind("UnexpectedPresence")
	// FKObjectSizeMismatch means two objects have a different number of keys
	FKObjectSizeMismatch = FailureKind("ObjectSizeMismatch")
	// FKMissingProperty means a key of the expected object is absent from the
	// actual object
	FKMissingProperty = FailureKind("MissingProperty")
	// FKArrayLengthMismatch means two arrays differ in length
	FKArrayLengthMismatch = FailureKind("ArrayLengthMismatch")
	// FKValueMismatch means two scalars of the same type hold different values
	FKValueMismatch = FailureKind("ValueMismatch")
)

// Side identifies one of the two compared documents
type Side string

const (
	// SideExpected is the reference document
	SideExpected = Side("expected")
	// SideActual is the document under test
	SideActual = Side("actual")
)

// Failure describes the first difference found between an expected and an
// actual document
type Failure struct {
	Kind FailureKind
	// Path addresses the diverging node from the document root, in
	// dotted / bracketed notation. for MissingProperty it addresses the
	// missing key
	Path string

	// Expected & Actual are the diverging sub-trees. for MissingProperty they
	// are the two objects holding (or lacking) Key. for UnexpectedPresence the
	// absent side is nil
	Expected *Node
	Actual   *Node

	ExpectedType NodeType
	ActualType   NodeType

	// Side is the document that holds a value, set for UnexpectedPresence
	Side Side
	// Key is the missing property name, set for MissingProperty
	Key string
}

// Error implements the error interface with the one-line form of the failure
func (f *Failure) Error() string {
	switch f.Kind {
	case FKTypeMismatch:
		return typeMismatchMessage(f)
	case FKUnexpectedPresence:
		return presenceMessage(f)
	case FKObjectSizeMismatch:
		return fmt.Sprintf("Objects for path %s are different: %d keys, expected %d", f.Path, f.Actual.Len(), f.Expected.Len())
	case FKMissingProperty:
		return fmt.Sprintf("Property: '%s' is missing in actual object", f.Path)
	case FKArrayLengthMismatch:
		return fmt.Sprintf("Arrays for path %s have different length: %d, expected %d", f.Path, f.Actual.Len(), f.Expected.Len())
	case FKValueMismatch:
		return fmt.Sprintf("Values for path %s are different. Expected: %s Actual: %s", f.Path, scalarString(f.Expected), scalarString(f.Actual))
	}
	return fmt.Sprintf("unknown failure at path %s", f.Path)
}

// MissingValue returns the expected value that has no counterpart in the
// actual object of a MissingProperty failure
func (f *Failure) MissingValue() *Node {
	if f.Kind != FKMissingProperty {
		return nil
	}
	v, _ := f.Expected.Get(f.Key)
	return v
}

func typeMismatchMessage(f *Failure) string {
	return fmt.Sprintf("Token of path '%s' of type %s is different from '%s' of type %s", f.Path, f.ExpectedType, f.Path, f.ActualType)
}

func presenceMessage(f *Failure) string {
	if f.Side == SideExpected {
		return fmt.Sprintf("Token of path '%s' of type %s is missing in actual", f.Path, f.ExpectedType)
	}
	return fmt.Sprintf("Token of path '%s' of type %s is unexpected in actual", f.Path, f.ActualType)
}

// MarshalJSON implements a custom JSON Marshaller, writing sub-trees as the
// JSON they were decoded from
func (f *Failure) MarshalJSON() ([]byte, error) {
	v := struct {
		Kind         FailureKind     `json:"kind"`
		Path         string          `json:"path"`
		Expected     json.RawMessage `json:"expected,omitempty"`
		Actual       json.RawMessage `json:"actual,omitempty"`
		ExpectedType string          `json:"expectedType,omitempty"`
		ActualType   string          `json:"actualType,omitempty"`
		Side         Side            `json:"side,omitempty"`
		Key          string          `json:"key,omitempty"`
	}{
		Kind: f.Kind,
		Path: f.Path,
		Side: f.Side,
		Key:  f.Key,
	}
	if f.Expected != nil {
		v.Expected = json.RawMessage(compact(f.Expected))
		v.ExpectedType = f.ExpectedType.String()
	}
	if f.Actual != nil {
		v.Actual = json.RawMessage(compact(f.Actual))
		v.ActualType = f.ActualType.String()
	}
	return json.Marshal(v)
}

// ReportError is returned by CompareJSON. Its message is the full report
// produced by Render, & it unwraps to the underlying *Failure
type ReportError struct {
	Failure  *Failure
	Expected *Node
	Actual   *Node
}

func (e *ReportError) Error() string {
	return Render(e.Expected, e.Actual, e.Failure)
}

// Unwrap returns the underlying failure, supporting errors.As
func (e *ReportError) Unwrap() error {
	return e.Failure
}
