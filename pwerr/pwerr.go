// Package pwerr defines the sentinel errors shared by the walker, the
// strategies and the address space facade. Mapper and callback errors are
// never wrapped in these. An error from a ReadPTE/WritePTE call the walker
// itself makes is wrapped with the level and index of the failing PTE
// (using %w, so errors.Is still matches the mapper's error); every other
// mapper or callback error propagates unchanged.
package pwerr

import "errors"

// ErrPTENotFound is returned by AddressSpace.ReadPTE when the virtual
// address resolves to a non-present intermediate node, so no leaf PTE
// exists to return.
var ErrPTENotFound = errors.New("pagewalk: pte not found")

// ErrPageNotPresent is returned by CopyFrom/CopyTo when the walk reaches a
// non-present leaf PTE.
var ErrPageNotPresent = errors.New("pagewalk: page not present")

// ErrNotImplemented is returned by a Mapper method that a caller did not
// implement (alloc/free/byte-copy are optional; see mapper.Mapper).
var ErrNotImplemented = errors.New("pagewalk: mapper method not implemented")
