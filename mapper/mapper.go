// Package mapper defines the narrow interface the walker and its
// strategies consume to read, write, allocate and free physical memory.
// Implementations live outside this module entirely: the allocator that
// produces physical pages, the translation from a physical address to a
// readable/writable window (identity map, temporary fixed mapping, bus
// master window, or — for userspace testing — a plain Go slice) are all
// external collaborators (spec.md §1, §6).
package mapper

import "golang.org/x/exp/constraints"

// Mapper is the collaborator a PageFormat walk and every strategy in
// package strategies consumes. ReadPTE/WritePTE are required by every
// walk; AllocPage/FreePage are required only by strategies that allocate
// or free pages (Allocator, Remover); ReadBytes/WriteBytes are required
// only by CopyFrom/CopyTo. An implementation that does not support an
// optional method should return pwerr.ErrNotImplemented.
//
// The core never assumes identity mapping and never retains a pointer
// into physical memory between calls; every access is routed back through
// this interface.
type Mapper[PTE constraints.Unsigned] interface {
	// ReadPTE reads one PTE-sized cell at the given physical byte address.
	ReadPTE(phys PTE) (PTE, error)

	// WritePTE writes one PTE-sized cell at the given physical byte
	// address.
	WritePTE(phys PTE, pte PTE) error

	// AllocPage allocates a zeroed physical page suitable for use as a
	// page table or a data page, returning its physical address.
	AllocPage() (PTE, error)

	// FreePage releases a physical page previously returned by
	// AllocPage.
	FreePage(phys PTE) error

	// ReadBytes copies len(dst) bytes from physical memory starting at
	// phys into dst, returning the number of bytes copied.
	ReadBytes(dst []byte, phys PTE) (int, error)

	// WriteBytes copies src into physical memory starting at phys,
	// returning the number of bytes copied.
	WriteBytes(phys PTE, src []byte) (int, error)
}
