// Package addrspace provides the AddressSpace facade: a thin, user-facing
// binding of a PageFormat, a root PTE and a Mapper that constructs the
// right strategy and invokes format.Walk/format.WalkMut for each
// operation.
package addrspace

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
	"pagewalk/pwerr"
	"pagewalk/strategies"
)

// AddressSpace binds a page table format, the physical address of its root
// table, and a Mapper, and exposes the user-facing address-space
// operations built on top of the walker.
type AddressSpace[PTE constraints.Unsigned] struct {
	Format *format.PageFormat[PTE]
	Root   PTE
	Mapper mapper.Mapper[PTE]
}

// New binds format, root and m into an AddressSpace.
func New[PTE constraints.Unsigned](f *format.PageFormat[PTE], m mapper.Mapper[PTE], root PTE) *AddressSpace[PTE] {
	return &AddressSpace[PTE]{Format: f, Root: root, Mapper: m}
}

func rangeOf(va uint64, length uint64) format.Range {
	return format.Range{Start: va, End: va + length}
}

// ReadPTE returns the PTE mapping virtual address va, or
// pwerr.ErrPTENotFound if va's walk terminates at a non-present
// intermediate node before reaching a leaf.
func (as *AddressSpace[PTE]) ReadPTE(va uint64) (PTE, error) {
	r := &strategies.Reader[PTE]{}
	if err := format.Walk(as.Mapper, as.Format, as.Root, rangeOf(va, 1), r); err != nil {
		var zero PTE
		return zero, err
	}
	if !r.Found {
		var zero PTE
		return zero, pwerr.ErrPTENotFound
	}
	return r.PTE, nil
}

// WritePTE overwrites the leaf PTE mapping virtual address va with value.
// It does not create any missing intermediate table.
func (as *AddressSpace[PTE]) WritePTE(va uint64, value PTE) error {
	w := &strategies.Writer[PTE]{Value: value}
	return format.WalkMut(as.Mapper, as.Format, as.Root, rangeOf(va, 1), w)
}

// AllocateRange backs [va, va+length) with freshly allocated physical
// pages carrying the given leaf protection mask, allocating whatever
// intermediate tables are missing along the way.
func (as *AddressSpace[PTE]) AllocateRange(va, length uint64, mask PTE) error {
	a := &strategies.Allocator[PTE]{Format: as.Format, Mask: mask, HasMask: true}
	return format.WalkMut(as.Mapper, as.Format, as.Root, rangeOf(va, length), a)
}

// MapRange backs [va, va+length) with the physical extent starting at
// physBase, advancing physBase by each leaf's page size as the walk
// proceeds; suitable for memory-mapped I/O ranges whose physical extent is
// externally owned. Intermediate tables are allocated as needed.
func (as *AddressSpace[PTE]) MapRange(va, length uint64, physBase PTE) error {
	mr := &strategies.MapperRange[PTE]{Format: as.Format, CurrentPhys: physBase}
	return format.WalkMut(as.Mapper, as.Format, as.Root, rangeOf(va, length), mr)
}

// ProtectRange clears the bits in clear and sets the bits in set on every
// present leaf PTE in [va, va+length), never touching the physical
// address, present, or huge-page bits.
func (as *AddressSpace[PTE]) ProtectRange(va, length uint64, clear, set PTE) error {
	p := &strategies.Protector[PTE]{Format: as.Format, Clear: clear, Set: set}
	return format.WalkMut(as.Mapper, as.Format, as.Root, rangeOf(va, length), p)
}

// UnmapRange clears every present leaf PTE in [va, va+length) without
// freeing any physical memory. Page tables are left in place, so ReadPTE
// on an unmapped address then returns the cleared (zero) leaf PTE. Use
// this for ranges whose physical extent (e.g. I/O memory) is not owned by
// this address space.
func (as *AddressSpace[PTE]) UnmapRange(va, length uint64) error {
	r := &strategies.Remover[PTE]{Format: as.Format}
	return format.WalkMut(as.Mapper, as.Format, as.Root, rangeOf(va, length), r)
}

// FreeRange clears every PTE in [va, va+length), freeing each present
// leaf's physical page and freeing any page table that becomes entirely
// empty as a result.
func (as *AddressSpace[PTE]) FreeRange(va, length uint64) error {
	r := &strategies.Remover[PTE]{Format: as.Format, FreePages: true, FreePageTables: true}
	return format.WalkMut(as.Mapper, as.Format, as.Root, rangeOf(va, length), r)
}

// CopyFrom reads len(buf) bytes starting at virtual address va into buf.
// The range must be fully mapped; a non-present leaf, or a non-present
// page table above one, fails the whole copy with pwerr.ErrPageNotPresent.
func (as *AddressSpace[PTE]) CopyFrom(buf []byte, va uint64) error {
	c := &strategies.CopyFrom[PTE]{Format: as.Format, Buf: buf}
	return format.Walk(as.Mapper, as.Format, as.Root, rangeOf(va, uint64(len(buf))), c)
}

// CopyTo writes buf to the physical pages backing [va, va+len(buf)). The
// range must be fully mapped; a non-present leaf, or a non-present page
// table above one, fails the whole copy with pwerr.ErrPageNotPresent.
func (as *AddressSpace[PTE]) CopyTo(va uint64, buf []byte) error {
	c := &strategies.CopyTo[PTE]{Format: as.Format, Buf: buf}
	return format.Walk(as.Mapper, as.Format, as.Root, rangeOf(va, uint64(len(buf))), c)
}
