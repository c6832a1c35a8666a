// Package strategies implements the concrete walker strategies composed on
// top of format.Walk/format.WalkMut to back the AddressSpace facade: Reader,
// Writer, Allocator, MapperRange, Protector, Remover, CopyFrom and CopyTo.
package strategies

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
)

// Reader captures the PTE for a single virtual address. Used by
// AddressSpace.ReadPTE, which walks [va, va+1) with a Reader and inspects
// Found/PTE afterward.
type Reader[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	PTE   PTE
	Found bool
}

// HandlePTE stores pte if the walk terminated in a page mapping.
func (r *Reader[PTE]) HandlePTE(_ mapper.Mapper[PTE], pteType format.PteType, _ format.Range, pte *PTE) error {
	if pteType.IsPage() {
		r.PTE = *pte
		r.Found = true
	}
	return nil
}
