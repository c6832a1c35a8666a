package strategies

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
)

// Writer overwrites an existing leaf PTE with a caller-supplied value. It
// does not create intermediate tables: use Allocator or MapperRange for
// that. Used by AddressSpace.WritePTE.
type Writer[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	Value PTE
}

// HandlePTE overwrites pte with w.Value if the walk terminated in a page
// mapping.
func (w *Writer[PTE]) HandlePTE(_ mapper.Mapper[PTE], pteType format.PteType, _ format.Range, pte *PTE) error {
	if pteType.IsPage() {
		*pte = w.Value
	}
	return nil
}
