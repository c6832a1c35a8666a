package strategies

import (
	"golang.org/x/exp/constraints"

	"pagewalk/format"
	"pagewalk/mapper"
)

// Protector changes the protection flags of every present leaf PTE in a
// range without ever altering its physical address, present bit, or
// huge-page indicator. Used by AddressSpace.ProtectRange.
type Protector[PTE constraints.Unsigned] struct {
	format.BaseStrategy[PTE]

	Format *format.PageFormat[PTE]

	// Clear is OR-ed out of (bits to clear), Set is OR-ed in (bits to
	// set), of every matching PTE, after both are masked to exclude the
	// physical address, huge-page and present bits.
	Clear PTE
	Set   PTE
}

// HandlePTE rewrites a present leaf PTE's protection bits.
func (p *Protector[PTE]) HandlePTE(_ mapper.Mapper[PTE], pteType format.PteType, _ format.Range, pte *PTE) error {
	if !pteType.IsPage() {
		return nil
	}
	l := p.Format.Levels[pteType.Level]
	if !l.IsPresent(*pte) {
		return nil
	}

	// Protection changes may never silently unmap a page, change its
	// physical address, or flip its huge-page classification.
	safe := ^(p.Format.PhysicalMask | l.HugePageBit.Mask | l.PresentBit.Mask)
	clear := p.Clear & safe
	set := p.Set & safe

	*pte = (*pte &^ clear) | set
	return nil
}
