// Package format describes a full page table hierarchy (an ordered list of
// levels from leaf to root) and implements the recursive walker that
// traverses it, invoking a caller-supplied Strategy at every PTE.
package format

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"

	"pagewalk/level"
	"pagewalk/mapper"
)

// Range is a half-open virtual-address interval [Start, End).
type Range struct {
	Start uint64
	End   uint64
}

// Empty reports whether the range contains no addresses.
func (r Range) Empty() bool { return r.Start >= r.End }

// Strategy is the callback bundle a walk invokes at every PTE it visits.
// All three methods are optional in spirit (a BaseStrategy embed supplies
// no-op defaults); a type need only override the ones it cares about.
//
// handlePte fires for every PTE in ascending VA order. handlePteHole fires
// immediately after, only when the PTE is not present. handlePostPte fires
// after all of a page table PTE's descendants have been visited (it never
// fires for a terminal page). Any error returned from any method aborts
// the walk immediately and is propagated to the caller verbatim.
type Strategy[PTE constraints.Unsigned] interface {
	HandlePTE(m mapper.Mapper[PTE], pteType PteType, r Range, pte *PTE) error
	HandlePTEHole(m mapper.Mapper[PTE], level int, r Range, pte *PTE) error
	HandlePostPTE(m mapper.Mapper[PTE], level int, r Range, pte *PTE) error
}

// BaseStrategy supplies no-op implementations of every Strategy method.
// Concrete strategies embed it and override only what they need.
type BaseStrategy[PTE constraints.Unsigned] struct{}

func (BaseStrategy[PTE]) HandlePTE(mapper.Mapper[PTE], PteType, Range, *PTE) error { return nil }
func (BaseStrategy[PTE]) HandlePTEHole(mapper.Mapper[PTE], int, Range, *PTE) error { return nil }
func (BaseStrategy[PTE]) HandlePostPTE(mapper.Mapper[PTE], int, Range, *PTE) error { return nil }

// PageFormat describes the page table hierarchy: an ordered sequence of
// levels (index 0 = leaf, last index = root), the mask of PTE bits that
// form a physical address, and the byte size of one PTE.
type PageFormat[PTE constraints.Unsigned] struct {
	// Levels lists the hierarchy from leaf (index 0) to root (last
	// index); shift_bits must strictly increase with index.
	Levels []level.PageLevel[PTE]

	// PhysicalMask selects the bits of a PTE that form a child physical
	// address.
	PhysicalMask PTE

	// PTESize is the number of bytes occupied by one PTE in a page
	// table (4 for 32-bit formats, 8 for 64-bit formats).
	PTESize int
}

// VirtualMask is the largest value of level.Mask()|(level.PageSize()-1)
// across all levels. Its highest set bit is the sign bit used by
// SignExtend.
func (f *PageFormat[PTE]) VirtualMask() uint64 {
	var m uint64
	for _, l := range f.Levels {
		v := l.Mask() | (l.PageSize() - 1)
		if v > m {
			m = v
		}
	}
	return m
}

// SignExtend sign-extends addr according to this format's virtual address
// width: if the sign bit (the highest set bit of VirtualMask) is set, all
// bits above VirtualMask are set too, modelling a canonical-address
// architecture (x86-64, AArch64). Formats with no canonical-address gap
// (VirtualMask covering every bit) leave every address unchanged.
func (f *PageFormat[PTE]) SignExtend(addr uint64) uint64 {
	vmask := f.VirtualMask()
	if vmask == 0 {
		return addr
	}
	signBit := uint64(1) << (bits.Len64(vmask) - 1)
	if addr&signBit == signBit {
		return addr | ^vmask
	}
	return addr
}

func (f *PageFormat[PTE]) clampLevel(index int) int {
	if index >= len(f.Levels) {
		return len(f.Levels) - 1
	}
	return index
}

// pageRanges enumerates the (pteIndex, subRange) pairs covering rng at the
// given level, in ascending VA order, sign-extending the cursor at each
// step as described in spec.md §4.1 step 2.
func (f *PageFormat[PTE]) pageRanges(l level.PageLevel[PTE], rng Range) []struct {
	index uint64
	sub   Range
} {
	// No emptiness check here: a top-level call is already guaranteed
	// non-empty by Walk/WalkMut, and a recursive call always receives a
	// pr.sub built from a valid loop iteration below — one whose Start may
	// carry SignExtend's high noise bits for a full-width (non-canonical)
	// preset, which would make a naive rng.Empty() compare wrong rather
	// than informative.
	iStart := l.PteIndex(rng.Start)
	iEnd := l.PteIndex(rng.End - 1)

	out := make([]struct {
		index uint64
		sub   Range
	}, 0, int(iEnd-iStart+1))

	state := f.SignExtend(rng.Start)
	for i := iStart; i <= iEnd; i++ {
		end := l.End(state)
		if end > rng.End-1 {
			end = rng.End - 1
		}
		// iStart/iEnd above already bound this loop to exactly the
		// indices whose page contains an address in [rng.Start,
		// rng.End), so every iteration's sub-range is non-empty in the
		// VA domain it indexes; a naive Range.Empty() check here would
		// misfire for a full-width (non-canonical) preset, where
		// SignExtend ORs high noise bits into state that make it look,
		// as a raw uint64, larger than the capped end even though the
		// PTE it names is real and must still be visited.
		out = append(out, struct {
			index uint64
			sub   Range
		}{i, Range{Start: state, End: end + 1}})
		state = f.SignExtend(l.End(state) + 1)
	}
	return out
}

func (f *PageFormat[PTE]) pteAddr(tableAddr PTE, index uint64) PTE {
	return tableAddr + PTE(index)*PTE(f.PTESize)
}

// Walk visits every PTE whose VA sub-range intersects rng, in ascending VA
// order, across the hierarchy rooted at rootPhys, invoking strategy's
// callbacks. It does not write any PTE back: mutations a strategy makes to
// the pointer it is handed are not persisted. See WalkMut for the
// mutating variant.
func Walk[PTE constraints.Unsigned](m mapper.Mapper[PTE], f *PageFormat[PTE], rootPhys PTE, rng Range, strategy Strategy[PTE]) error {
	if rng.Empty() {
		return nil
	}
	return f.doWalk(m, rootPhys, len(f.Levels)-1, rng, strategy)
}

func (f *PageFormat[PTE]) doWalk(m mapper.Mapper[PTE], phys PTE, index int, rng Range, strategy Strategy[PTE]) error {
	index = f.clampLevel(index)
	l := f.Levels[index]

	for _, pr := range f.pageRanges(l, rng) {
		addr := f.pteAddr(phys, pr.index)
		pte, err := m.ReadPTE(addr)
		if err != nil {
			return fmt.Errorf("pagewalk: read pte at level %d index %d: %w", index, pr.index, err)
		}

		pteType := classifyPTE(index, l, pte)

		if err := strategy.HandlePTE(m, pteType, pr.sub, &pte); err != nil {
			return err
		}
		if !l.IsPresent(pte) {
			if err := strategy.HandlePTEHole(m, index, pr.sub, &pte); err != nil {
				return err
			}
		}
		// A page table entry that is still not present after giving the
		// strategy a chance to fill the hole has no child table to
		// recurse into: unlike the table-mapping Mapper this walker is
		// adapted from, ReadPTE/WritePTE never fail on a bogus physical
		// address, so presence is the only signal that a child exists.
		if pteType.IsPage() || !l.IsPresent(pte) {
			continue
		}

		childPhys := pte & f.PhysicalMask
		if err := f.doWalk(m, childPhys, index-1, pr.sub, strategy); err != nil {
			return err
		}
		if err := strategy.HandlePostPTE(m, index, pr.sub, &pte); err != nil {
			return err
		}
	}
	return nil
}

// WalkMut visits every PTE whose VA sub-range intersects rng, exactly as
// Walk does, but writes each PTE back to the mapper: once immediately
// after HandlePTE/HandlePTEHole (so allocations a strategy makes take
// effect before recursing into a freshly allocated child table), and again
// after HandlePostPTE (so a post-callback that tears down a page table by
// zeroing its parent PTE is committed).
func WalkMut[PTE constraints.Unsigned](m mapper.Mapper[PTE], f *PageFormat[PTE], rootPhys PTE, rng Range, strategy Strategy[PTE]) error {
	if rng.Empty() {
		return nil
	}
	return f.doWalkMut(m, rootPhys, len(f.Levels)-1, rng, strategy)
}

func (f *PageFormat[PTE]) doWalkMut(m mapper.Mapper[PTE], phys PTE, index int, rng Range, strategy Strategy[PTE]) error {
	index = f.clampLevel(index)
	l := f.Levels[index]

	for _, pr := range f.pageRanges(l, rng) {
		addr := f.pteAddr(phys, pr.index)
		pte, err := m.ReadPTE(addr)
		if err != nil {
			return fmt.Errorf("pagewalk: read pte at level %d index %d: %w", index, pr.index, err)
		}

		pteType := classifyPTE(index, l, pte)

		if err := strategy.HandlePTE(m, pteType, pr.sub, &pte); err != nil {
			return err
		}
		if !l.IsPresent(pte) {
			if err := strategy.HandlePTEHole(m, index, pr.sub, &pte); err != nil {
				return err
			}
		}
		if err := m.WritePTE(addr, pte); err != nil {
			return fmt.Errorf("pagewalk: write pte at level %d index %d: %w", index, pr.index, err)
		}

		if pteType.IsPage() || !l.IsPresent(pte) {
			continue
		}

		childPhys := pte & f.PhysicalMask
		if err := f.doWalkMut(m, childPhys, index-1, pr.sub, strategy); err != nil {
			return err
		}
		if err := strategy.HandlePostPTE(m, index, pr.sub, &pte); err != nil {
			return err
		}
		if err := m.WritePTE(addr, pte); err != nil {
			return fmt.Errorf("pagewalk: write back post-pte at level %d index %d: %w", index, pr.index, err)
		}
	}
	return nil
}

func classifyPTE[PTE constraints.Unsigned](index int, l level.PageLevel[PTE], pte PTE) PteType {
	if index == 0 || l.IsHugePage(pte) {
		return PteType{Kind: KindPage, Level: index}
	}
	return PteType{Kind: KindPageTable, Level: index}
}
