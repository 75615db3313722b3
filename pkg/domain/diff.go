package domain

import "sort"

// MarkingDiff holds the per-place change in tokens between two markings.
// Places whose count did not change are omitted.
type MarkingDiff map[string]int

// Diff calculates the token delta from before to after.
// A nil before is treated as the empty marking, which describes the initial load.
func Diff(before, after Marking) MarkingDiff {
	delta := make(MarkingDiff)

	for id, n := range after {
		if d := n - before[id]; d != 0 {
			delta[id] = d
		}
	}
	// Places that disappeared from after count as drained.
	for id, n := range before {
		if _, ok := after[id]; !ok && n != 0 {
			delta[id] = -n
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff carries any change.
func (d MarkingDiff) IsEmpty() bool {
	return len(d) == 0
}

// Consumed returns the places that lost tokens, sorted.
func (d MarkingDiff) Consumed() []string {
	var ids []string
	for id, n := range d {
		if n < 0 {
			ids = append(ids, id)
		}
	}
	return sortedStrings(ids)
}

// Produced returns the places that gained tokens, sorted.
func (d MarkingDiff) Produced() []string {
	var ids []string
	for id, n := range d {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	return sortedStrings(ids)
}

func sortedStrings(ids []string) []string {
	sort.Strings(ids)
	return ids
}
