package oov

import (
	"github.com/emirpasic/gods/sets/hashset"
)

// charDiff is the size of the symmetric difference of the rune sets of a
// and b. A single edit changes it by at most two, so words differing by more
// than twice the edit budget are discarded before aligning them.
func charDiff(a, b string) int {
	sa, sb := runeSet(a), runeSet(b)
	diff := 0
	for _, r := range sa.Values() {
		if !sb.Contains(r) {
			diff++
		}
	}
	for _, r := range sb.Values() {
		if !sa.Contains(r) {
			diff++
		}
	}
	return diff
}

func runeSet(s string) *hashset.Set {
	set := hashset.New()
	for _, r := range s {
		set.Add(r)
	}
	return set
}
