package reservation

import "sort"

// RankCandidates orders candidate slots by preference rank ascending, then
// slot start time ascending, then restaurant name ascending. The ordering is
// total, so re-running over the same candidates always books the same slot.
func RankCandidates(candidates []Slot) []Slot {
	out := make([]Slot, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Preference.Rank != b.Preference.Rank {
			return a.Preference.Rank < b.Preference.Rank
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.Preference.Name < b.Preference.Name
	})
	return out
}
