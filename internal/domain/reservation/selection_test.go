package reservation

import (
	"testing"
	"time"
)

func slot(name string, rank int, start time.Time) Slot {
	return Slot{Preference: Preference{Name: name, Rank: rank}, Start: start}
}

func TestRankCandidatesOrder(t *testing.T) {
	base := time.Date(2024, 6, 7, 19, 0, 0, 0, time.UTC)
	in := []Slot{
		slot("Beta", 2, base),
		slot("Alpha", 1, base.Add(time.Hour)),
		slot("Alpha", 1, base),
		slot("Gamma", 2, base),
	}
	got := RankCandidates(in)

	want := []struct {
		name  string
		start time.Time
	}{
		{"Alpha", base},
		{"Alpha", base.Add(time.Hour)},
		{"Beta", base},
		{"Gamma", base},
	}
	for i, w := range want {
		if got[i].Preference.Name != w.name || !got[i].Start.Equal(w.start) {
			t.Errorf("position %d: got %s@%v, want %s@%v",
				i, got[i].Preference.Name, got[i].Start, w.name, w.start)
		}
	}
}

func TestRankCandidatesDeterministicAcrossPermutations(t *testing.T) {
	base := time.Date(2024, 6, 7, 19, 0, 0, 0, time.UTC)
	a := slot("A", 1, base)
	b := slot("B", 1, base) // same rank, same time: name breaks the tie
	c := slot("C", 3, base.Add(-time.Hour))

	perms := [][]Slot{
		{a, b, c}, {b, a, c}, {c, b, a}, {c, a, b}, {b, c, a}, {a, c, b},
	}
	for _, p := range perms {
		got := RankCandidates(p)
		if got[0].Preference.Name != "A" || got[1].Preference.Name != "B" || got[2].Preference.Name != "C" {
			t.Fatalf("unstable ordering for permutation %v: %v", p, got)
		}
	}
}

func TestRankCandidatesDoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 6, 7, 19, 0, 0, 0, time.UTC)
	in := []Slot{slot("B", 2, base), slot("A", 1, base)}
	_ = RankCandidates(in)
	if in[0].Preference.Name != "B" {
		t.Fatal("input slice was reordered")
	}
}
