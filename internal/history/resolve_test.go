package history

import (
	"testing"

	"github.com/shopspring/decimal"
)

func latestRank(s RawSeries) (Observation, bool) {
	return Latest(s, KindRank)
}

func TestResolveFallsBackPastInvalidCandidate(t *testing.T) {
	cands := []Candidate{
		{Slot: "A", Series: RawSeries{10, -1, 20, -1}},
		{Slot: "B", Series: RawSeries{10, 7}},
	}
	res, ok := Resolve(cands, latestRank)
	if !ok {
		t.Fatal("expected a result")
	}
	if res.Slot != "B" {
		t.Fatalf("expected source slot B, got %s", res.Slot)
	}
	if !res.Value.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expected value 7, got %s", res.Value)
	}
}

func TestResolveFirstSuccessWins(t *testing.T) {
	cands := []Candidate{
		{Slot: "A", Series: RawSeries{10, 5}},
		{Slot: "B", Series: RawSeries{99, 1}},
	}
	res, ok := Resolve(cands, latestRank)
	if !ok || res.Slot != "A" {
		t.Fatalf("first valid candidate must win, got slot %s", res.Slot)
	}
}

func TestResolveAllAbsent(t *testing.T) {
	cands := []Candidate{
		{Slot: "A", Series: nil},
		{Slot: "B", Series: RawSeries{10, -1}},
	}
	if _, ok := Resolve(cands, latestRank); ok {
		t.Fatal("expected no result")
	}
}

func TestResolveNoCandidates(t *testing.T) {
	if _, ok := Resolve(nil, latestRank); ok {
		t.Fatal("expected no result for empty candidate list")
	}
}
