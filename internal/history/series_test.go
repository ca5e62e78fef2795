package history

import "testing"

func TestValidValue(t *testing.T) {
	invalid := []int64{-1, 0, -100}
	for _, v := range invalid {
		if ValidValue(v) {
			t.Fatalf("value %d should be invalid", v)
		}
	}
	valid := []int64{1, 50, 1999, 1 << 40}
	for _, v := range valid {
		if !ValidValue(v) {
			t.Fatalf("value %d should be valid", v)
		}
	}
}

func TestPairsEvenLength(t *testing.T) {
	s := RawSeries{10, 500, 20, 300}
	var got [][2]int64
	for ts, v := range s.Pairs() {
		got = append(got, [2]int64{ts, v})
	}
	want := [][2]int64{{10, 500}, {20, 300}}
	if len(got) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPairsOddLengthDropsTrailing(t *testing.T) {
	s := RawSeries{10, 500, 20, 300, 30}
	count := 0
	for range s.Pairs() {
		count++
	}
	if count != 2 {
		t.Fatalf("length-5 series should yield 2 pairs, got %d", count)
	}
}

func TestPairsEmptyAndNil(t *testing.T) {
	for _, s := range []RawSeries{nil, {}, {10}} {
		for range s.Pairs() {
			t.Fatalf("series %v should yield no pairs", s)
		}
	}
}

func TestPairsRestartable(t *testing.T) {
	s := RawSeries{10, 500, 20, 300}
	seq := s.Pairs()
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 2 || second != 2 {
		t.Fatalf("sequence should be restartable, got %d then %d pairs", first, second)
	}
}
