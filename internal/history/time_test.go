package history

import (
	"testing"
	"time"
)

func TestDecodeTimeKnownValue(t *testing.T) {
	// 579360 minutes past the 2011-01-01 epoch.
	got := DecodeTime(579360)
	want := time.Date(2012, time.February, 7, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDecodeTimeEpoch(t *testing.T) {
	if got := DecodeTime(0); !got.Equal(time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("offset 0 should decode to the epoch, got %s", got)
	}
}

func TestDecodeTimeDeterministic(t *testing.T) {
	if !DecodeTime(123456).Equal(DecodeTime(123456)) {
		t.Fatal("decoding must be deterministic")
	}
}

func TestDecodeTimeNegativePassesThrough(t *testing.T) {
	got := DecodeTime(-60)
	want := time.Date(2010, time.December, 31, 23, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEncodeTimeRoundTrip(t *testing.T) {
	for _, raw := range []int64{0, 1, 579360, 9999999} {
		if got := EncodeTime(DecodeTime(raw)); got != raw {
			t.Fatalf("round trip of %d gave %d", raw, got)
		}
	}
}
