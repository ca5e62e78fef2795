package history

import "time"

// The vendor stores timestamps as whole minutes since its own reference
// epoch rather than the Unix epoch.
var vendorEpoch = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)

// DecodeTime converts a raw minute offset into a calendar instant.
// No range validation: negative or absurd inputs pass through arithmetically.
func DecodeTime(raw int64) time.Time {
	return vendorEpoch.Add(time.Duration(raw) * time.Minute)
}

// EncodeTime converts a calendar instant back into the vendor's minute
// offset, truncating sub-minute precision.
func EncodeTime(t time.Time) int64 {
	return int64(t.Sub(vendorEpoch) / time.Minute)
}
