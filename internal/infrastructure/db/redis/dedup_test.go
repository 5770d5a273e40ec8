package redis

import (
	"testing"
	"time"
)

func TestDedupKey(t *testing.T) {
	ts := time.Unix(1700000000, 5)

	got := dedupKey("BK00000001", "confirmed", ts)
	want := "dedup:booking:BK00000001:confirmed:1700000000000000005"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if dedupKey("BK00000001", "cancelled", ts) == got {
		t.Fatal("different statuses must not share a key")
	}
}
