package rendezvous

import "testing"

func TestGetIsStableForFixedSiteSet(t *testing.T) {
	m := New("shard-0", "shard-1", "shard-2", "shard-3")

	first := m.Get("some-affinity-key")
	for i := 0; i < 1000; i++ {
		if got := m.Get("some-affinity-key"); got != first {
			t.Fatalf("Get returned %q, want stable %q", got, first)
		}
	}
}

func TestGetDistributesAcrossSites(t *testing.T) {
	m := New("shard-0", "shard-1", "shard-2", "shard-3")

	counts := make(map[string]int)
	for i := 0; i < 10_000; i++ {
		key := string(rune('a' + i%26))
		counts[m.Get(key)]++
	}

	if len(counts) < 2 {
		t.Fatalf("expected keys to spread across multiple sites, got %v", counts)
	}
}

func TestIsEmpty(t *testing.T) {
	if !New().IsEmpty() {
		t.Fatal("Map with no sites should be empty")
	}
	if New("shard-0").IsEmpty() {
		t.Fatal("Map with a site should not be empty")
	}
	if got := New().Get("anything"); got != "" {
		t.Fatalf("Get on an empty Map = %q, want \"\"", got)
	}
}
