// Package rendezvous implements rendezvous (highest random weight)
// hashing: the site whose combined hash with a key is largest wins,
// so a given key always maps to the same site for a fixed site set.
//
// Grounded in go-redis's internal/rendezvoushash.Map, ported from
// xxhash v1's Sum64([]byte) to xxhash/v2's Sum64 of the same signature.
package rendezvous

import "github.com/cespare/xxhash/v2"

// Map holds a fixed set of sites to rendezvous-hash keys against.
type Map struct {
	sites []string
}

// New builds a Map over the given sites.
func New(sites ...string) *Map {
	m := &Map{}
	m.sites = append(m.sites, sites...)
	return m
}

// IsEmpty reports whether the map has no sites.
func (m *Map) IsEmpty() bool {
	return len(m.sites) == 0
}

// Get returns the site whose hash with key has the largest weight.
func (m *Map) Get(key string) string {
	if m.IsEmpty() {
		return ""
	}

	var targetSite string
	var maxWeight uint64

	buf := make([]byte, len(key), 2*len(key))
	copy(buf, key)
	for _, site := range m.sites {
		buf = buf[:len(key)]
		buf = append(buf, site...)
		weight := xxhash.Sum64(buf)
		if weight > maxWeight {
			maxWeight = weight
			targetSite = site
		}
	}
	return targetSite
}
