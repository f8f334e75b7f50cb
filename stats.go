package shardpool

// ShardStats reports the depth and capacity of a single shard.
type ShardStats struct {
	Depth    int
	Capacity int
}

// Stats returns a snapshot of every shard's depth and capacity. Values
// are read without synchronization against concurrent Push/Pop, so they
// may be slightly stale, matching the teacher's lock-free Stats().
func (p *Pool) Stats() []ShardStats {
	stats := make([]ShardStats, len(p.shards))
	for i, s := range p.shards {
		stats[i] = ShardStats{Depth: s.Len(), Capacity: s.Capacity()}
	}
	return stats
}
