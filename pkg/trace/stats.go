package trace

import "fmt"

// Stats counts the work done by a Tracer. It is not safe for concurrent use.
type Stats struct {
	Rays       []uint64 // Primary and secondary rays, indexed by depth
	ShadowRays uint64
	SkyHits    uint64
	MaxDepth   int // Deepest level CastRay was entered at
}

// Reset clears all counters.
func (s *Stats) Reset() {
	*s = Stats{}
}

// Total returns the number of rays across all depths.
func (s *Stats) Total() uint64 {
	var n uint64
	for _, r := range s.Rays {
		n += r
	}
	return n
}

func (s *Stats) ray(depth int) {
	for len(s.Rays) <= depth {
		s.Rays = append(s.Rays, 0)
	}
	s.Rays[depth]++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
}

func (s *Stats) String() string {
	return fmt.Sprintf("rays=%d shadow=%d sky=%d depth=%d", s.Total(), s.ShadowRays, s.SkyHits, s.MaxDepth)
}
