package registry

import (
	"context"
	"log"
	"time"
)

// StaleAfter is how long a camera can go without a frame before the
// monitor marks it offline. VISCA-over-IP is connectionless, so liveness
// is inferred from traffic recency rather than a ping.
const StaleAfter = 30 * time.Second

// StartMonitoring periodically sweeps the table for entries that have
// gone quiet and flips them offline, logging the transition.
func (s *Store) StartMonitoring(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	now := time.Now()
	for _, c := range s.List() {
		if !c.Online {
			continue
		}
		if now.Sub(c.LastSeen) > StaleAfter {
			s.SetOnline(c.Addr, false)
			log.Printf("[registry] camera %d (%s) went stale, marking offline", c.Address, c.Addr)
		}
	}
}

// Touch records a frame or reply from addr, resetting its staleness
// clock. cmd/viscabridged wires this in as a controller tap per IP camera
// address, so every inbound frame from the camera (ACK, COMPLETE, ERROR,
// including replies to a passthrough client's traffic) counts as a
// liveness signal.
func (s *Store) Touch(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[addr]
	if !ok {
		return
	}
	c.LastSeen = time.Now()
	c.Online = true
	s.data[addr] = c
}
