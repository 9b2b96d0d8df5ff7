package registry

import (
	"testing"
	"time"

	"viscabridge/internal/discovery"
)

func TestObserveCreatesCandidate(t *testing.T) {
	s := NewStore()
	s.Observe(discovery.Candidate{Addr: "192.168.1.30:52381", SeenAt: time.Now()})
	c, ok := s.Get("192.168.1.30:52381")
	if !ok {
		t.Fatal("expected candidate to be registered")
	}
	if c.Kind != KindCandidate || c.Address != -1 {
		t.Fatalf("unexpected candidate: %+v", c)
	}
}

func TestSweepMarksStaleOffline(t *testing.T) {
	s := NewStore()
	s.Upsert(Camera{Address: 1, Kind: KindIP, Addr: "10.0.0.5:52381", Online: true, LastSeen: time.Now().Add(-time.Hour)})
	s.sweep()
	c, _ := s.Get("10.0.0.5:52381")
	if c.Online {
		t.Fatal("expected stale camera to be marked offline")
	}
}

func TestTouchRefreshesOnline(t *testing.T) {
	s := NewStore()
	s.Upsert(Camera{Address: 1, Kind: KindIP, Addr: "10.0.0.5:52381", Online: false, LastSeen: time.Now().Add(-time.Hour)})
	s.Touch("10.0.0.5:52381")
	c, _ := s.Get("10.0.0.5:52381")
	if !c.Online {
		t.Fatal("expected touch to mark camera online")
	}
}
