// File: observability/prometheus/event_poller.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Periodically drains the scheduler's profile event rings into per-kind
// counters. The rings are lossy by design; the poller interval bounds how
// much history can be overwritten between drains.

package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/momentics/hioload-sched/api"

	prom "github.com/prometheus/client_golang/prometheus"
)

// ProfileSource drains buffered profile events.
type ProfileSource interface {
	DrainProfile(dst []api.ProfileEvent) int
}

// EventPoller converts the profile event stream into Prometheus counters.
type EventPoller struct {
	source   ProfileSource
	interval time.Duration
	events   *prom.CounterVec

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewEventPoller creates a poller and registers its counter vector with
// reg (DefaultRegisterer when nil).
func NewEventPoller(namespace string, source ProfileSource, interval time.Duration, reg prom.Registerer) (*EventPoller, error) {
	if namespace == "" {
		namespace = "hioload_sched"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}
	vec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "profile_events_total",
		Help:      "Profile events drained from worker rings, by kind.",
	}, []string{"kind"})
	if err := reg.Register(vec); err != nil {
		return nil, err
	}
	return &EventPoller{
		source:   source,
		interval: interval,
		events:   vec,
	}, nil
}

// Start launches the polling loop. Safe to call once.
func (p *EventPoller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	go p.loop(ctx)
}

// Stop halts polling after a final drain.
func (p *EventPoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	cancel()
	<-done
}

func (p *EventPoller) loop(ctx context.Context) {
	defer close(p.done)
	buf := make([]api.ProfileEvent, 4096)
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			p.drain(buf)
			return
		case <-t.C:
			p.drain(buf)
		}
	}
}

func (p *EventPoller) drain(buf []api.ProfileEvent) {
	for {
		n := p.source.DrainProfile(buf)
		if n == 0 {
			return
		}
		for _, ev := range buf[:n] {
			p.events.WithLabelValues(ev.Kind.String()).Inc()
		}
		if n < len(buf) {
			return
		}
	}
}
