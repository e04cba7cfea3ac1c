package mcts

import "time"

type ListenerStats struct {
	Trials     int
	Maxdepth   int
	TimeMs     int
	Size       int
	BestMove   int
	Eval       float64 // mean score of BestMove, from the automated player's perspective
	Probe      ProbeResult
	StopReason StopReason
}

// Convert search state to 'ListenerStats' struct
func toListenerStats(s *search) ListenerStats {
	stats := ListenerStats{
		Trials:     int(s.limiter.Trials()),
		Maxdepth:   s.maxdepth,
		TimeMs:     int(time.Since(s.start).Milliseconds()),
		Size:       s.size,
		BestMove:   -1,
		Probe:      s.probe,
		StopReason: s.limiter.StopReason(),
	}

	// Most visited child, doesn't touch the random generator
	var best *Node
	for i := range s.root.Children {
		child := &s.root.Children[i]
		if best == nil || child.N() > best.N() {
			best = child
		}
	}
	if best != nil {
		stats.BestMove = best.Move
		stats.Eval = best.Mean()
	}
	return stats
}

// Listener function callback, will recieve current search statistics
type ListenerFunc func(ListenerStats)

type StatsListener struct {
	// called every N trials
	onCycle ListenerFunc
	nCycles int

	// called when a short trial triggers the probe, before it runs
	onEngage ListenerFunc

	// called after the tactical probe ran
	onProbe ListenerFunc

	// called when the search stops
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on trial callback, computing the stats walks the root's children,
// so keep the interval reasonably large
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach 'tactical probe engaged' callback, stats.Probe.Status is Engaged
func (listener *StatsListener) OnEngage(onEngage ListenerFunc) *StatsListener {
	listener.onEngage = onEngage
	return listener
}

// Attach 'tactical probe finished' callback, stats carry the verdict
func (listener *StatsListener) OnProbe(onProbe ListenerFunc) *StatsListener {
	listener.onProbe = onProbe
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}
