package mcts

type StopReason int

const (
	StopNone         StopReason = 0
	StopTrials       StopReason = 1 // Trial budget exhausted
	StopImmediateWin StopReason = 2 // Tactical probe found a winning move
	StopForcedMove   StopReason = 4 // Tactical probe left a single move that doesn't lose
	StopMinimax      StopReason = 8 // Full-depth minimax finished
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopTrials, "Trials"},
		{StopImmediateWin, "ImmediateWin"},
		{StopForcedMove, "ForcedMove"},
		{StopMinimax, "Minimax"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

// Limiter keeps track of the trial budget of a single decision
type Limiter struct {
	limits *Limits
	trials uint32
	reason StopReason
}

func NewLimiter(limits *Limits) *Limiter {
	return &Limiter{limits: limits}
}

// Reset the counters, called on search setup
func (l *Limiter) Reset() {
	l.trials = 0
	l.reason = StopNone
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Count a finished trial
func (l *Limiter) Inc() {
	l.trials++
}

func (l *Limiter) Trials() uint32 {
	return l.trials
}

// Ok tells whether another trial may run
func (l *Limiter) Ok() bool {
	return l.reason == StopNone && l.trials < l.limits.Trials
}

// Stop the search early with given reason
func (l *Limiter) SetStop(reason StopReason) {
	l.reason |= reason
}

// Called once after the search loop, records the budget as the reason if nothing else stopped it
func (l *Limiter) EvaluateStopReason() {
	if l.reason == StopNone && l.trials >= l.limits.Trials {
		l.reason = StopTrials
	}
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}
