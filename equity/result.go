package equity

import (
	"math"
	"time"
)

// Result aggregates a batch of trials. Percentages are taken over Trials, skipped trials included.
type Result struct {
	Trials  int
	P1Wins  int
	P2Wins  int
	Ties    int
	Skipped int

	P1WinPct float64
	P2WinPct float64
	TiePct   float64

	Elapsed time.Duration
}

func (r *Result) finalize() {
	if r.Trials == 0 {
		r.P1WinPct, r.P2WinPct, r.TiePct = 0, 0, 0
		return
	}
	n := float64(r.Trials)
	r.P1WinPct = float64(r.P1Wins) / n * 100
	r.P2WinPct = float64(r.P2Wins) / n * 100
	r.TiePct = float64(r.Ties) / n * 100
}

// Merge sums the counters of two batches.
func (r Result) Merge(other Result) Result {
	m := Result{
		Trials:  r.Trials + other.Trials,
		P1Wins:  r.P1Wins + other.P1Wins,
		P2Wins:  r.P2Wins + other.P2Wins,
		Ties:    r.Ties + other.Ties,
		Skipped: r.Skipped + other.Skipped,
		Elapsed: r.Elapsed + other.Elapsed,
	}
	m.finalize()
	return m
}

// Counted is the number of trials that reached a showdown.
func (r Result) Counted() int {
	return r.P1Wins + r.P2Wins + r.Ties
}

// P1Equity counts a tie as half a win, in percent.
func (r Result) P1Equity() float64 {
	return r.P1WinPct + r.TiePct/2
}

func (r Result) P2Equity() float64 {
	return r.P2WinPct + r.TiePct/2
}

// ConfidenceInterval is the 95% normal interval around P1Equity, in percent.
func (r Result) ConfidenceInterval() (lower, upper float64) {
	if r.Trials == 0 {
		return 0, 0
	}
	p := r.P1Equity() / 100
	se := math.Sqrt(p * (1 - p) / float64(r.Trials))
	margin := 1.96 * se
	lower = math.Max(0, p-margin) * 100
	upper = math.Min(1, p+margin) * 100
	return lower, upper
}
