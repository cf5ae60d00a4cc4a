package equity

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacvp2/pokerproj/holdem"
)

func mustScenario(t testing.TB, p1, p2 string, stage holdem.GameStage, board string) holdem.Scenario {
	h1, err := holdem.ParseHoleCards(p1)
	require.NoError(t, err)
	h2, err := holdem.ParseHoleCards(p2)
	require.NoError(t, err)
	s := holdem.Scenario{Player1: h1, Player2: h2, Stage: stage, Community: holdem.MustParseCards(board)}
	require.NoError(t, s.Validate())
	return s
}

func TestRiverTripsOverTrips(t *testing.T) {
	s := mustScenario(t, "Ah Ad", "Kh Kd", holdem.STAGE_RIVER, "As Ks 2h 7d 9c")
	for _, n := range []int{1, 10, 1000} {
		res, err := RunTrials(rand.New(rand.NewSource(1)), s, n)
		require.NoError(t, err)
		assert.Equal(t, n, res.P1Wins)
		assert.Equal(t, 100.0, res.P1WinPct)
		assert.Equal(t, 0.0, res.P2WinPct)
		assert.Equal(t, 0.0, res.TiePct)
	}
}

// Both hands play the wheel on this board, so every trial splits.
func TestRiverWheelOnBoardTies(t *testing.T) {
	s := mustScenario(t, "Ah Ad", "Kh Kd", holdem.STAGE_RIVER, "As 2h 3d 4c 5s")
	res, err := RunTrials(rand.New(rand.NewSource(1)), s, 500)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.TiePct)
	assert.Equal(t, 0, res.P1Wins+res.P2Wins)
}

func TestPreflopAcesVersusKings(t *testing.T) {
	s := mustScenario(t, "Ah Ad", "Kh Kd", holdem.STAGE_PREFLOP, "")
	sim, err := New(42, s, nil)
	require.NoError(t, err)

	res, err := sim.RunTrials(20000)
	require.NoError(t, err)
	assert.InDelta(t, 82, res.P1WinPct, 4)
	assert.InDelta(t, 17.5, res.P2WinPct, 4)
	assert.Less(t, res.TiePct, 2.0)
	assert.InDelta(t, 100, res.P1WinPct+res.P2WinPct+res.TiePct, 1e-9)
	assert.Equal(t, 0, res.Skipped)
}

func TestFlopDrawAgainstOverpair(t *testing.T) {
	// Nut flush draw plus overcards against an overpair is close to a coin flip.
	s := mustScenario(t, "As Ks", "Qh Qd", holdem.STAGE_FLOP, "2s 7s 9d")
	res, err := RunTrials(rand.New(rand.NewSource(3)), s, 20000)
	require.NoError(t, err)
	assert.InDelta(t, 50, res.P1Equity(), 10)
}

func TestSwappedPlayersSwapResults(t *testing.T) {
	s := mustScenario(t, "As Ks", "Qh Qd", holdem.STAGE_FLOP, "2d 5h 9s")

	a, err := RunTrials(rand.New(rand.NewSource(77)), s, 5000)
	require.NoError(t, err)
	b, err := RunTrials(rand.New(rand.NewSource(77)), s.Swapped(), 5000)
	require.NoError(t, err)

	assert.Equal(t, a.P1Wins, b.P2Wins)
	assert.Equal(t, a.P2Wins, b.P1Wins)
	assert.Equal(t, a.Ties, b.Ties)
	assert.Equal(t, a.P1WinPct, b.P2WinPct)
}

func TestSeededRunsReplay(t *testing.T) {
	s := mustScenario(t, "7c 2d", "Jh 10h", holdem.STAGE_TURN, "Jc 4h 8h 2s")
	first, err := New(5, s, nil)
	require.NoError(t, err)
	second, err := New(5, s, nil)
	require.NoError(t, err)

	a, err := first.RunTrials(3000)
	require.NoError(t, err)
	b, err := second.RunTrials(3000)
	require.NoError(t, err)
	assert.Equal(t, [3]int{a.P1Wins, a.P2Wins, a.Ties}, [3]int{b.P1Wins, b.P2Wins, b.Ties})
}

func TestRunTrialsRejectsBadInput(t *testing.T) {
	s := mustScenario(t, "As Ks", "Qh Qd", holdem.STAGE_PREFLOP, "")
	_, err := RunTrials(rand.New(rand.NewSource(1)), s, 0)
	assert.ErrorIs(t, err, ErrInvalidTrials)

	bad := s
	bad.Stage = holdem.STAGE_FLOP
	_, err = RunTrials(rand.New(rand.NewSource(1)), bad, 10)
	assert.ErrorIs(t, err, holdem.ErrCommunityCount)

	dup := s
	dup.Player2 = holdem.HoleCards{s.Player1[0], holdem.NewCard(holdem.TWO, holdem.CLUBS)}
	_, err = New(1, dup, nil)
	assert.ErrorIs(t, err, holdem.ErrDuplicateCard)
}

func TestExhaustedDeckSkipsTrial(t *testing.T) {
	s := mustScenario(t, "As Ks", "Qh Qd", holdem.STAGE_PREFLOP, "")

	// Exclude all but three cards so the board can never be completed.
	used := make([]holdem.Card, 0, holdem.DeckSize)
	for i := range holdem.DeckSize - 3 {
		used = append(used, holdem.CardFromIndex(i))
	}
	stats := &Stats{}
	sim := &Simulator{
		scenario: s,
		used:     used,
		stats:    stats,
		rng:      rand.New(rand.NewSource(1)),
	}

	res, err := sim.RunTrials(10)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Trials)
	assert.Equal(t, 10, res.Skipped)
	assert.Equal(t, 0, res.Counted())
	assert.Equal(t, 0.0, res.P1WinPct+res.P2WinPct+res.TiePct)
	assert.EqualValues(t, 10, stats.TrialsSkipped.Load())
	assert.EqualValues(t, 10, stats.TrialsRun.Load())
}

func TestFailedTrialIsNotCounted(t *testing.T) {
	s := mustScenario(t, "As Ks", "Qh Qd", holdem.STAGE_PREFLOP, "")
	stats := &Stats{}
	// A repeated exclusion makes every deck build fail.
	sim := &Simulator{
		scenario: s,
		used:     append(s.UsedCards(), s.Player1[0]),
		stats:    stats,
		rng:      rand.New(rand.NewSource(1)),
	}

	_, err := sim.RunTrials(10)
	assert.ErrorIs(t, err, holdem.ErrDuplicateCard)
	assert.Zero(t, stats.TrialsRun.Load())
	assert.Zero(t, stats.TrialsSkipped.Load())
}

func TestRunParallel(t *testing.T) {
	s := mustScenario(t, "Ah Ad", "Kh Kd", holdem.STAGE_PREFLOP, "")
	stats := &Stats{}

	res, err := RunParallel(context.Background(), s, 10001, 4, 100, stats)
	require.NoError(t, err)
	assert.Equal(t, 10001, res.Trials)
	assert.Equal(t, 10001, res.Counted())
	assert.EqualValues(t, 10001, stats.TrialsRun.Load())
	assert.InDelta(t, 82, res.P1WinPct, 4)

	again, err := RunParallel(context.Background(), s, 10001, 4, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, res.P1Wins, again.P1Wins)
	assert.Equal(t, res.Ties, again.Ties)

	// More workers than trials collapses to one trial per worker.
	small, err := RunParallel(context.Background(), s, 3, 8, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, small.Trials)
}

func TestRunParallelCancelled(t *testing.T) {
	s := mustScenario(t, "Ah Ad", "Kh Kd", holdem.STAGE_PREFLOP, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunParallel(ctx, s, 100000, 2, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultHelpers(t *testing.T) {
	a := Result{Trials: 100, P1Wins: 50, P2Wins: 30, Ties: 20}
	a.finalize()
	assert.InDelta(t, 60, a.P1Equity(), 1e-9)
	assert.InDelta(t, 40, a.P2Equity(), 1e-9)

	lo, hi := a.ConfidenceInterval()
	assert.Less(t, lo, 60.0)
	assert.Greater(t, hi, 60.0)

	b := Result{Trials: 100, P1Wins: 10, P2Wins: 80, Ties: 10}
	m := a.Merge(b)
	assert.Equal(t, 200, m.Trials)
	assert.InDelta(t, 30, m.P1WinPct, 1e-9)
	assert.InDelta(t, 55, m.P2WinPct, 1e-9)
	assert.InDelta(t, 15, m.TiePct, 1e-9)

	lo, hi = Result{}.ConfidenceInterval()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func BenchmarkRunTrialsPreflop(b *testing.B) {
	s := mustScenario(b, "Ah Ad", "Kh Kd", holdem.STAGE_PREFLOP, "")
	sim, err := New(1, s, nil)
	require.NoError(b, err)

	b.ResetTimer()
	res, err := sim.RunTrials(max(b.N, 1))
	require.NoError(b, err)
	b.ReportMetric(float64(res.Trials)/b.Elapsed().Seconds(), "trials/sec")
}
