package dataset

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/isaacvp2/pokerproj/equity"
	"github.com/isaacvp2/pokerproj/holdem"
)

// Record is one generated scenario and its estimated equity.
type Record struct {
	ID           uuid.UUID
	RunID        uuid.UUID
	SimulationID int
	Scenario     holdem.Scenario
	Result       equity.Result
}

// Sink receives every record of a run, in order.
type Sink interface {
	Write(ctx context.Context, rec Record) error
	Close() error
}

var csvHeader = []string{
	"SimulationID",
	"Player1Hand",
	"Player2Hand",
	"GameStage",
	"CommunityCards",
	"P1Win",
	"P2Win",
	"Tie",
	"Time",
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (r Record) csvRow() []string {
	return []string{
		strconv.Itoa(r.SimulationID),
		r.Scenario.Player1.String(),
		r.Scenario.Player2.String(),
		r.Scenario.Stage.String(),
		holdem.FormatCards(r.Scenario.Community),
		formatPct(r.Result.P1WinPct),
		formatPct(r.Result.P2WinPct),
		formatPct(r.Result.TiePct),
		strconv.FormatInt(r.Result.Elapsed.Milliseconds(), 10),
	}
}
