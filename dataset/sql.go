package dataset

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/isaacvp2/pokerproj/holdem"
)

const schema = `
CREATE TABLE IF NOT EXISTS simulations (
	id              TEXT PRIMARY KEY,
	run_id          TEXT NOT NULL,
	simulation_id   INTEGER NOT NULL,
	player1_hand    TEXT NOT NULL,
	player2_hand    TEXT NOT NULL,
	game_stage      TEXT NOT NULL,
	community_cards TEXT NOT NULL,
	p1_win          DOUBLE PRECISION NOT NULL,
	p2_win          DOUBLE PRECISION NOT NULL,
	tie             DOUBLE PRECISION NOT NULL,
	elapsed_ms      BIGINT NOT NULL,
	trials          INTEGER NOT NULL,
	skipped         INTEGER NOT NULL
)`

const insertRow = `
INSERT INTO simulations (
	id, run_id, simulation_id, player1_hand, player2_hand, game_stage, community_cards,
	p1_win, p2_win, tie, elapsed_ms, trials, skipped
) VALUES (
	:id, :run_id, :simulation_id, :player1_hand, :player2_hand, :game_stage, :community_cards,
	:p1_win, :p2_win, :tie, :elapsed_ms, :trials, :skipped
)`

// Row is the stored form of a Record.
type Row struct {
	ID             string  `db:"id"`
	RunID          string  `db:"run_id"`
	SimulationID   int     `db:"simulation_id"`
	Player1Hand    string  `db:"player1_hand"`
	Player2Hand    string  `db:"player2_hand"`
	GameStage      string  `db:"game_stage"`
	CommunityCards string  `db:"community_cards"`
	P1Win          float64 `db:"p1_win"`
	P2Win          float64 `db:"p2_win"`
	Tie            float64 `db:"tie"`
	ElapsedMs      int64   `db:"elapsed_ms"`
	Trials         int     `db:"trials"`
	Skipped        int     `db:"skipped"`
}

func toRow(r Record) Row {
	return Row{
		ID:             r.ID.String(),
		RunID:          r.RunID.String(),
		SimulationID:   r.SimulationID,
		Player1Hand:    r.Scenario.Player1.String(),
		Player2Hand:    r.Scenario.Player2.String(),
		GameStage:      r.Scenario.Stage.String(),
		CommunityCards: holdem.FormatCards(r.Scenario.Community),
		P1Win:          r.Result.P1WinPct,
		P2Win:          r.Result.P2WinPct,
		Tie:            r.Result.TiePct,
		ElapsedMs:      r.Result.Elapsed.Milliseconds(),
		Trials:         r.Result.Trials,
		Skipped:        r.Result.Skipped,
	}
}

// Scenario parses the stored cards back.
func (r Row) Scenario() (holdem.Scenario, error) {
	p1, err := holdem.ParseHoleCards(r.Player1Hand)
	if err != nil {
		return holdem.Scenario{}, err
	}
	p2, err := holdem.ParseHoleCards(r.Player2Hand)
	if err != nil {
		return holdem.Scenario{}, err
	}
	stage, err := holdem.ParseStage(r.GameStage)
	if err != nil {
		return holdem.Scenario{}, err
	}
	community, err := holdem.ParseCards(r.CommunityCards)
	if err != nil {
		return holdem.Scenario{}, err
	}
	return holdem.Scenario{Player1: p1, Player2: p2, Stage: stage, Community: community}, nil
}

// SQLSink stores records in the simulations table through sqlx.
// Drivers: "sqlite" (modernc.org/sqlite) and "pgx" (jackc/pgx stdlib).
type SQLSink struct {
	db *sqlx.DB
}

func OpenSQLSink(ctx context.Context, driver, dsn string) (*SQLSink, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// one connection, otherwise every ":memory:" connection is its own database
		db.SetMaxOpenConns(1)
	}
	s, err := NewSQLSink(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLSink(ctx context.Context, db *sqlx.DB) (*SQLSink, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLSink{db: db}, nil
}

func (s *SQLSink) Write(ctx context.Context, rec Record) error {
	if _, err := s.db.NamedExecContext(ctx, insertRow, toRow(rec)); err != nil {
		return fmt.Errorf("insert simulation %d: %w", rec.SimulationID, err)
	}
	return nil
}

// Rows returns the stored rows of one run ordered by simulation id.
func (s *SQLSink) Rows(ctx context.Context, runID uuid.UUID) ([]Row, error) {
	var rows []Row
	q := s.db.Rebind(`SELECT * FROM simulations WHERE run_id = ? ORDER BY simulation_id`)
	if err := s.db.SelectContext(ctx, &rows, q, runID.String()); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQLSink) Close() error {
	return s.db.Close()
}
