package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacvp2/pokerproj/holdem"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// scriptedPrompter answers prompts from a fixed list and records warnings.
type scriptedPrompter struct {
	answers []string
	warned  []string
}

func (p *scriptedPrompter) next() (string, error) {
	if len(p.answers) == 0 {
		return "", errors.New("no more answers")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Text(string) (string, error)             { return p.next() }
func (p *scriptedPrompter) Select(string, []string) (string, error) { return p.next() }
func (p *scriptedPrompter) Warn(msg string)                         { p.warned = append(p.warned, msg) }

func run(t *testing.T, p prompter, args ...string) (string, error) {
	t.Helper()
	if p == nil {
		p = &scriptedPrompter{}
	}
	root := newRootCmd(p)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOddsFromFlags(t *testing.T) {
	out, err := run(t, nil, "odds",
		"--p1", "Ah Ad", "--p2", "Kh Kd", "--stage", "river", "--board", "As Ks 2h 7d 9c",
		"--trials", "200", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Player 1: Ah Ad")
	assert.Contains(t, out, "Board:    As Ks 2h 7d 9c")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "Player 1 equity: 100.00%")
	assert.Contains(t, out, "Simulation time:")
}

func TestOddsParallel(t *testing.T) {
	out, err := run(t, nil, "odds",
		"--p1", "Ah Ad", "--p2", "Kh Kd", "--stage", "preflop",
		"--trials", "5000", "--workers", "3", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Trials: 5,000")
}

func TestOddsRejectsBadFlags(t *testing.T) {
	_, err := run(t, nil, "odds", "--p1", "Ah Ah", "--p2", "Kh Kd", "--stage", "preflop")
	assert.ErrorIs(t, err, holdem.ErrDuplicateCard)

	_, err = run(t, nil, "odds", "--p1", "Ah Ad", "--p2", "Kh Kd", "--stage", "flop", "--board", "2c 3c")
	assert.ErrorIs(t, err, holdem.ErrCommunityCount)

	_, err = run(t, nil, "odds", "--p1", "Ah Ad", "--p2", "Kh Kd", "--stage", "preflop",
		"--board", "As Ks Qs", "--trials", "100", "--seed", "1")
	assert.ErrorIs(t, err, holdem.ErrCommunityCount)

	_, err = run(t, nil, "odds", "--p1", "Ah Ad", "--p2", "Kh Kd", "--stage", "showdown")
	assert.ErrorIs(t, err, holdem.ErrInvalidStage)

	_, err = run(t, nil, "odds", "--p1", "Xh Ad", "--p2", "Kh Kd", "--stage", "preflop")
	assert.ErrorIs(t, err, holdem.ErrInvalidCardToken)
}

func TestOddsPreflopEmptyBoard(t *testing.T) {
	out, err := run(t, nil, "odds", "--p1", "Ah Ad", "--p2", "Kh Kd", "--stage", "preflop",
		"--board", "", "--trials", "100", "--seed", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "Board:")
}

func TestOddsInteractiveReprompts(t *testing.T) {
	p := &scriptedPrompter{answers: []string{
		"Ah", "Ah Ad", // one card, then valid
		"Ah Kd", "Kh Kd", // clashes with player 1, then valid
		"flop",
		"2c 7d", "2c 7d Ah", "2c 7d 9s", // short, duplicate, then valid
	}}
	out, err := run(t, p, "odds", "--trials", "100", "--seed", "3")
	require.NoError(t, err)
	assert.Len(t, p.warned, 4)
	assert.Empty(t, p.answers)
	assert.Contains(t, out, "Stage:    flop")
	assert.Contains(t, out, "Board:    2c 7d 9s")
}

func TestEval(t *testing.T) {
	out, err := run(t, nil, "eval", "As", "Ks", "Qs", "Js", "10s", "2d", "3c")
	require.NoError(t, err)
	assert.Equal(t, "Straight Flush (A)\n", out)

	_, err = run(t, nil, "eval", "As", "Ks", "Qs")
	assert.ErrorIs(t, err, holdem.ErrInsufficientCards)

	_, err = run(t, nil, "eval", "As", "As", "Qs", "Js", "10s")
	assert.ErrorIs(t, err, holdem.ErrDuplicateCard)
}

func TestDataset(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "odds.csv")
	dbPath := filepath.Join(dir, "odds.db")

	out, err := run(t, nil, "dataset", "--quiet",
		"--simulations", "12", "--trials", "10", "--seed", "4",
		"--out", csvPath, "--db-driver", "sqlite", "--db-dsn", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 12 scenarios")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 13)
	assert.Equal(t, "SimulationID", rows[0][0])

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestDatasetRejectsUnknownDriver(t *testing.T) {
	_, err := run(t, nil, "dataset", "--quiet", "--simulations", "1", "--out", "", "--db-driver", "mysql")
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -2\n"), 0o644))
	_, err := run(t, nil, "--config", path, "eval", "As", "Ks", "Qs", "Js", "10s")
	assert.ErrorContains(t, err, "workers must be positive")
}
