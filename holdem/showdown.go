package holdem

type Outcome int

const (
	OUTCOME_TIE     = Outcome(0)
	OUTCOME_PLAYER1 = Outcome(1)
	OUTCOME_PLAYER2 = Outcome(2)
)

func (o Outcome) String() string {
	switch o {
	case OUTCOME_PLAYER1:
		return "player 1"
	case OUTCOME_PLAYER2:
		return "player 2"
	}
	return "tie"
}

// Showdown evaluates both hands against a complete board.
type Showdown struct {
	Player1 HandValue
	Player2 HandValue
	Outcome Outcome
}

func ComputeShowdown(p1, p2 HoleCards, board []Card) (Showdown, error) {
	hv1, err := Evaluate(ConcatCards(p1[:], board))
	if err != nil {
		return Showdown{}, err
	}
	hv2, err := Evaluate(ConcatCards(p2[:], board))
	if err != nil {
		return Showdown{}, err
	}
	res := Showdown{Player1: hv1, Player2: hv2, Outcome: OUTCOME_TIE}
	switch c := Compare(hv1, hv2); {
	case c > 0:
		res.Outcome = OUTCOME_PLAYER1
	case c < 0:
		res.Outcome = OUTCOME_PLAYER2
	}
	return res, nil
}
