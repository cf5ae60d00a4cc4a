package holdem

import (
	"fmt"
	"math/rand"
)

// Scenario is one heads-up spot: both players' hole cards and the board known so far.
type Scenario struct {
	Player1   HoleCards
	Player2   HoleCards
	Stage     GameStage
	Community []Card
}

// Validate rejects a scenario before any trial runs: bad stage, a board that does not match
// the stage, or the same card appearing twice anywhere.
func (s Scenario) Validate() error {
	if !s.Stage.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStage, s.Stage)
	}
	if len(s.Community) != s.Stage.CommunityCards() {
		return fmt.Errorf("%w: %s expects %d, got %d",
			ErrCommunityCount, s.Stage, s.Stage.CommunityCards(), len(s.Community))
	}
	return CheckDistinct(s.UsedCards()...)
}

// UsedCards is every card already in play: both hands then the board.
func (s Scenario) UsedCards() []Card {
	used := make([]Card, 0, 2*HoleCardsCount+len(s.Community))
	used = append(used, s.Player1[:]...)
	used = append(used, s.Player2[:]...)
	used = append(used, s.Community...)
	return used
}

func (s Scenario) Swapped() Scenario {
	return Scenario{
		Player1:   s.Player2,
		Player2:   s.Player1,
		Stage:     s.Stage,
		Community: append([]Card(nil), s.Community...),
	}
}

// DealScenario deals two random hands and the board for the given stage from a fresh deck.
func DealScenario(rng *rand.Rand, stage GameStage) (Scenario, error) {
	if !stage.Valid() {
		return Scenario{}, fmt.Errorf("%w: %d", ErrInvalidStage, stage)
	}
	deck, err := NewDeck(rng)
	if err != nil {
		return Scenario{}, err
	}
	deck.Shuffle()

	cards, err := deck.DrawN(2*HoleCardsCount + stage.CommunityCards())
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Player1:   HoleCards{cards[0], cards[1]},
		Player2:   HoleCards{cards[2], cards[3]},
		Stage:     stage,
		Community: cards[4:],
	}, nil
}
