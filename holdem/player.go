package holdem

import "fmt"

type HoleCards [HoleCardsCount]Card

func NewHoleCards(cards []Card) (HoleCards, error) {
	if len(cards) != HoleCardsCount {
		return HoleCards{}, fmt.Errorf("%w: got %d", ErrHoleCards, len(cards))
	}
	return HoleCards{cards[0], cards[1]}, nil
}

func ParseHoleCards(s string) (HoleCards, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return HoleCards{}, err
	}
	return NewHoleCards(cards)
}

func (h HoleCards) Cards() []Card {
	return []Card{h[0], h[1]}
}

func (h HoleCards) String() string {
	return FormatCards(h[:])
}
