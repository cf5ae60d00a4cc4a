package holdem

import (
	"fmt"
	"strings"
)

var rank2string = map[Rank]string{
	TWO: "2", THREE: "3", FOUR: "4", FIVE: "5", SIX: "6", SEVEN: "7", EIGHT: "8",
	NINE: "9", TEN: "10", JACK: "J", QUEEN: "Q", KING: "K", ACE: "A",
}

var suit2string = map[Suit]string{
	HEARTS:   "h",
	DIAMONDS: "d",
	CLUBS:    "c",
	SPADES:   "s",
}

func (r Rank) String() string {
	if s, ok := rank2string[r]; ok {
		return s
	}
	return "?"
}

func (r Rank) Valid() bool {
	return r >= TWO && r <= ACE
}

func (s Suit) String() string {
	if v, ok := suit2string[s]; ok {
		return v
	}
	return "?"
}

func (s Suit) Valid() bool {
	return s >= HEARTS && s <= SPADES
}

// Card is a value type, two cards are the same physical card iff they are ==.
type Card struct {
	Rank Rank
	Suit Suit
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// 0..51, suit major
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank-TWO)
}

func CardFromIndex(idx int) Card {
	return Card{
		Rank: Rank(idx%NumRanks) + TWO,
		Suit: Suit(idx / NumRanks),
	}
}

func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// String always renders the canonical form: uppercase rank or "10", lowercase suit.
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard accepts a rank token (2-9, 10, J, Q, K, A) followed by a suit letter (h, d, c, s),
// both case-insensitive.
func ParseCard(token string) (Card, error) {
	if len(token) < 2 || len(token) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardToken, token)
	}
	rankTok := strings.ToUpper(token[:len(token)-1])
	suitTok := strings.ToLower(token[len(token)-1:])

	var rank Rank
	switch rankTok {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankTok[0] - '0')
	case "10":
		rank = TEN
	case "J":
		rank = JACK
	case "Q":
		rank = QUEEN
	case "K":
		rank = KING
	case "A":
		rank = ACE
	default:
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCardToken, token)
	}

	var suit Suit
	switch suitTok {
	case "h":
		suit = HEARTS
	case "d":
		suit = DIAMONDS
	case "c":
		suit = CLUBS
	case "s":
		suit = SPADES
	default:
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCardToken, token)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards splits on whitespace and commas.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func ConcatCards(holeCards, publicCards []Card) []Card {
	result := make([]Card, 0, len(holeCards)+len(publicCards))
	result = append(result, holeCards...)
	result = append(result, publicCards...)
	return result
}

// CheckDistinct returns ErrDuplicateCard for the first card seen twice.
func CheckDistinct(cards ...Card) error {
	var seen [DeckSize]bool
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %d/%d", ErrInvalidCardToken, c.Rank, c.Suit)
		}
		if seen[c.Index()] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c.Index()] = true
	}
	return nil
}
