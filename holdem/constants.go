package holdem

type Suit int8

const (
	HEARTS   = Suit(0)
	DIAMONDS = Suit(1)
	CLUBS    = Suit(2)
	SPADES   = Suit(3)
)

var Suits = [4]Suit{HEARTS, DIAMONDS, CLUBS, SPADES}

type Rank int8

const (
	TWO   = Rank(2)
	THREE = Rank(3)
	FOUR  = Rank(4)
	FIVE  = Rank(5)
	SIX   = Rank(6)
	SEVEN = Rank(7)
	EIGHT = Rank(8)
	NINE  = Rank(9)
	TEN   = Rank(10)
	JACK  = Rank(11)
	QUEEN = Rank(12)
	KING  = Rank(13)
	ACE   = Rank(14)
)

const (
	NumRanks = 13
	NumSuits = 4
	DeckSize = NumRanks * NumSuits

	HoleCardsCount = 2
	BoardSize      = 5
)

type GameStage int

const (
	STAGE_PREFLOP = GameStage(0)
	STAGE_FLOP    = GameStage(1)
	STAGE_TURN    = GameStage(2)
	STAGE_RIVER   = GameStage(3)
)

var Stages = [4]GameStage{STAGE_PREFLOP, STAGE_FLOP, STAGE_TURN, STAGE_RIVER}

var stage2string = map[GameStage]string{
	STAGE_PREFLOP: "preflop",
	STAGE_FLOP:    "flop",
	STAGE_TURN:    "turn",
	STAGE_RIVER:   "river",
}

// Cards already on the board when the stage starts
var stageCommunityCards = map[GameStage]int{
	STAGE_PREFLOP: 0,
	STAGE_FLOP:    3,
	STAGE_TURN:    4,
	STAGE_RIVER:   5,
}

type Category int

const (
	CATEGORY_HIGH_CARD       = Category(1)
	CATEGORY_ONE_PAIR        = Category(2)
	CATEGORY_TWO_PAIR        = Category(3)
	CATEGORY_THREE_OF_A_KIND = Category(4)
	CATEGORY_STRAIGHT        = Category(5)
	CATEGORY_FLUSH           = Category(6)
	CATEGORY_FULL_HOUSE      = Category(7)
	CATEGORY_FOUR_OF_A_KIND  = Category(8)
	CATEGORY_STRAIGHT_FLUSH  = Category(9)
)

var Category2string = map[Category]string{
	CATEGORY_HIGH_CARD:       "High Card",
	CATEGORY_ONE_PAIR:        "One Pair",
	CATEGORY_TWO_PAIR:        "Two Pair",
	CATEGORY_THREE_OF_A_KIND: "Three of a Kind",
	CATEGORY_STRAIGHT:        "Straight",
	CATEGORY_FLUSH:           "Flush",
	CATEGORY_FULL_HOUSE:      "Full House",
	CATEGORY_FOUR_OF_A_KIND:  "Four of a Kind",
	CATEGORY_STRAIGHT_FLUSH:  "Straight Flush",
}

func (c Category) String() string {
	if s, ok := Category2string[c]; ok {
		return s
	}
	return "Unknown"
}
