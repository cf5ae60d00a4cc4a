package holdem

import "errors"

var (
	ErrInvalidCardToken  = errors.New("invalid card token")
	ErrDuplicateCard     = errors.New("duplicate card")
	ErrInsufficientCards = errors.New("at least 5 cards are required")
	ErrDeckExhausted     = errors.New("deck is empty")
	ErrInvalidStage      = errors.New("invalid game stage")
	ErrCommunityCount    = errors.New("wrong number of community cards")
	ErrHoleCards         = errors.New("exactly 2 hole cards required")
)
