package holdem

import (
	"fmt"
	"strings"
)

func (s GameStage) String() string {
	if v, ok := stage2string[s]; ok {
		return v
	}
	return "unknown"
}

func (s GameStage) Valid() bool {
	_, ok := stageCommunityCards[s]
	return ok
}

// CommunityCards is how many board cards are already known at this stage.
func (s GameStage) CommunityCards() int {
	return stageCommunityCards[s]
}

// NeededCards is how many board cards remain to be dealt.
func (s GameStage) NeededCards() int {
	if !s.Valid() {
		return 0
	}
	return BoardSize - stageCommunityCards[s]
}

// ParseStage accepts exactly preflop, flop, turn or river.
func ParseStage(token string) (GameStage, error) {
	token = strings.TrimSpace(token)
	for stage, name := range stage2string {
		if name == token {
			return stage, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStage, token)
}
