package holdem

import (
	"fmt"
	"math/bits"
	"strings"
)

// HandValue is totally ordered: Category first, then Tiebreakers most-significant first.
type HandValue struct {
	Category    Category
	Tiebreakers []int
}

// Compare returns 1, 0 or -1. On an equal prefix the shorter tiebreaker list is the smaller one.
func Compare(a, b HandValue) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Tiebreakers) && i < len(b.Tiebreakers); i++ {
		if a.Tiebreakers[i] != b.Tiebreakers[i] {
			if a.Tiebreakers[i] > b.Tiebreakers[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(a.Tiebreakers) > len(b.Tiebreakers):
		return 1
	case len(a.Tiebreakers) < len(b.Tiebreakers):
		return -1
	}
	return 0
}

func (h HandValue) Greater(other HandValue) bool {
	return Compare(h, other) > 0
}

func (h HandValue) Equal(other HandValue) bool {
	return Compare(h, other) == 0
}

func (h HandValue) String() string {
	parts := make([]string, len(h.Tiebreakers))
	for i, r := range h.Tiebreakers {
		parts[i] = Rank(r).String()
	}
	return fmt.Sprintf("%s (%s)", h.Category, strings.Join(parts, ", "))
}

// handCounts holds the per-rank and per-suit frequencies of one hand.
// Rank buckets are indexed rank-2, masks carry bit r for rank r.
type handCounts struct {
	ranks     [NumRanks]int
	suits     [NumSuits]int
	suitMasks [NumSuits]uint16
	rankMask  uint16
}

func countCards(cards []Card) *handCounts {
	h := &handCounts{}
	for _, c := range cards {
		h.ranks[c.Rank-TWO]++
		h.suits[c.Suit]++
		h.suitMasks[c.Suit] |= 1 << uint(c.Rank)
		h.rankMask |= 1 << uint(c.Rank)
	}
	return h
}

func (h *handCounts) count(r Rank) int {
	return h.ranks[r-TWO]
}

// bestOfCount returns the highest rank with at least n copies, skipping the given ranks.
func (h *handCounts) bestOfCount(n int, skip ...int) (int, bool) {
	for r := ACE; r >= TWO; r-- {
		if h.count(r) >= n && !containsRank(skip, int(r)) {
			return int(r), true
		}
	}
	return 0, false
}

// kickers returns up to n card ranks, highest first, ignoring the given ranks.
// A rank held twice contributes twice.
func (h *handCounts) kickers(n int, skip ...int) []int {
	out := make([]int, 0, n)
	for r := ACE; r >= TWO && len(out) < n; r-- {
		if containsRank(skip, int(r)) {
			continue
		}
		for range h.count(r) {
			if len(out) == n {
				break
			}
			out = append(out, int(r))
		}
	}
	return out
}

func (h *handCounts) flushSuits() []Suit {
	var out []Suit
	for _, s := range Suits {
		if h.suits[s] >= 5 {
			out = append(out, s)
		}
	}
	return out
}

func containsRank(ranks []int, r int) bool {
	for _, v := range ranks {
		if v == r {
			return true
		}
	}
	return false
}

const wheelMask = uint16(1<<ACE | 1<<TWO | 1<<THREE | 1<<FOUR | 1<<FIVE)

// straightHigh scans for five consecutive ranks from the top down.
// The wheel is checked last and reports 5 as its high card.
func straightHigh(mask uint16) (int, bool) {
	for high := ACE; high >= SIX; high-- {
		run := uint16(0x1f) << uint(high-4)
		if mask&run == run {
			return int(high), true
		}
	}
	if mask&wheelMask == wheelMask {
		return int(FIVE), true
	}
	return 0, false
}

// topRanks returns the n highest ranks set in mask.
func topRanks(mask uint16, n int) []int {
	out := make([]int, 0, n)
	for len(out) < n && mask != 0 {
		r := 15 - bits.LeadingZeros16(mask)
		out = append(out, r)
		mask &^= 1 << uint(r)
	}
	return out
}

type rule struct {
	category Category
	match    func(h *handCounts) ([]int, bool)
}

// Highest category first; the first rule that matches decides the hand.
var rules = []rule{
	{CATEGORY_STRAIGHT_FLUSH, matchStraightFlush},
	{CATEGORY_FOUR_OF_A_KIND, matchFourOfAKind},
	{CATEGORY_FULL_HOUSE, matchFullHouse},
	{CATEGORY_FLUSH, matchFlush},
	{CATEGORY_STRAIGHT, matchStraight},
	{CATEGORY_THREE_OF_A_KIND, matchThreeOfAKind},
	{CATEGORY_TWO_PAIR, matchTwoPair},
	{CATEGORY_ONE_PAIR, matchOnePair},
	{CATEGORY_HIGH_CARD, matchHighCard},
}

func matchStraightFlush(h *handCounts) ([]int, bool) {
	best, found := 0, false
	for _, s := range h.flushSuits() {
		if high, ok := straightHigh(h.suitMasks[s]); ok && high > best {
			best, found = high, true
		}
	}
	if !found {
		return nil, false
	}
	return []int{best}, true
}

func matchFourOfAKind(h *handCounts) ([]int, bool) {
	quad, ok := h.bestOfCount(4)
	if !ok {
		return nil, false
	}
	return append([]int{quad}, h.kickers(1, quad)...), true
}

func matchFullHouse(h *handCounts) ([]int, bool) {
	trips, ok := h.bestOfCount(3)
	if !ok {
		return nil, false
	}
	// A second set of trips plays as the pair.
	pair, ok := h.bestOfCount(2, trips)
	if !ok {
		return nil, false
	}
	return []int{trips, pair}, true
}

func matchFlush(h *handCounts) ([]int, bool) {
	var best []int
	for _, s := range h.flushSuits() {
		top := topRanks(h.suitMasks[s], 5)
		if best == nil || Compare(HandValue{Tiebreakers: top}, HandValue{Tiebreakers: best}) > 0 {
			best = top
		}
	}
	return best, best != nil
}

func matchStraight(h *handCounts) ([]int, bool) {
	high, ok := straightHigh(h.rankMask)
	if !ok {
		return nil, false
	}
	return []int{high}, true
}

func matchThreeOfAKind(h *handCounts) ([]int, bool) {
	trips, ok := h.bestOfCount(3)
	if !ok {
		return nil, false
	}
	return append([]int{trips}, h.kickers(2, trips)...), true
}

func matchTwoPair(h *handCounts) ([]int, bool) {
	high, ok := h.bestOfCount(2)
	if !ok {
		return nil, false
	}
	low, ok := h.bestOfCount(2, high)
	if !ok {
		return nil, false
	}
	return append([]int{high, low}, h.kickers(1, high, low)...), true
}

func matchOnePair(h *handCounts) ([]int, bool) {
	pair, ok := h.bestOfCount(2)
	if !ok {
		return nil, false
	}
	return append([]int{pair}, h.kickers(3, pair)...), true
}

func matchHighCard(h *handCounts) ([]int, bool) {
	return h.kickers(5), true
}

// Evaluate ranks a hand of 5 or more cards. Duplicate cards are the caller's problem.
func Evaluate(cards []Card) (HandValue, error) {
	if len(cards) < 5 {
		return HandValue{}, fmt.Errorf("%w: got %d", ErrInsufficientCards, len(cards))
	}
	for _, c := range cards {
		if !c.Valid() {
			return HandValue{}, fmt.Errorf("%w: %d/%d", ErrInvalidCardToken, c.Rank, c.Suit)
		}
	}
	counts := countCards(cards)
	for _, r := range rules {
		if tb, ok := r.match(counts); ok {
			return HandValue{Category: r.category, Tiebreakers: tb}, nil
		}
	}
	// matchHighCard always matches
	panic("no hand category matched")
}

func MustEvaluate(cards []Card) HandValue {
	hv, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return hv
}
