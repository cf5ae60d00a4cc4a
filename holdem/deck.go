package holdem

import (
	"math/rand"

	"github.com/idsulik/go-collections/v3/queue"
)

// Deck is the 52 card universe minus the excluded cards. Draws come off the front of the pool.
type Deck struct {
	rand  *rand.Rand
	cards []Card
	q     *queue.Queue[Card]
}

func NewDeck(rand *rand.Rand, excluded ...Card) (*Deck, error) {
	if err := CheckDistinct(excluded...); err != nil {
		return nil, err
	}
	var skip [DeckSize]bool
	for _, c := range excluded {
		skip[c.Index()] = true
	}

	h := &Deck{
		rand:  rand,
		cards: make([]Card, 0, DeckSize-len(excluded)),
	}
	for _, suit := range Suits {
		for rank := TWO; rank <= ACE; rank++ {
			c := Card{Rank: rank, Suit: suit}
			if !skip[c.Index()] {
				h.cards = append(h.cards, c)
			}
		}
	}
	h.refill(h.cards)
	return h, nil
}

func (h *Deck) refill(order []Card) {
	h.q = queue.New[Card](len(order))
	for _, c := range order {
		h.q.Enqueue(c)
	}
}

// Shuffle puts every card of the universe back and permutes it.
// rand.Perm is an inside-out Fisher-Yates, so the permutation is unbiased.
func (h *Deck) Shuffle() {
	perm := h.rand.Perm(len(h.cards))
	order := make([]Card, len(h.cards))
	for i, v := range perm {
		order[i] = h.cards[v]
	}
	h.refill(order)
}

func (h *Deck) Draw() (Card, error) {
	val, ex := h.q.Dequeue()
	if !ex {
		return Card{}, ErrDeckExhausted
	}
	return val, nil
}

// DrawN stops at the first failed draw and returns what was drawn so far.
func (h *Deck) DrawN(n int) ([]Card, error) {
	out := make([]Card, 0, n)
	for range n {
		c, err := h.Draw()
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (h *Deck) Len() int {
	return h.q.Len()
}

// Cards returns the undrawn cards in draw order.
func (h *Deck) Cards() []Card {
	out := make([]Card, 0, h.q.Len())
	h.q.ForEach(func(c Card) {
		out = append(out, c)
	})
	return out
}
