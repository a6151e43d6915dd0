package deck

import (
	"sort"
	"strings"
)

// Hand represents a collection of cards
type Hand []*Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	if cmp := strings.Compare(string(h[i].Suit), string(h[j].Suit)); cmp != 0 {
		return cmp < 0
	}

	return h[i].Rank < h[j].Rank
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h *Hand) HasCard(card *Card) bool {
	for _, c := range *h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// SortByRankDesc returns a copy of the hand ordered from the highest rank to the lowest
// Cards of the same rank keep their suit order
func (h Hand) SortByRankDesc() Hand {
	h2 := h.Clone()
	sort.SliceStable(h2, func(i, j int) bool {
		if h2[i].Rank != h2[j].Rank {
			return h2[i].Rank > h2[j].Rank
		}

		return h2[i].Suit < h2[j].Suit
	})

	return h2
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
