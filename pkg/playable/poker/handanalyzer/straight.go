package handanalyzer

import (
	"holdem-server/pkg/deck"
)

// straightHigh returns the rank of the highest card if the five cards form a straight
// The cards must already be sorted by rank, highest first.
// Aces only play high, so A-2-3-4-5 is not a straight.
func straightHigh(cards deck.Hand) int {
	if len(cards) != 5 {
		return 0
	}

	for i := 1; i < len(cards); i++ {
		if cards[i-1].Rank-cards[i].Rank != 1 {
			return 0
		}
	}

	return cards[0].Rank
}

// isFlush returns true if there are five cards that all share a suit
func isFlush(cards deck.Hand) bool {
	if len(cards) != 5 {
		return false
	}

	for _, card := range cards[1:] {
		if card.Suit != cards[0].Suit {
			return false
		}
	}

	return true
}
