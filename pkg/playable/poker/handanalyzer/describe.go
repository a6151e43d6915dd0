package handanalyzer

import (
	"fmt"

	"holdem-server/pkg/deck"
)

// Describe returns a human-readable label for the evaluation, i.e., "Full House Kings over Tens"
func Describe(e *Evaluation) string {
	if e == nil || len(e.Cards) == 0 {
		return ""
	}

	high := deck.RankName(e.Cards[0].Rank)
	suit := e.Cards[0].Suit.Title()

	switch e.Hand {
	case RoyalFlush:
		return fmt.Sprintf("Royal Flush of %s", suit)
	case StraightFlush:
		return fmt.Sprintf("Straight Flush %s high of %s", high, suit)
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind %s", deck.RankPlural(e.ranks[0]))
	case FullHouse:
		return fmt.Sprintf("Full House %s over %s", deck.RankPlural(e.ranks[0]), deck.RankPlural(e.ranks[1]))
	case Flush:
		return fmt.Sprintf("Flush %s high of %s", high, suit)
	case Straight:
		return fmt.Sprintf("Straight %s high", high)
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind %s", deck.RankPlural(e.ranks[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair %s and %s", deck.RankPlural(e.ranks[0]), deck.RankPlural(e.ranks[1]))
	case OnePair:
		return fmt.Sprintf("Pair of %s", deck.RankPlural(e.ranks[0]))
	default:
		return fmt.Sprintf("High Card %s", high)
	}
}

// Description is a convenience wrapper for Describe
func (e *Evaluation) Description() string {
	return Describe(e)
}
