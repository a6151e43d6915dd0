package handanalyzer

import (
	"sort"

	"holdem-server/pkg/deck"
)

// rankGroup is a set of cards sharing a rank
type rankGroup struct {
	rank  int
	count int
}

// HandAnalyzer classifies a hand of at most five cards
type HandAnalyzer struct {
	cards    deck.Hand
	groups   []rankGroup
	flush    bool
	straight int

	hand Hand
}

// New will return a new HandAnalyzer instance
// Hands with fewer than five cards can only make pairs, two pair, trips or quads.
func New(cards []*deck.Card) *HandAnalyzer {
	if len(cards) > 5 {
		panic("HandAnalyzer supports at most five cards")
	}

	h := &HandAnalyzer{
		// clone to prevent modifying original
		cards: deck.Hand(cards).SortByRankDesc(),
	}

	h.analyzeHand()
	h.calculateHand()

	return h
}

// analyzeHand groups the cards by rank and checks for straights and flushes
// This method should only be called once from the constructor
func (h *HandAnalyzer) analyzeHand() {
	counts := make(map[int]int)
	for _, card := range h.cards {
		counts[card.Rank]++
	}

	h.groups = make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		h.groups = append(h.groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(h.groups, func(i, j int) bool {
		if h.groups[i].count != h.groups[j].count {
			return h.groups[i].count > h.groups[j].count
		}

		return h.groups[i].rank > h.groups[j].rank
	})

	h.flush = isFlush(h.cards)
	h.straight = straightHigh(h.cards)
}

func (h *HandAnalyzer) calculateHand() {
	if h.straight > 0 && h.flush {
		if h.straight == deck.Ace {
			h.hand = RoyalFlush
		} else {
			h.hand = StraightFlush
		}

		return
	}

	if len(h.groups) == 0 {
		h.hand = HighCard
		return
	}

	top := h.groups[0].count
	second := 0
	if len(h.groups) > 1 {
		second = h.groups[1].count
	}

	switch {
	case top == 4:
		h.hand = FourOfAKind
	case top == 3 && second >= 2:
		h.hand = FullHouse
	case h.flush:
		h.hand = Flush
	case h.straight > 0:
		h.hand = Straight
	case top == 3:
		h.hand = ThreeOfAKind
	case top == 2 && second == 2:
		h.hand = TwoPair
	case top == 2:
		h.hand = OnePair
	default:
		h.hand = HighCard
	}
}

// GetHand will return the hand class the cards make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetCards returns the analyzed cards, highest rank first
func (h *HandAnalyzer) GetCards() deck.Hand {
	return h.cards.Clone()
}

// GetFourOfAKind will return the rank of the four of a kind, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if h.hand == FourOfAKind {
		return h.groups[0].rank, true
	}

	return 0, false
}

// GetFullHouse will return the trips and pair ranks of a full house, if possible
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if h.hand == FullHouse {
		return []int{h.groups[0].rank, h.groups[1].rank}, true
	}

	return nil, false
}

// GetStraight will return the high card of the straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	if h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetFlush returns the suit of the flush, if possible
func (h *HandAnalyzer) GetFlush() (deck.Suit, bool) {
	if h.flush {
		return h.cards[0].Suit, true
	}

	return "", false
}

// GetThreeOfAKind will return the rank of the trips, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if h.hand == ThreeOfAKind {
		return h.groups[0].rank, true
	}

	return 0, false
}

// GetTwoPair will return the ranks of the two pairs, highest first, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if h.hand == TwoPair {
		return []int{h.groups[0].rank, h.groups[1].rank}, true
	}

	return nil, false
}

// GetPair will return the rank of the pair, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if h.hand == OnePair {
		return h.groups[0].rank, true
	}

	return 0, false
}

// GetHighCard will return the rank of the highest card
func (h *HandAnalyzer) GetHighCard() (int, bool) {
	if len(h.cards) == 0 {
		return 0, false
	}

	return h.cards[0].Rank, true
}

// displayRanks orders the ranks by group size, then rank
// It only breaks display ties between subsets of the same class and never decides a winner.
func (h *HandAnalyzer) displayRanks() []int {
	ranks := make([]int, len(h.groups))
	for i, g := range h.groups {
		ranks[i] = g.rank
	}

	return ranks
}

func compareRanks(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}

			return -1
		}
	}

	return len(a) - len(b)
}
