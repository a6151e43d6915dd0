package handanalyzer

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"holdem-server/pkg/deck"
)

// DefaultCacheSize is the number of evaluations memoised by the package-level evaluator
const DefaultCacheSize = 4096

// Evaluation is the best hand a player can make
// Evaluations are shared by the cache and must be treated as read-only
type Evaluation struct {
	Hand  Hand      `json:"rank"`
	Cards deck.Hand `json:"cards"`

	ranks []int
}

// Name returns the name of the hand class, i.e., "Full House"
func (e *Evaluation) Name() string {
	return e.Hand.String()
}

// Compare compares two evaluations by hand class only
// Returns a positive number if a beats b, negative if b beats a, and zero on a tie
func Compare(a, b *Evaluation) int {
	return int(a.Hand) - int(b.Hand)
}

// Evaluator finds the best five-card hand and memoises the result
type Evaluator struct {
	cache *lru.Cache
}

// NewEvaluator returns an evaluator that caches up to size results
func NewEvaluator(size int) (*Evaluator, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &Evaluator{cache: cache}, nil
}

var defaultEvaluator *Evaluator

func init() {
	var err error
	if defaultEvaluator, err = NewEvaluator(DefaultCacheSize); err != nil {
		panic(err)
	}
}

// Evaluate finds the best hand using the package-level evaluator
func Evaluate(hole, community []*deck.Card) *Evaluation {
	return defaultEvaluator.Evaluate(hole, community)
}

// Evaluate finds the best five-card hand out of the hole and community cards
// Every five-card subset is considered and the best hand class wins. If fewer than
// five cards are available, the cards are classified as a whole.
func (e *Evaluator) Evaluate(hole, community []*deck.Card) *Evaluation {
	cards := make(deck.Hand, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	key := cacheKey(cards)
	if val, ok := e.cache.Get(key); ok {
		return val.(*Evaluation)
	}

	eval := evaluate(cards)
	e.cache.Add(key, eval)

	return eval
}

// Len returns the number of cached evaluations
func (e *Evaluator) Len() int {
	return e.cache.Len()
}

func evaluate(cards deck.Hand) *Evaluation {
	if len(cards) <= 5 {
		return newEvaluation(New(cards))
	}

	var best *HandAnalyzer
	var bestRanks []int
	forEachCombination(cards, 5, func(subset deck.Hand) {
		h := New(subset)
		if best == nil || h.hand > best.hand {
			best = h
			bestRanks = h.displayRanks()
			return
		}

		if h.hand == best.hand {
			if ranks := h.displayRanks(); compareRanks(ranks, bestRanks) > 0 {
				best = h
				bestRanks = ranks
			}
		}
	})

	return newEvaluation(best)
}

func newEvaluation(h *HandAnalyzer) *Evaluation {
	return &Evaluation{
		Hand:  h.GetHand(),
		Cards: h.GetCards(),
		ranks: h.displayRanks(),
	}
}

// forEachCombination calls fn with every subset of size k
// The subset slice is reused between calls
func forEachCombination(cards deck.Hand, k int, fn func(subset deck.Hand)) {
	subset := make(deck.Hand, k)

	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			fn(subset)
			return
		}

		for i := start; i <= len(cards)-(k-depth); i++ {
			subset[depth] = cards[i]
			walk(i+1, depth+1)
		}
	}

	walk(0, 0)
}

// cacheKey returns a canonical key for a set of cards regardless of order
func cacheKey(cards deck.Hand) string {
	keys := make([]string, len(cards))
	for i, card := range cards {
		keys[i] = deck.CardToString(card)
	}

	sort.Strings(keys)
	return strings.Join(keys, ",")
}
