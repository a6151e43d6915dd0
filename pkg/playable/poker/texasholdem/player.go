package texasholdem

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/handanalyzer"
)

// Player is a person seated in the room
type Player struct {
	ID   string
	Name string

	chips         int
	startingChips int

	// bet is the amount committed in the current betting round
	bet int
	// totalBet is the amount committed in the current hand
	totalBet int

	hand     deck.Hand
	winnings int

	folded bool
	allIn  bool

	// isActive is false once the player has left but the seat is kept to settle the hand
	isActive bool
	// dealtIn is false for players sitting out the current hand
	dealtIn bool
	// acted is true once the player has acted since the last bet or raise
	acted bool
}

func newPlayer(id, name string, chips int) *Player {
	return &Player{
		ID:            id,
		Name:          name,
		chips:         chips,
		startingChips: chips,
		hand:          make(deck.Hand, 0, 2),
		isActive:      true,
	}
}

// Chips returns the player's stack
func (p *Player) Chips() int {
	return p.chips
}

// eligible returns true if the player can be dealt into the next hand
func (p *Player) eligible() bool {
	return p.isActive && p.chips > 0
}

// inHand returns true if the player was dealt in and has not folded
func (p *Player) inHand() bool {
	return p.dealtIn && !p.folded
}

// canAct returns true if the player can still make a decision this hand
func (p *Player) canAct() bool {
	return p.inHand() && !p.allIn
}

// resetForHand clears all per-hand state
func (p *Player) resetForHand() {
	p.bet = 0
	p.totalBet = 0
	p.hand = make(deck.Hand, 0, 2)
	p.winnings = 0
	p.allIn = false
	p.acted = false
	p.startingChips = p.chips
	p.dealtIn = p.eligible()
	p.folded = !p.dealtIn
}

// NewRound will reset the player for a new betting round
func (p *Player) NewRound() {
	p.bet = 0
	p.acted = false
}

// commit moves chips from the stack into the pot
// The amount is clamped to the stack and the player is all-in when it runs out.
// The value returned is the amount actually committed.
func (p *Player) commit(amount int) int {
	if amount > p.chips {
		amount = p.chips
	}

	p.chips -= amount
	p.bet += amount
	p.totalBet += amount
	if p.chips == 0 {
		p.allIn = true
	}

	return amount
}

// refund returns the player's contribution to the current hand
func (p *Player) refund() int {
	amount := p.totalBet
	p.chips += amount
	p.bet = 0
	p.totalBet = 0
	p.allIn = false

	return amount
}

func (p *Player) won(amount int) {
	p.chips += amount
	p.winnings += amount
}

func (p *Player) evaluate(community deck.Hand) *handanalyzer.Evaluation {
	if len(p.hand) == 0 {
		return nil
	}

	return handanalyzer.Evaluate(p.hand, community)
}
