package texasholdem

import (
	"fmt"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/handanalyzer"
)

// StartHand deals a new hand
// Inactive players are purged, the dealer button moves to the next eligible seat, and the blinds are posted
func (g *Game) StartHand() error {
	g.purgeInactivePlayers()

	if len(g.eligibleSeats(-1)) < 2 {
		return ErrNotEnoughPlayers
	}

	g.pendingRestart = nil
	g.dealerIndex = g.eligibleSeats(g.dealerIndex)[0]
	order := append([]int{g.dealerIndex}, g.eligibleSeats(g.dealerIndex)...)
	order = order[:len(order)-1] // the dealer is also the last eligible seat

	g.deck.Shuffle(g.rng)
	g.community = make(deck.Hand, 0, 5)
	g.pot = 0
	g.currentBet = 0
	g.lastRaiserIndex = -1
	g.round = RoundPreFlop
	g.endReason = EndReasonNone
	g.showAllCards = false
	g.blindsPosted = false
	g.handNumber++

	for _, id := range g.seats {
		g.players[id].resetForHand()
	}

	if err := g.dealHoleCards(order); err != nil {
		g.fault(err)
		return nil
	}

	g.phase = PhasePlaying
	g.log(g.seats[g.dealerIndex], "Hand #%d: %s has the dealer button", g.handNumber, g.playerAt(g.dealerIndex).Name)

	g.postBlinds(order)
	return nil
}

// dealHoleCards deals two cards to every eligible player, starting left of the dealer
func (g *Game) dealHoleCards(order []int) error {
	n := len(order)
	for i := 0; i < 2; i++ {
		for j := 1; j <= n; j++ {
			card, err := g.deck.Draw()
			if err != nil {
				return fmt.Errorf("could not deal hole cards: %w", err)
			}

			g.playerAt(order[j%n]).hand.AddCard(card)
		}
	}

	return nil
}

// postBlinds posts the blinds and sets the first player to act
// Heads-up, the seat after the dealer posts the small blind, the dealer posts the big blind and acts first.
func (g *Game) postBlinds(order []int) {
	n := len(order)
	sbIndex := order[1%n]
	bbIndex := order[2%n]

	sb := g.playerAt(sbIndex)
	bb := g.playerAt(bbIndex)

	sbAmount := sb.commit(g.options.SmallBlind)
	bbAmount := bb.commit(g.options.BigBlind)
	g.log(sb.ID, "%s posted the small blind of $%d", sb.Name, sbAmount)
	g.log(bb.ID, "%s posted the big blind of $%d", bb.Name, bbAmount)

	// a short-stacked blind lowers the bet to call
	g.currentBet = sb.bet
	if bb.bet > g.currentBet {
		g.currentBet = bb.bet
	}

	g.pot = g.potTotal()
	g.blindsPosted = true

	first := order[3%n]
	if n == 2 {
		first = order[0]
	}

	g.roundStartIndex = first
	g.currentPlayerIndex = first

	if g.isRoundComplete() {
		g.completeRound()
		return
	}

	if !g.playerAt(first).canAct() {
		g.advanceTurn()
		g.roundStartIndex = g.currentPlayerIndex
	}
}

// completeRound deals the next street, or settles the hand after the river
// When fewer than two players can still act, the remaining streets are dealt out.
func (g *Game) completeRound() {
	for {
		if g.round == RoundRiver {
			g.showdown()
			return
		}

		if err := g.nextRound(); err != nil {
			g.fault(err)
			return
		}

		if !g.isRoundComplete() {
			return
		}
	}
}

func (g *Game) nextRound() error {
	g.round++
	g.currentBet = 0
	g.lastRaiserIndex = -1
	for _, id := range g.seats {
		g.players[id].NewRound()
	}

	cards, err := g.deck.DrawN(g.round.communityCardsToDeal())
	if err != nil {
		return fmt.Errorf("could not deal the %s: %w", g.round, err)
	}

	g.community = append(g.community, cards...)
	g.log("", "The %s: %s", g.round, g.community.String())

	if next, ok := g.nextActionableSeat(g.dealerIndex); ok {
		g.currentPlayerIndex = next
		g.roundStartIndex = next
	}

	return nil
}

// endEarly awards the pot to the only player who did not fold
func (g *Game) endEarly() {
	var winner *Player
	for _, id := range g.seats {
		if p := g.players[id]; p.inHand() {
			winner = p
			break
		}
	}

	pot := g.potTotal()
	winner.won(pot)
	g.settle(EndReasonEarlyEnd)

	g.log(winner.ID, "%s wins $%d", winner.Name, pot)
}

// showdown splits the pot between the players holding the best hand class
// Kickers are not compared. Any remainder goes to the first winner in seat order.
func (g *Game) showdown() {
	g.round = RoundShowdown

	var best *handanalyzer.Evaluation
	winners := make([]*Player, 0, len(g.seats))
	for _, id := range g.seats {
		p := g.players[id]
		if !p.inHand() {
			continue
		}

		eval := p.evaluate(g.community)
		if best == nil || handanalyzer.Compare(eval, best) > 0 {
			best = eval
			winners = []*Player{p}
		} else if handanalyzer.Compare(eval, best) == 0 {
			winners = append(winners, p)
		}
	}

	pot := g.potTotal()
	share := pot / len(winners)
	remainder := pot % len(winners)
	for i, winner := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}

		winner.won(amount)
		g.log(winner.ID, "%s wins $%d with %s", winner.Name, amount, handanalyzer.Describe(winner.evaluate(g.community)))
	}

	g.showAllCards = true
	g.settle(EndReasonShowdown)
}

// settle closes out the hand once the pot has been paid out
func (g *Game) settle(reason EndReason) {
	for _, id := range g.seats {
		p := g.players[id]
		p.bet = 0
		p.totalBet = 0
	}

	g.pot = 0
	g.currentBet = 0
	g.endReason = reason
	g.phase = PhaseFinished
}

// refundAndRestart returns every contribution when nobody is left in the hand
func (g *Game) refundAndRestart() {
	refunded := g.refundAll()
	g.setPendingRestart()
	g.log("", "Everybody folded, $%d was returned to the players", refunded)
}
