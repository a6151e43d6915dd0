package texasholdem

import (
	"holdem-server/pkg/playable/poker/action"
)

// MinRaise returns the smallest total a bet or raise can be made to
func (g *Game) MinRaise() int {
	return g.currentBet + g.options.BigBlind
}

// GetCurrentTurn returns the player who is currently making a decision
func (g *Game) GetCurrentTurn() (*Player, bool) {
	if g.phase != PhasePlaying || len(g.seats) == 0 {
		return nil, false
	}

	if g.currentPlayerIndex < 0 || g.currentPlayerIndex >= len(g.seats) {
		return nil, false
	}

	p := g.playerAt(g.currentPlayerIndex)
	if !p.canAct() {
		return nil, false
	}

	return p, true
}

// ActionsForPlayer returns the actions the player can take right now
func (g *Game) ActionsForPlayer(id string) []action.Action {
	turn, ok := g.GetCurrentTurn()
	if !ok || turn.ID != id {
		return nil
	}

	actions := make([]action.Action, 0, 3)
	if turn.bet == g.currentBet {
		actions = append(actions, action.Check)
	} else if turn.bet < g.currentBet {
		actions = append(actions, action.Call)
	}

	if turn.chips+turn.bet >= g.MinRaise() {
		if g.currentBet == 0 {
			actions = append(actions, action.Bet)
		} else {
			actions = append(actions, action.Raise)
		}
	}

	return append(actions, action.Fold)
}

// ApplyAction performs the player's action
// For bet and raise, the amount is the total the player's bet is raised to
func (g *Game) ApplyAction(playerID string, a action.Action, amount int) error {
	if g.phase != PhasePlaying {
		return newError(ErrIllegalAction, "there is no hand in progress")
	}

	p, ok := g.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if !p.canAct() {
		return newError(ErrIllegalAction, "you cannot act in this hand")
	}

	if turn, ok := g.GetCurrentTurn(); !ok || turn != p {
		return ErrNotYourTurn
	}

	if err := g.validateAction(p, a, amount); err != nil {
		return err
	}

	logAmount := amount
	switch a {
	case action.Fold:
		p.folded = true
	case action.Check:
		// nothing to commit
	case action.Call:
		logAmount = p.commit(g.currentBet - p.bet)
	case action.Bet, action.Raise:
		p.commit(amount - p.bet)
		g.currentBet = amount
		g.lastRaiserIndex = g.currentPlayerIndex
		g.reopenAction(p)
	}

	p.acted = true
	g.pot = g.potTotal()

	message := a.LogMessage(logAmount)
	if p.allIn {
		message += " and is all-in"
	}

	g.log(p.ID, "%s %s", p.Name, message)
	g.progress(true)

	return nil
}

func (g *Game) validateAction(p *Player, a action.Action, amount int) error {
	switch a {
	case action.Fold:
		return nil
	case action.Check:
		if p.bet != g.currentBet {
			return newError(ErrIllegalAction, "you cannot check, the bet is $%d", g.currentBet)
		}

		return nil
	case action.Call:
		if p.bet >= g.currentBet {
			return newError(ErrIllegalAction, "there is no bet to call")
		}

		return nil
	case action.Bet:
		if g.currentBet != 0 {
			return newError(ErrIllegalAction, "you cannot bet, the bet is $%d", g.currentBet)
		}

		return g.validateAmount(p, amount)
	case action.Raise:
		if g.currentBet == 0 {
			return newError(ErrIllegalAction, "you cannot raise without a bet")
		}

		return g.validateAmount(p, amount)
	}

	return newError(ErrIllegalAction, "unknown action %q", string(a))
}

func (g *Game) validateAmount(p *Player, amount int) error {
	if minRaise := g.MinRaise(); amount < minRaise {
		return newError(ErrIllegalAction, "the bet must be to at least $%d", minRaise)
	}

	if amount-p.bet > p.chips {
		return newError(ErrIllegalAction, "you only have $%d", p.chips)
	}

	return nil
}

// reopenAction requires everybody else still in the hand to act again
func (g *Game) reopenAction(raiser *Player) {
	for _, id := range g.seats {
		if p := g.players[id]; p != raiser {
			p.acted = false
		}
	}
}

func (g *Game) potTotal() int {
	total := 0
	for _, id := range g.seats {
		total += g.players[id].totalBet
	}

	return total
}

func (g *Game) inHandCount() int {
	count := 0
	for _, id := range g.seats {
		if g.players[id].inHand() {
			count++
		}
	}

	return count
}

// isRoundComplete returns true when no player owes a decision in the current betting round
func (g *Game) isRoundComplete() bool {
	canAct := 0
	pending := 0
	var last *Player
	for _, id := range g.seats {
		p := g.players[id]
		if !p.canAct() {
			continue
		}

		canAct++
		last = p
		if !p.acted || p.bet != g.currentBet {
			pending++
		}
	}

	if pending == 0 {
		return true
	}

	// a lone player who has matched the bet has nobody left to bet against
	return canAct == 1 && last.bet >= g.currentBet
}

// progress moves the hand forward after a player folded, acted or left
// If advanceTurn is false, the turn pointer stays where it is unless the round ends.
func (g *Game) progress(advanceTurn bool) {
	switch g.inHandCount() {
	case 0:
		g.refundAndRestart()
		return
	case 1:
		g.endEarly()
		return
	}

	if g.isRoundComplete() {
		g.completeRound()
		return
	}

	if advanceTurn {
		g.advanceTurn()
	}
}

// advanceTurn moves the pointer to the next player who can act
func (g *Game) advanceTurn() {
	if next, ok := g.nextActionableSeat(g.currentPlayerIndex); ok {
		g.currentPlayerIndex = next
		return
	}

	g.completeRound()
}

// nextActionableSeat returns the first seat after {from} that can act
// The scan is bounded by the number of seats
func (g *Game) nextActionableSeat(from int) (int, bool) {
	n := len(g.seats)
	for i := 1; i <= n; i++ {
		index := ((from+i)%n + n) % n
		if g.playerAt(index).canAct() {
			return index, true
		}
	}

	return 0, false
}
