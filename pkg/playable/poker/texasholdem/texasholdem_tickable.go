package texasholdem

import (
	"time"

	"holdem-server/pkg/playable"
)

var _ playable.Tickable = (*Game)(nil)

const tickInterval = 250 * time.Millisecond

// Interval returns how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return tickInterval
}

// Tick fires a due pending restart
// Inactive players are purged, then the next hand is dealt if at least two players can play
func (g *Game) Tick(now time.Time) (bool, error) {
	if g.pendingRestart == nil || now.Before(g.pendingRestart.After) {
		return false, nil
	}

	g.pendingRestart = nil
	g.purgeInactivePlayers()

	if len(g.eligibleSeats(-1)) < 2 {
		g.setWaiting()
		g.log("", "Waiting for more players")
		return true, nil
	}

	if err := g.StartHand(); err != nil {
		return false, err
	}

	return true, nil
}

// HasPendingRestart returns true if a redeal is scheduled
func (g *Game) HasPendingRestart() bool {
	return g.pendingRestart != nil
}
