package texasholdem

import (
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/action"
)

// unshuffled leaves the deck in build order when used by Shuffle()
type unshuffled struct{}

func (unshuffled) Intn(n int) int {
	return n - 1
}

func setupNewGame(t *testing.T, opts Options, players int) *Game {
	t.Helper()

	game, err := NewGame(logrus.StandardLogger(), "test-room", opts)
	require.NoError(t, err)
	game.rng = unshuffled{}

	for i := 1; i <= players; i++ {
		require.NoError(t, game.AddPlayer(playerID(i), fmt.Sprintf("Player %d", i)))
	}

	return game
}

// setupStartedGame seats the players and deals the first hand, seat 0 (p1) has the button
func setupStartedGame(t *testing.T, opts Options, players int) *Game {
	t.Helper()

	game := setupNewGame(t, opts, players)
	require.NoError(t, game.StartGame(playerID(1)))
	require.Equal(t, PhasePlaying, game.phase)

	return game
}

func playerID(i int) string {
	return fmt.Sprintf("p%d", i)
}

func assertAction(t *testing.T, game *Game, playerID string, a action.Action, amount ...int) {
	t.Helper()

	amt := 0
	if len(amount) == 1 {
		amt = amount[0]
	}

	assert.NoError(t, game.ApplyAction(playerID, a, amt), "%s %s", playerID, a)
	assertPotInvariant(t, game)
}

func assertActionFailed(t *testing.T, game *Game, playerID string, a action.Action, amount int, expectedErr *Error) {
	t.Helper()

	pot, currentBet, currentPlayerIndex := game.pot, game.currentBet, game.currentPlayerIndex
	err := game.ApplyAction(playerID, a, amount)
	assert.ErrorIs(t, err, expectedErr, "%s %s %d", playerID, a, amount)

	assert.Equal(t, pot, game.pot)
	assert.Equal(t, currentBet, game.currentBet)
	assert.Equal(t, currentPlayerIndex, game.currentPlayerIndex)
}

// assertPotInvariant ensures the pot is the sum of every unsettled contribution
func assertPotInvariant(t *testing.T, game *Game) {
	t.Helper()

	sum := 0
	for _, id := range game.seats {
		sum += game.players[id].totalBet
	}

	assert.Equal(t, sum, game.pot, "pot must equal the sum of the hand contributions")
}

func chipsInPlay(game *Game) int {
	total := game.pot
	for _, id := range game.seats {
		total += game.players[id].chips
	}

	return total
}

func setHand(game *Game, id, cards string) {
	game.players[id].hand = deck.CardsFromString(cards)
}

func setBoard(game *Game, cards string) {
	game.deck.Cards = deck.CardsFromString(cards)
}

func assertTickFiresRestart(t *testing.T, game *Game) {
	t.Helper()

	require.NotNil(t, game.pendingRestart)
	assert.Equal(t, PhaseRestarting, game.phase)

	update, err := game.Tick(game.pendingRestart.After.Add(-time.Millisecond))
	assert.NoError(t, err)
	assert.False(t, update)

	update, err = game.Tick(game.pendingRestart.After)
	assert.NoError(t, err)
	assert.True(t, update)
	assert.Nil(t, game.pendingRestart)
}
