package texasholdem

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/pkg/playable/poker/action"
)

func TestNewGame_invalidOptions(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.SmallBlind = 30
	_, err := NewGame(logrus.StandardLogger(), "room", opts)
	a.EqualError(err, "small blind cannot exceed the big blind")

	opts = DefaultOptions()
	opts.MaxPlayers = 1
	_, err = NewGame(logrus.StandardLogger(), "room", opts)
	a.EqualError(err, "max players must be >= 2")

	opts = DefaultOptions()
	opts.StartingChips = 0
	_, err = NewGame(logrus.StandardLogger(), "room", opts)
	a.EqualError(err, "starting chips must be > 0")
}

func TestGame_AddPlayer(t *testing.T) {
	a := assert.New(t)

	game := setupNewGame(t, DefaultOptions(), 0)
	a.NoError(game.AddPlayer("p1", "Alice"))
	a.NoError(game.AddPlayer("p2", "Bob"))

	a.Equal("p1", game.RoomCreatorID())
	a.Equal(2, game.PlayerCount())
	a.Equal(1000, game.players["p1"].chips)
	a.Equal([]string{"p1", "p2"}, game.seats)

	err := game.AddPlayer("p1", "Alice again")
	a.True(errors.Is(err, ErrIllegalAction))

	for i := 3; i <= 8; i++ {
		a.NoError(game.AddPlayer(playerID(i), "Player"))
	}

	err = game.AddPlayer("p9", "Too Late")
	a.True(errors.Is(err, ErrRoomFull))
	a.Equal(8, game.PlayerCount())
	_, ok := game.GetPlayer("p9")
	a.False(ok)
}

func TestGame_StartGame(t *testing.T) {
	a := assert.New(t)

	game := setupNewGame(t, DefaultOptions(), 1)
	a.ErrorIs(game.StartGame("p1"), ErrNotEnoughPlayers)
	a.Equal(PhaseWaiting, game.phase)

	a.NoError(game.AddPlayer("p2", "Player 2"))
	a.ErrorIs(game.StartGame("p2"), ErrUnauthorized)
	a.Equal(PhaseWaiting, game.phase)

	a.NoError(game.StartGame("p1"))
	a.Equal(PhasePlaying, game.phase)
	a.Equal(1, game.handNumber)

	a.ErrorIs(game.StartGame("p1"), ErrIllegalAction)
}

func TestGame_headsUpBlinds(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	p1 := game.players["p1"]
	p2 := game.players["p2"]

	// the dealer posts the big blind and acts first
	a.Equal(0, game.dealerIndex)
	a.Equal(20, p1.bet)
	a.Equal(980, p1.chips)
	a.Equal(10, p2.bet)
	a.Equal(990, p2.chips)
	a.Equal(20, game.currentBet)
	a.Equal(30, game.pot)
	a.Equal(0, game.currentPlayerIndex)
	a.True(game.blindsPosted)
	a.Equal(2000, chipsInPlay(game))
	assertPotInvariant(t, game)

	a.Equal(2, len(p1.hand))
	a.Equal(2, len(p2.hand))
	a.Equal(48, game.deck.CardsLeft())

	a.Equal([]action.Action{action.Check, action.Raise, action.Fold}, game.ActionsForPlayer("p1"))
	a.Nil(game.ActionsForPlayer("p2"))

	assertAction(t, game, "p1", action.Check)
	a.Equal(1, game.currentPlayerIndex)
	a.Equal(RoundPreFlop, game.round)
	a.Equal([]action.Action{action.Call, action.Raise, action.Fold}, game.ActionsForPlayer("p2"))

	assertAction(t, game, "p2", action.Call)
	a.Equal(RoundFlop, game.round)
	a.Equal(3, len(game.community))
	a.Equal(40, game.pot)
	a.Equal(0, game.currentBet)
	a.Equal(0, p1.bet)
	a.Equal(0, p2.bet)
	a.Equal(20, p1.totalBet)
	a.Equal(20, p2.totalBet)

	// first to act after the flop is left of the dealer
	a.Equal(1, game.currentPlayerIndex)
	a.Equal(1, game.roundStartIndex)
	a.Equal([]action.Action{action.Check, action.Bet, action.Fold}, game.ActionsForPlayer("p2"))
}

func TestGame_threePlayerScenario(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 3)
	pa, pb, pc := game.players["p1"], game.players["p2"], game.players["p3"]

	a.Equal(0, game.dealerIndex)
	a.Equal(0, pa.bet)
	a.Equal(10, pb.bet)
	a.Equal(20, pc.bet)
	a.Equal(20, game.currentBet)
	a.Equal(0, game.currentPlayerIndex)
	a.Equal(3000, chipsInPlay(game))

	assertAction(t, game, "p1", action.Call)
	a.Equal(20, pa.bet)
	a.Equal(50, game.pot)
	a.Equal(1, game.currentPlayerIndex)

	assertAction(t, game, "p2", action.Call)
	a.Equal(20, pb.bet)
	a.Equal(60, game.pot)
	a.Equal(2, game.currentPlayerIndex)

	// the big blind still gets the option
	a.Equal(RoundPreFlop, game.round)
	assertAction(t, game, "p3", action.Check)

	a.Equal(RoundFlop, game.round)
	a.Equal(3, len(game.community))
	a.Equal(0, game.currentBet)
	for _, p := range []*Player{pa, pb, pc} {
		a.Equal(0, p.bet)
	}

	a.Equal(1, game.currentPlayerIndex)
	a.Equal(60, game.pot)
	a.Equal(3000, chipsInPlay(game))
}

func TestGame_callIsClampedToStack(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 3)
	pa := game.players["p1"]
	pa.chips = 15

	assertAction(t, game, "p1", action.Call)
	a.Equal(15, pa.bet)
	a.Equal(0, pa.chips)
	a.True(pa.allIn)
	a.Equal(45, game.pot)
	a.Equal(20, game.currentBet)

	// the all-in player is skipped for the rest of the hand
	assertAction(t, game, "p2", action.Call)
	assertAction(t, game, "p3", action.Check)
	a.Equal(RoundFlop, game.round)
	a.Equal(1, game.currentPlayerIndex)

	assertAction(t, game, "p2", action.Check)
	assertAction(t, game, "p3", action.Check)
	a.Equal(RoundTurn, game.round)
	a.Equal(1, game.currentPlayerIndex)
}

func TestGame_rejectedActionsDoNotMutate(t *testing.T) {
	game := setupStartedGame(t, DefaultOptions(), 3)

	assertActionFailed(t, game, "p2", action.Call, 0, ErrNotYourTurn)
	assertActionFailed(t, game, "p1", action.Check, 0, ErrIllegalAction)
	assertActionFailed(t, game, "p1", action.Bet, 40, ErrIllegalAction)
	assertActionFailed(t, game, "p1", action.Raise, 30, ErrIllegalAction)
	assertActionFailed(t, game, "p1", action.Raise, 5000, ErrIllegalAction)
	assertActionFailed(t, game, "p1", action.Action("discard"), 0, ErrIllegalAction)
	assertActionFailed(t, game, "nobody", action.Fold, 0, ErrPlayerNotFound)

	// min raise is one big blind over the current bet
	assert.Equal(t, 40, game.MinRaise())
	assertAction(t, game, "p1", action.Raise, 40)
	assert.Equal(t, 40, game.currentBet)
	assert.Equal(t, 0, game.lastRaiserIndex)
	assertActionFailed(t, game, "p2", action.Raise, 50, ErrIllegalAction)

	assertAction(t, game, "p2", action.Fold)
	assertActionFailed(t, game, "p2", action.Call, 0, ErrIllegalAction)
}

func TestGame_ApplyAction_noHandInProgress(t *testing.T) {
	game := setupNewGame(t, DefaultOptions(), 2)
	assertActionFailed(t, game, "p1", action.Check, 0, ErrIllegalAction)
}

func TestGame_raiseReopensAction(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 3)
	assertAction(t, game, "p1", action.Call)
	assertAction(t, game, "p2", action.Call)
	assertAction(t, game, "p3", action.Raise, 60)

	a.Equal(2, game.lastRaiserIndex)
	a.Equal(60, game.currentBet)
	a.Equal(RoundPreFlop, game.round)
	a.Equal(0, game.currentPlayerIndex)

	assertAction(t, game, "p1", action.Call)
	a.Equal(RoundPreFlop, game.round)
	assertAction(t, game, "p2", action.Call)

	a.Equal(RoundFlop, game.round)
	a.Equal(180, game.pot)
	a.Equal(-1, game.lastRaiserIndex)
}

func TestGame_turnPointerSkipsFoldedSeats(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 4)
	a.Equal(3, game.currentPlayerIndex)

	assertAction(t, game, "p4", action.Fold)
	a.Equal(0, game.currentPlayerIndex)
	assertAction(t, game, "p1", action.Call)
	assertAction(t, game, "p2", action.Call)
	assertAction(t, game, "p3", action.Check)

	a.Equal(RoundFlop, game.round)
	a.Equal(1, game.currentPlayerIndex)
	assertAction(t, game, "p2", action.Check)
	a.Equal(2, game.currentPlayerIndex)
	assertAction(t, game, "p3", action.Check)
	a.Equal(0, game.currentPlayerIndex, "p4 folded and is skipped")
	assertAction(t, game, "p1", action.Check)

	a.Equal(RoundTurn, game.round)
	a.Equal(1, game.currentPlayerIndex)
}

func TestGame_allInRunsOutTheBoard(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 4)
	assertAction(t, game, "p4", action.Fold)
	assertAction(t, game, "p1", action.Raise, 1000)
	a.True(game.players["p1"].allIn)
	a.Equal(1, game.currentPlayerIndex)

	assertAction(t, game, "p2", action.Fold)
	a.Equal(2, game.currentPlayerIndex)

	// the big blind can only call 980 more
	assertAction(t, game, "p3", action.Call)
	a.True(game.players["p3"].allIn)

	a.Equal(PhaseFinished, game.phase)
	a.Equal(RoundShowdown, game.round)
	a.Equal(EndReasonShowdown, game.endReason)
	a.Equal(5, len(game.community))
	a.True(game.showAllCards)
	a.Equal(0, game.pot)
	a.Equal(4000, chipsInPlay(game))
	a.Equal(1000+1000+10, game.players["p1"].winnings+game.players["p3"].winnings)
}

func TestGame_foldEndsHandEarly(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	assertAction(t, game, "p1", action.Fold)

	a.Equal(PhaseFinished, game.phase)
	a.Equal(EndReasonEarlyEnd, game.endReason)
	a.Equal(980, game.players["p1"].chips)
	a.Equal(1020, game.players["p2"].chips)
	a.Equal(30, game.players["p2"].winnings)
	a.Equal(0, game.pot)
	a.False(game.showAllCards)
	a.Equal(2000, chipsInPlay(game))

	_, ok := game.GetCurrentTurn()
	a.False(ok)
	assertActionFailed(t, game, "p2", action.Check, 0, ErrIllegalAction)
}

func TestGame_showdownSplitsEqualClass(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.SmallBlind = 15
	game := setupStartedGame(t, opts, 3)

	setHand(game, "p1", "13c,2d")
	setHand(game, "p2", "14c,14d")
	setHand(game, "p3", "13d,3h")
	setBoard(game, "13s,4c,7d,9h,11s")

	assertAction(t, game, "p1", action.Call)
	assertAction(t, game, "p2", action.Fold)
	assertAction(t, game, "p3", action.Check)
	a.Equal(55, game.pot)

	for _, round := range []BettingRound{RoundFlop, RoundTurn, RoundRiver} {
		a.Equal(round, game.round)
		assertAction(t, game, "p3", action.Check)
		assertAction(t, game, "p1", action.Check)
	}

	a.Equal(PhaseFinished, game.phase)
	a.Equal(EndReasonShowdown, game.endReason)
	a.True(game.showAllCards)

	// Pair of Kings against Pair of Kings, the odd chip goes to the earlier seat
	a.Equal(28, game.players["p1"].winnings)
	a.Equal(27, game.players["p3"].winnings)
	a.Equal(0, game.players["p2"].winnings)
	a.Equal(1008, game.players["p1"].chips)
	a.Equal(1007, game.players["p3"].chips)
	a.Equal(985, game.players["p2"].chips)
	a.Equal(3000, chipsInPlay(game))
}

func TestGame_showdownIgnoresKickers(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	setHand(game, "p1", "13c,14d")
	setHand(game, "p2", "13d,3h")
	setBoard(game, "13s,4c,7d,9h,11s")

	assertAction(t, game, "p1", action.Check)
	assertAction(t, game, "p2", action.Call)
	for i := 0; i < 3; i++ {
		assertAction(t, game, "p2", action.Check)
		assertAction(t, game, "p1", action.Check)
	}

	// an ace kicker does not beat a three kicker
	a.Equal(20, game.players["p1"].winnings)
	a.Equal(20, game.players["p2"].winnings)
}

func TestGame_showdownBestClassWins(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	setHand(game, "p1", "4d,4h")
	setHand(game, "p2", "13d,3h")
	setBoard(game, "13s,4c,7d,9h,11s")

	assertAction(t, game, "p1", action.Raise, 100)
	assertAction(t, game, "p2", action.Call)
	for i := 0; i < 3; i++ {
		assertAction(t, game, "p2", action.Check)
		assertAction(t, game, "p1", action.Check)
	}

	a.Equal(200, game.players["p1"].winnings)
	a.Equal(1100, game.players["p1"].chips)
	a.Equal(900, game.players["p2"].chips)
}

func TestGame_AdvanceToNextHand(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 3)
	a.ErrorIs(game.AdvanceToNextHand(), ErrIllegalAction)

	assertAction(t, game, "p1", action.Fold)
	assertAction(t, game, "p2", action.Fold)
	a.Equal(PhaseFinished, game.phase)

	a.NoError(game.AdvanceToNextHand())
	a.Equal(PhasePlaying, game.phase)
	a.Equal(1, game.dealerIndex)
	a.Equal(2, game.handNumber)
	a.Equal(10, game.players["p3"].bet)
	a.Equal(20, game.players["p1"].bet)
	a.Equal(1, game.currentPlayerIndex)
	a.Equal(3000, chipsInPlay(game))
}

func TestGame_AdvanceToNextHand_notEnoughPlayers(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	game.players["p2"].chips += game.players["p1"].chips
	game.players["p1"].chips = 0
	assertAction(t, game, "p1", action.Fold)

	a.NoError(game.AdvanceToNextHand())
	a.Equal(PhaseWaiting, game.phase)
	a.Equal(2, game.PlayerCount())
}

func TestGame_AdvanceToNextHand_waitingRequiresStartGame(t *testing.T) {
	a := assert.New(t)

	game := setupNewGame(t, DefaultOptions(), 3)
	a.ErrorIs(game.StartGame("p2"), ErrUnauthorized)

	a.ErrorIs(game.AdvanceToNextHand(), ErrIllegalAction)
	a.Equal(PhaseWaiting, game.phase)
	a.Equal(0, game.handNumber)
	a.False(game.blindsPosted)

	a.NoError(game.StartGame("p1"))
	a.Equal(PhasePlaying, game.phase)
	a.Equal(1, game.handNumber)
}

func TestGame_shortBlindsAreAllIn(t *testing.T) {
	a := assert.New(t)

	game := setupNewGame(t, DefaultOptions(), 3)
	game.players["p2"].chips = 5
	a.NoError(game.StartGame("p1"))

	p2 := game.players["p2"]
	a.Equal(5, p2.bet)
	a.True(p2.allIn)
	a.Equal(25, game.pot)
	a.Equal(20, game.currentBet)
	a.Equal(0, game.currentPlayerIndex)
}

func TestGame_blindsAllInRunOut(t *testing.T) {
	a := assert.New(t)

	game := setupNewGame(t, DefaultOptions(), 2)
	game.players["p1"].chips = 20
	game.players["p2"].chips = 10
	a.NoError(game.StartGame("p1"))

	// nobody can act, so the board is dealt out
	a.Equal(PhaseFinished, game.phase)
	a.Equal(EndReasonShowdown, game.endReason)
	a.Equal(5, len(game.community))
	a.Equal(30, chipsInPlay(game))
}

func TestGame_midHandJoinSitsOut(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	a.NoError(game.AddPlayer("p3", "Player 3"))

	p3 := game.players["p3"]
	a.True(p3.folded)
	a.False(p3.dealtIn)
	a.Equal(0, len(p3.hand))

	assertAction(t, game, "p1", action.Check)
	assertAction(t, game, "p2", action.Call)
	a.Equal(RoundFlop, game.round)
	a.Equal(1, game.currentPlayerIndex)
	assertAction(t, game, "p2", action.Check)
	a.Equal(0, game.currentPlayerIndex, "the sitting out player is skipped")
	assertAction(t, game, "p1", action.Fold)

	a.NoError(game.AdvanceToNextHand())
	a.True(p3.dealtIn)
	a.False(p3.folded)
	a.Equal(2, len(p3.hand))
}

func TestGame_ForceRestart(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 3)
	assertAction(t, game, "p1", action.Raise, 100)
	a.Equal(130, game.pot)

	game.ForceRestart()
	a.Equal(PhaseRestarting, game.phase)
	a.Equal(0, game.pot)
	for _, id := range game.seats {
		a.Equal(1000, game.players[id].chips)
		a.Equal(0, game.players[id].totalBet)
	}

	assertActionFailed(t, game, "p2", action.Call, 0, ErrIllegalAction)

	assertTickFiresRestart(t, game)
	a.Equal(PhasePlaying, game.phase)
	a.Equal(1, game.dealerIndex)
	a.Equal(3000, chipsInPlay(game))
}

func TestGame_refundWhenNobodyIsLeft(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	for _, id := range game.seats {
		game.players[id].folded = true
	}

	game.progress(true)
	a.Equal(PhaseRestarting, game.phase)
	a.Equal(0, game.pot)
	a.Equal(1000, game.players["p1"].chips)
	a.Equal(1000, game.players["p2"].chips)
}

func TestGame_Tick_waitingForPlayers(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	game.ForceRestart()
	a.NoError(game.RemovePlayer("p2"))

	assertTickFiresRestart(t, game)
	a.Equal(PhaseWaiting, game.phase)
	a.Equal(1, game.PlayerCount())
}

func TestGame_Tick_nothingPending(t *testing.T) {
	game := setupStartedGame(t, DefaultOptions(), 2)
	update, err := game.Tick(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.False(t, update)
	assert.Equal(t, tickInterval, game.Interval())
}

func TestGame_DrainLogs(t *testing.T) {
	a := assert.New(t)

	game := setupStartedGame(t, DefaultOptions(), 2)
	logs := game.DrainLogs()
	a.True(len(logs) >= 4)
	a.Equal("Player 1 joined the table", logs[0].Message)
	a.Equal([]string{"p1"}, logs[0].PlayerIDs)
	a.Nil(game.DrainLogs())

	assertAction(t, game, "p1", action.Raise, 40)
	logs = game.DrainLogs()
	require.Equal(t, 1, len(logs))
	a.Equal("Player 1 raised to $40", logs[0].Message)
}
