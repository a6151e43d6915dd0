package texasholdem

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
)

// Game is a room's game of No-Limit Texas Hold'em
// Game is not safe for concurrent use. The hosting room must serialize every call.
type Game struct {
	logger  logrus.FieldLogger
	roomID  string
	options Options
	rng     rng.Generator
	deck    *deck.Deck

	players map[string]*Player
	// seats is the seating order, which is the order players joined
	seats []string

	community  deck.Hand
	pot        int
	currentBet int

	dealerIndex        int
	currentPlayerIndex int
	roundStartIndex    int
	lastRaiserIndex    int

	phase          Phase
	round          BettingRound
	roomCreatorID  string
	endReason      EndReason
	showAllCards   bool
	blindsPosted   bool
	handNumber     int
	pendingRestart *pendingRestart

	logs []*playable.LogMessage
}

// Options configures the table
type Options struct {
	StartingChips int
	SmallBlind    int
	BigBlind      int
	MaxPlayers    int
	RestartDelay  time.Duration
}

// DefaultOptions returns the default options for a room
func DefaultOptions() Options {
	return Options{
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		MaxPlayers:    8,
		RestartDelay:  time.Second,
	}
}

func validateOptions(opts Options) error {
	if opts.StartingChips <= 0 {
		return errors.New("starting chips must be > 0")
	}

	if opts.SmallBlind <= 0 || opts.BigBlind <= 0 {
		return errors.New("blinds must be > 0")
	}

	if opts.SmallBlind > opts.BigBlind {
		return errors.New("small blind cannot exceed the big blind")
	}

	if opts.MaxPlayers < 2 {
		return errors.New("max players must be >= 2")
	}

	if opts.RestartDelay < 0 {
		return errors.New("restart delay cannot be negative")
	}

	return nil
}

// NewGame returns a new game for the room
func NewGame(logger logrus.FieldLogger, roomID string, opts Options) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Game{
		logger:             logger.WithField("roomId", roomID),
		roomID:             roomID,
		options:            opts,
		rng:                rng.Crypto{},
		deck:               deck.New(),
		players:            make(map[string]*Player),
		seats:              make([]string, 0, opts.MaxPlayers),
		community:          make(deck.Hand, 0, 5),
		dealerIndex:        -1,
		currentPlayerIndex: 0,
		roundStartIndex:    0,
		lastRaiserIndex:    -1,
		phase:              PhaseWaiting,
		round:              RoundPreFlop,
		endReason:          EndReasonNone,
		logs:               make([]*playable.LogMessage, 0),
	}, nil
}

// RoomID returns the ID of the room hosting the game
func (g *Game) RoomID() string {
	return g.roomID
}

// Phase returns the lifecycle state of the game
func (g *Game) Phase() Phase {
	return g.phase
}

// HandNumber returns the number of hands dealt in the room
func (g *Game) HandNumber() int {
	return g.handNumber
}

// EndReason returns how the last hand ended
func (g *Game) EndReason() EndReason {
	return g.endReason
}

// RoomCreatorID returns the player allowed to start the game
func (g *Game) RoomCreatorID() string {
	return g.roomCreatorID
}

// PlayerCount returns the number of seated players
func (g *Game) PlayerCount() int {
	return len(g.seats)
}

// GetPlayer returns the seated player
func (g *Game) GetPlayer(id string) (*Player, bool) {
	p, ok := g.players[id]
	return p, ok
}

func (g *Game) playerAt(index int) *Player {
	return g.players[g.seats[index]]
}

func (g *Game) seatIndex(id string) int {
	for i, seatID := range g.seats {
		if seatID == id {
			return i
		}
	}

	return -1
}

// AddPlayer seats a new player
// The first player to join becomes the room creator. A player joining mid-hand sits out until the next deal.
func (g *Game) AddPlayer(id, name string) error {
	if _, ok := g.players[id]; ok {
		return newError(ErrIllegalAction, "player %s is already seated", id)
	}

	if len(g.seats) >= g.options.MaxPlayers {
		return newError(ErrRoomFull, "the room is full (%d players)", g.options.MaxPlayers)
	}

	p := newPlayer(id, name, g.options.StartingChips)
	if g.phase == PhasePlaying {
		p.folded = true
	}

	g.players[id] = p
	g.seats = append(g.seats, id)

	if g.roomCreatorID == "" {
		g.roomCreatorID = id
	}

	g.log(id, "%s joined the table", name)
	return nil
}

// RemovePlayer removes a player who left the room
// A player who committed chips to the hand in progress is folded and kept until the hand is settled.
func (g *Game) RemovePlayer(id string) error {
	p, ok := g.players[id]
	if !ok {
		return ErrPlayerNotFound
	}

	index := g.seatIndex(id)
	wasTurn := g.phase == PhasePlaying && index == g.currentPlayerIndex
	wasInHand := g.phase == PhasePlaying && p.inHand()

	if g.phase == PhasePlaying && p.totalBet > 0 {
		p.folded = true
		p.acted = true
		p.isActive = false
	} else {
		g.removeSeat(index)
	}

	if g.roomCreatorID == id {
		g.transferRoomCreator(index)
	}

	g.log(id, "%s left the table", p.Name)

	if wasInHand {
		g.progress(wasTurn)
	} else {
		g.clampIndices()
	}

	return nil
}

// removeSeat removes the player at the index and re-bases the seat indices
func (g *Game) removeSeat(index int) {
	id := g.seats[index]
	delete(g.players, id)
	g.seats = append(g.seats[:index], g.seats[index+1:]...)

	rebase := func(i int) int {
		if i >= index {
			return i - 1
		}

		return i
	}

	g.dealerIndex = rebase(g.dealerIndex)
	g.currentPlayerIndex = rebase(g.currentPlayerIndex)
	if n := len(g.seats); n > 0 {
		// the round start wraps to the seat before the removed one
		g.roundStartIndex = (rebase(g.roundStartIndex) + n) % n
	} else {
		g.roundStartIndex = 0
	}

	if g.lastRaiserIndex == index {
		g.lastRaiserIndex = -1
	} else {
		g.lastRaiserIndex = rebase(g.lastRaiserIndex)
	}
}

// clampIndices keeps the turn pointers inside the table when no hand is running
func (g *Game) clampIndices() {
	n := len(g.seats)
	if g.currentPlayerIndex < 0 || g.currentPlayerIndex >= n {
		g.currentPlayerIndex = 0
	}

	if g.roundStartIndex < 0 || g.roundStartIndex >= n {
		g.roundStartIndex = 0
	}

	if g.dealerIndex >= n {
		g.dealerIndex = n - 1
	}
}

// transferRoomCreator hands the creator role to the next seated active player
func (g *Game) transferRoomCreator(fromIndex int) {
	g.roomCreatorID = ""

	n := len(g.seats)
	for i := 0; i < n; i++ {
		p := g.playerAt((fromIndex + i + n) % n)
		if p.isActive {
			g.roomCreatorID = p.ID
			g.log(p.ID, "%s is now the room creator", p.Name)
			return
		}
	}
}

// purgeInactivePlayers removes the seats kept for players who left mid-hand
func (g *Game) purgeInactivePlayers() {
	for i := len(g.seats) - 1; i >= 0; i-- {
		if !g.playerAt(i).isActive {
			g.removeSeat(i)
		}
	}
}

// eligibleSeats returns the seats that can be dealt in, starting at the seat after {from}
func (g *Game) eligibleSeats(from int) []int {
	n := len(g.seats)
	seats := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		index := ((from+i)%n + n) % n
		if g.playerAt(index).eligible() {
			seats = append(seats, index)
		}
	}

	return seats
}

// StartGame starts the first hand
// Only the room creator can start the game
func (g *Game) StartGame(playerID string) error {
	if playerID != g.roomCreatorID {
		return ErrUnauthorized
	}

	if g.phase == PhasePlaying {
		return newError(ErrIllegalAction, "a hand is already in progress")
	}

	return g.StartHand()
}

// AdvanceToNextHand deals the next hand after the previous one finished
// If there are not enough players, the room goes back to waiting
// The first hand of a waiting room is only dealt through StartGame
func (g *Game) AdvanceToNextHand() error {
	switch g.phase {
	case PhaseFinished, PhaseRestarting:
	case PhasePlaying:
		return newError(ErrIllegalAction, "the current hand is not over")
	default:
		return newError(ErrIllegalAction, "the game has not started")
	}

	g.purgeInactivePlayers()
	if len(g.eligibleSeats(-1)) < 2 {
		g.setWaiting()
		return nil
	}

	return g.StartHand()
}

// ForceRestart abandons the hand in progress, refunds every player and schedules a redeal
func (g *Game) ForceRestart() {
	refunded := 0
	if g.phase == PhasePlaying {
		refunded = g.refundAll()
	}

	g.setPendingRestart()
	g.log("", "The hand was restarted and $%d was returned to the players", refunded)
}

// refundAll returns every player's contribution to the current hand
func (g *Game) refundAll() int {
	total := 0
	for _, id := range g.seats {
		total += g.players[id].refund()
	}

	g.pot = 0
	g.currentBet = 0
	return total
}

func (g *Game) setWaiting() {
	g.phase = PhaseWaiting
	g.pendingRestart = nil
	g.round = RoundPreFlop
	g.community = make(deck.Hand, 0, 5)
	g.pot = 0
	g.currentBet = 0
	g.lastRaiserIndex = -1
	g.showAllCards = false
	g.clampIndices()
}

// fault recovers the room from an internal error
func (g *Game) fault(err error) {
	g.logger.WithError(err).Error("engine fault, restarting the hand")
	g.ForceRestart()
}

func (g *Game) String() string {
	return fmt.Sprintf("room=%s phase=%s round=%s pot=%d", g.roomID, g.phase, g.round, g.pot)
}
