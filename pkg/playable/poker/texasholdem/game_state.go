package texasholdem

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/handanalyzer"
)

// GameState is the state of the game as seen by one player
type GameState struct {
	RoomID             string          `json:"roomId"`
	Players            []*PlayerState  `json:"players"`
	CommunityCards     deck.Hand       `json:"communityCards"`
	Pot                int             `json:"pot"`
	SidePots           []int           `json:"sidePots"`
	CurrentBet         int             `json:"currentBet"`
	MinRaise           int             `json:"minRaise"`
	Round              BettingRound    `json:"round"`
	Phase              Phase           `json:"gameState"`
	CurrentPlayerIndex int             `json:"currentPlayerIndex"`
	CurrentPlayerID    string          `json:"currentPlayerId"`
	DealerIndex        int             `json:"dealerIndex"`
	RoundStartIndex    int             `json:"roundStartIndex"`
	LastRaiserIndex    int             `json:"lastRaiserIndex"`
	EndReason          EndReason       `json:"endReason"`
	RoomCreatorID      string          `json:"roomCreator"`
	ShowAllCards       bool            `json:"showAllCards"`
	BlindsPosted       bool            `json:"blindsPosted"`
	SmallBlind         int             `json:"smallBlind"`
	BigBlind           int             `json:"bigBlind"`
	MaxPlayers         int             `json:"maxPlayers"`
	HandNumber         int             `json:"handNumber"`
	ViewerID           string          `json:"viewerId"`
	Actions            []action.Action `json:"actions"`
}

// PlayerState is the public state of a player
// Hole cards are only included for the viewer, or for everybody after a showdown
type PlayerState struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Chips           int       `json:"chips"`
	StartingChips   int       `json:"startingChips"`
	ChipsDelta      int       `json:"chipsDelta"`
	Bet             int       `json:"bet"`
	TotalBet        int       `json:"totalBet"`
	Hand            deck.Hand `json:"hand"`
	CardCount       int       `json:"cardCount"`
	HandDescription string    `json:"handDescription,omitempty"`
	HandRank        int       `json:"handRank,omitempty"`
	Winnings        int       `json:"winnings"`
	Folded          bool      `json:"folded"`
	AllIn           bool      `json:"allIn"`
	IsActive        bool      `json:"isActive"`
	SittingOut      bool      `json:"sittingOut"`
	IsDealer        bool      `json:"isDealer"`
	IsCurrentTurn   bool      `json:"isCurrentTurn"`
}

// Snapshot returns the state of the game as seen by the viewer
func (g *Game) Snapshot(viewerID string) *GameState {
	currentTurnID := ""
	if turn, ok := g.GetCurrentTurn(); ok {
		currentTurnID = turn.ID
	}

	players := make([]*PlayerState, len(g.seats))
	for i, id := range g.seats {
		players[i] = g.playerState(g.players[id], i, viewerID, currentTurnID)
	}

	community := make(deck.Hand, len(g.community))
	copy(community, g.community)

	return &GameState{
		RoomID:             g.roomID,
		Players:            players,
		CommunityCards:     community,
		Pot:                g.pot,
		SidePots:           []int{},
		CurrentBet:         g.currentBet,
		MinRaise:           g.MinRaise(),
		Round:              g.round,
		Phase:              g.phase,
		CurrentPlayerIndex: g.currentPlayerIndex,
		CurrentPlayerID:    currentTurnID,
		DealerIndex:        g.dealerIndex,
		RoundStartIndex:    g.roundStartIndex,
		LastRaiserIndex:    g.lastRaiserIndex,
		EndReason:          g.endReason,
		RoomCreatorID:      g.roomCreatorID,
		ShowAllCards:       g.showAllCards,
		BlindsPosted:       g.blindsPosted,
		SmallBlind:         g.options.SmallBlind,
		BigBlind:           g.options.BigBlind,
		MaxPlayers:         g.options.MaxPlayers,
		HandNumber:         g.handNumber,
		ViewerID:           viewerID,
		Actions:            g.ActionsForPlayer(viewerID),
	}
}

func (g *Game) playerState(p *Player, index int, viewerID, currentTurnID string) *PlayerState {
	ps := &PlayerState{
		ID:            p.ID,
		Name:          p.Name,
		Chips:         p.chips,
		StartingChips: p.startingChips,
		ChipsDelta:    p.chips - p.startingChips,
		Bet:           p.bet,
		TotalBet:      p.totalBet,
		CardCount:     len(p.hand),
		Winnings:      p.winnings,
		Folded:        p.folded,
		AllIn:         p.allIn,
		IsActive:      p.isActive,
		SittingOut:    !p.dealtIn,
		IsDealer:      index == g.dealerIndex && g.handNumber > 0,
		IsCurrentTurn: p.ID == currentTurnID,
	}

	reveal := p.ID == viewerID || (g.showAllCards && !p.folded)
	if reveal && len(p.hand) > 0 {
		ps.Hand = p.hand.Clone()
		if eval := p.evaluate(g.community); eval != nil {
			ps.HandDescription = handanalyzer.Describe(eval)
			ps.HandRank = int(eval.Hand)
		}
	}

	return ps
}

// Summary is the public listing of a room
type Summary struct {
	RoomID        string `json:"roomId"`
	PlayerCount   int    `json:"playerCount"`
	MaxPlayers    int    `json:"maxPlayers"`
	Phase         Phase  `json:"phase"`
	RoomCreatorID string `json:"roomCreatorId"`
}

// Summary returns the listing of the room
func (g *Game) Summary() Summary {
	return Summary{
		RoomID:        g.roomID,
		PlayerCount:   len(g.seats),
		MaxPlayers:    g.options.MaxPlayers,
		Phase:         g.phase,
		RoomCreatorID: g.roomCreatorID,
	}
}
