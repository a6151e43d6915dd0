package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/metrics"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
)

// Dealer is responsible for controlling the game of one room
// Every call into the game happens on the dealer's run loop
type Dealer struct {
	logger  logrus.FieldLogger
	roomID  string
	game    *texasholdem.Game
	clients map[*Client]bool // true once the client has a seat
	lock    sync.RWMutex
	summary texasholdem.Summary

	logMessages []*playable.LogMessage
	lastHand    int
	lastPhase   texasholdem.Phase

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(logger logrus.FieldLogger, roomID string, opts texasholdem.Options) (*Dealer, error) {
	logger = logger.WithField("roomId", roomID)

	game, err := texasholdem.NewGame(logger, roomID, opts)
	if err != nil {
		return nil, err
	}

	d := &Dealer{
		logger:        logger,
		roomID:        roomID,
		game:          game,
		clients:       make(map[*Client]bool),
		summary:       game.Summary(),
		lastPhase:     game.Phase(),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	return d, nil
}

// RoomID returns the room the dealer is running
func (d *Dealer) RoomID() string {
	return d.roomID
}

// Summary returns the room listing as of the last update
func (d *Dealer) Summary() texasholdem.Summary {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.summary
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	var tickable playable.Tickable = d.game
	ticker := time.NewTicker(tickable.Interval())
	defer ticker.Stop()

	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case now := <-ticker.C:
			d.mutate(func() (bool, error) {
				return tickable.Tick(now)
			})
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// AddClient adds a client and seats the player
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	d.clients[client] = false
	d.lock.Unlock()

	client.setDealer(d)

	d.execInRunLoop <- func() {
		d.mutate(func() (bool, error) {
			if err := d.game.AddPlayer(client.ID, client.Name); err != nil {
				d.reject(client, err)
				return false, nil
			}

			d.lock.Lock()
			d.clients[client] = true
			d.lock.Unlock()

			client.Send(&playable.Response{
				Key:   "joined",
				Value: client.ID,
				Data:  playerResponse{ID: client.ID, Name: client.Name},
			})

			if history := d.logHistory(); len(history) > 0 {
				client.Send(&playable.Response{Key: "logs", Data: history})
			}

			d.broadcast(newPlayerResponse("playerJoined", client))
			return true, nil
		})
	}
}

// reject turns away a client who could not be seated
func (d *Dealer) reject(client *Client, err error) {
	d.lock.Lock()
	delete(d.clients, client)
	d.lock.Unlock()

	d.logger.WithError(err).WithField("client", client.String()).Info("could not seat player")
	client.Send(newErrorResponse("", err))
	client.CloseWithReason(err.Error())
}

// RemoveClient removes a client and the player's seat
// If the client was the last one in the room, true is returned and the room should be torn down
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	seated, found := d.clients[client]
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients == 0 {
		return true
	}

	if found && seated {
		d.execInRunLoop <- func() {
			d.mutate(func() (bool, error) {
				return d.leave(client)
			})
		}
	}

	return false
}

// leave removes the player from the game
// NOTE: must only be called from the run loop
func (d *Dealer) leave(client *Client) (bool, error) {
	if err := d.game.RemovePlayer(client.ID); err != nil {
		return false, err
	}

	d.lock.Lock()
	if _, ok := d.clients[client]; ok {
		d.clients[client] = false
	}
	d.lock.Unlock()

	d.broadcast(newPlayerResponse("playerLeft", client))
	return true, nil
}

// mutate runs fn against the game and sends the new state to every client when fn reports a change
// A panic inside fn restarts the hand instead of taking the room down
// NOTE: must only be called from the run loop
func (d *Dealer) mutate(fn func() (bool, error)) {
	changed, err := d.safely(fn)
	if err != nil {
		d.logger.WithError(err).Error("could not update the game")
	}

	if changed {
		d.sendGameData()
	}
}

func (d *Dealer) safely(fn func() (bool, error)) (changed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Error("recovered from a panic, restarting the hand")
			metrics.Metrics.EngineFault()
			d.game.ForceRestart()
			changed, err = true, nil
		}
	}()

	return fn()
}

// broadcast sends the message to every connected client
func (d *Dealer) broadcast(msg interface{}) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if logs := d.game.DrainLogs(); len(logs) > 0 {
		d.addLogMessages(logs)
		d.broadcast(&playable.Response{Key: "logs", Data: logs})
	}

	d.recordMetrics()

	d.lock.Lock()
	d.summary = d.game.Summary()
	d.lock.Unlock()

	for _, client := range d.Clients() {
		client.Send(&playable.Response{
			Key:  "game",
			Data: d.game.Snapshot(client.ID),
		})
	}
}

// recordMetrics counts the hands dealt and resolved since the last update
func (d *Dealer) recordMetrics() {
	if hand := d.game.HandNumber(); hand > d.lastHand {
		metrics.Metrics.HandStarted()
		d.lastHand = hand
	}

	phase := d.game.Phase()
	if phase != d.lastPhase {
		switch {
		case phase == texasholdem.PhaseFinished:
			metrics.Metrics.HandFinished(d.game.EndReason().String())
		case phase == texasholdem.PhaseRestarting && d.lastPhase == texasholdem.PhasePlaying:
			metrics.Metrics.HandFinished("refund")
		}
	}

	d.lastPhase = phase
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		d.mutate(func() (bool, error) {
			err := d.handleMessage(c, msg)
			metrics.Metrics.ActionReceived(metricsActionLabel(msg.Action), err == nil)
			if err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return false, nil
			}

			c.Send(playable.OK(msg.Context))
			return true, nil
		})
	}
}

// handleMessage applies a client message to the game
// NOTE: must only be called from the run loop
func (d *Dealer) handleMessage(c *Client, msg *playable.PayloadIn) error {
	switch msg.Action {
	case "startGame":
		if err := d.game.StartGame(c.ID); err != nil {
			return err
		}

		d.broadcast(&playable.Response{Key: "gameStarted"})
		return nil
	case "continueGame":
		return d.game.AdvanceToNextHand()
	case "forceRestart":
		d.game.ForceRestart()
		return nil
	case "exitGame":
		if _, err := d.leave(c); err != nil {
			return err
		}

		c.CloseWithReason("left the room")
		return nil
	}

	a, err := action.FromString(msg.Action)
	if err != nil {
		return err
	}

	amount, _ := msg.AdditionalData.GetInt("amount")
	return d.game.ApplyAction(c.ID, a, amount)
}

func metricsActionLabel(a string) string {
	switch a {
	case "startGame", "continueGame", "forceRestart", "exitGame":
		return a
	}

	if _, err := action.FromString(a); err == nil {
		return a
	}

	return "unknown"
}

func (d *Dealer) String() string {
	return fmt.Sprintf("dealer(%s)", d.roomID)
}
