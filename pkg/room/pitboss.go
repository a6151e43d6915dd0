package room

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/metrics"
	"holdem-server/pkg/playable/poker/texasholdem"
)

// PitBoss is responsible for dispatching players to rooms
// A room is created when its first client connects and torn down when its last client leaves
type PitBoss struct {
	logger  logrus.FieldLogger
	options texasholdem.Options

	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
	requests   chan func()
	close      chan bool
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, opts texasholdem.Options) *PitBoss {
	return &PitBoss{
		logger:     logger,
		options:    opts,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		requests:   make(chan func()),
		close:      make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop and every room
func (p *PitBoss) EndShift() {
	close(p.close)
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.clientConnected(client)
		case client := <-p.disconnect:
			p.clientDisconnected(client)
		case fn := <-p.requests:
			fn()
		case <-p.close:
			for id, dealer := range p.dealers {
				dealer.EndShift()
				delete(p.dealers, id)
			}

			metrics.Metrics.SetActiveRooms(0)
			return
		}
	}
}

func (p *PitBoss) clientConnected(client *Client) {
	p.logger.WithField("client", client.String()).Debug("client connected")
	dealer, found := p.dealers[client.RoomID]
	if !found {
		var err error
		dealer, err = NewDealer(p.logger, client.RoomID, p.options)
		if err != nil {
			p.logger.WithError(err).WithField("roomId", client.RoomID).Error("could not create room")
			client.Send(newErrorResponse("", err))
			client.CloseWithReason(err.Error())
			return
		}

		dealer.StartShift()
		p.dealers[client.RoomID] = dealer
		metrics.Metrics.SetActiveRooms(len(p.dealers))
		p.logger.WithField("roomId", client.RoomID).Info("room created")
	}

	dealer.AddClient(client)
}

func (p *PitBoss) clientDisconnected(client *Client) {
	p.logger.WithField("client", client.String()).Debug("client disconnected")
	dealer, found := p.dealers[client.RoomID]
	if !found {
		p.logger.WithField("roomId", client.RoomID).WithField("type", "exception").Error("room not found")
		return
	}

	if dealer.RemoveClient(client) {
		dealer.EndShift()
		delete(p.dealers, client.RoomID)
		metrics.Metrics.SetActiveRooms(len(p.dealers))
		p.logger.WithField("roomId", client.RoomID).Info("room closed")
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// dealerList returns the dealers held at the time of the call
func (p *PitBoss) dealerList(ctx context.Context) ([]*Dealer, error) {
	result := make(chan []*Dealer, 1)
	fn := func() {
		dealers := make([]*Dealer, 0, len(p.dealers))
		for _, dealer := range p.dealers {
			dealers = append(dealers, dealer)
		}

		result <- dealers
	}

	select {
	case p.requests <- fn:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case dealers := <-result:
		return dealers, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Rooms returns the summary of every room, ordered by room ID
func (p *PitBoss) Rooms(ctx context.Context) ([]texasholdem.Summary, error) {
	dealers, err := p.dealerList(ctx)
	if err != nil {
		return nil, err
	}

	rooms := make([]texasholdem.Summary, len(dealers))
	for i, dealer := range dealers {
		rooms[i] = dealer.Summary()
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].RoomID < rooms[j].RoomID
	})

	return rooms, nil
}

// Room returns the summary of a single room
func (p *PitBoss) Room(ctx context.Context, roomID string) (texasholdem.Summary, error) {
	dealers, err := p.dealerList(ctx)
	if err != nil {
		return texasholdem.Summary{}, err
	}

	for _, dealer := range dealers {
		if dealer.RoomID() == roomID {
			return dealer.Summary(), nil
		}
	}

	return texasholdem.Summary{}, texasholdem.ErrRoomNotFound
}
