package room

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"holdem-server/internal/config"
	"holdem-server/internal/metrics"
	"holdem-server/internal/util"
	"holdem-server/pkg/playable"
)

var errRateLimited = errors.New("you are sending messages too quickly")

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ID is the player ID, scoped to the connection
	ID string

	// Name is the display name of the player
	Name string

	// RoomID is the room the client asked to join
	RoomID string

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	limiter *rate.Limiter

	mu     sync.RWMutex
	dealer *Dealer
}

// NewClient returns a new client object
// A blank name is replaced with a random one
func NewClient(conn *websocket.Conn, roomID, name string) *Client {
	rl := config.Instance().RateLimit

	return &Client{
		Conn:    conn,
		ID:      uuid.New().String(),
		Name:    util.DisplayName(name),
		RoomID:  roomID,
		send:    make(chan interface{}, 256),
		Close:   make(chan string, 1),
		limiter: rate.NewLimiter(rate.Limit(rl.PerSecond), rl.Burst),
	}
}

// Send sends a message to the web client
// The message is dropped if the client is not keeping up
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send queue is full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// CloseWithReason asks the write loop to close the connection
func (c *Client) CloseWithReason(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	return fmt.Sprintf("%s(%s):%s", c.Name, c.ID, c.RoomID)
}

func (c *Client) setDealer(d *Dealer) {
	c.mu.Lock()
	c.dealer = d
	c.mu.Unlock()
}

func (c *Client) getDealer() *Dealer {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dealer
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if !c.limiter.Allow() {
		metrics.Metrics.RateLimited()
		c.Send(newErrorResponse(msg.Context, errRateLimited))
		return
	}

	dealer := c.getDealer()
	if dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	dealer.ReceivedMessage(c, msg)
}
