package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/tankarena/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned by Send before the websocket is up.
var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client manages a WebSocket connection to the battle server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
// Inbound battle messages are queued and handed to the update loop by Drain;
// the queue is unbounded so no authoritative update is ever lost.
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	serverName string
	conn       *websocket.Conn

	inboxMu sync.Mutex
	inbox   []any
	spare   []any // only touched by Drain

	log *logrus.Logger
}

// NewClient creates a client whose inbox starts with room for inboxSize
// messages between frames.
func NewClient(log *logrus.Logger, inboxSize int) *Client {
	return &Client{
		state: StateDisconnected,
		inbox: make([]any, 0, inboxSize),
		spare: make([]any, 0, inboxSize),
		log:   log,
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address string, join messages.JoinRequest) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	log := c.log.WithField("server", address)

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Info("connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.Send(join); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.WithFields(logrus.Fields{"uid": msg.NetworkID, "name": msg.ServerName}).Info("join accepted")
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.serverName = msg.ServerName
		c.state = StateJoinedGame
		c.mu.Unlock()
		c.enqueue(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.WithField("reason", msg.Reason).Warn("join rejected")
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, msg messages.TankEnter) { c.enqueue(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.TankIdle) { c.enqueue(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.TankMove) { c.enqueue(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.TankRemove) { c.enqueue(msg) })

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.WithError(err).Info("disconnected")
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.WithError(err).Error("router error")
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// LocalUID returns the uid of the tank this client controls, or 0 before the
// join is accepted.
func (c *Client) LocalUID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

// Pending returns how many inbound messages are waiting for the next Drain.
func (c *Client) Pending() int {
	c.inboxMu.Lock()
	defer c.inboxMu.Unlock()
	return len(c.inbox)
}

// Drain hands every message queued so far to fn in arrival order and returns
// how many were delivered. Messages arriving while fn runs wait for the next
// Drain. Only the update loop may call it.
func (c *Client) Drain(fn func(msg any)) int {
	c.inboxMu.Lock()
	batch := c.inbox
	c.inbox = c.spare[:0]
	c.inboxMu.Unlock()

	for _, msg := range batch {
		fn(msg)
	}

	clear(batch)
	c.spare = batch
	return len(batch)
}

func (c *Client) Send(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) enqueue(msg any) {
	c.inboxMu.Lock()
	c.inbox = append(c.inbox, msg)
	c.inboxMu.Unlock()
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
