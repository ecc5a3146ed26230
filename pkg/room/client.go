package room

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/event"
	"tourneypoker-server/pkg/playable"
	"tourneypoker-server/pkg/playable/poker/action"
	"tourneypoker-server/pkg/tournament"
)

const messageTimeout = 5 * time.Second

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// Events is the tournament's event stream, nil until the client is connected
	Events <-chan event.Event

	unsubscribe func()
	dealer      *Dealer

	playerID     string
	tournamentID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID, tournamentID string, bufferSize int) *Client {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	return &Client{
		send:         make(chan interface{}, bufferSize),
		Close:        make(chan string),
		Conn:         conn,
		playerID:     playerID,
		tournamentID: tournamentID,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// PlayerID returns the id of the connected player
func (c *Client) PlayerID() string {
	return c.playerID
}

// String returns a traceable identifier for the player and tournament
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.playerID, c.tournamentID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		c.Send(newErrorResponse(msg.Context, ErrShiftEnded))
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}

// ReceivedMessage handles a message from a client
// Only the client's own player can be acted for
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
	defer cancel()

	var err error
	switch msg.Action {
	case "action":
		err = d.Exec(ctx, func(t *tournament.Tournament) error {
			return playerAction(t, c.playerID, msg)
		})
	case "register":
		name, _ := msg.AdditionalData.GetString("name")
		err = d.Exec(ctx, func(t *tournament.Tournament) error {
			return t.RegisterPlayer(c.playerID, name)
		})
	case "unregister":
		err = d.Exec(ctx, func(t *tournament.Tournament) error {
			return t.Unregister(c.playerID)
		})
	case "rebuy":
		err = d.Exec(ctx, func(t *tournament.Tournament) error {
			return t.Rebuy(c.playerID)
		})
	case "addOn":
		err = d.Exec(ctx, func(t *tournament.Tournament) error {
			return t.AddOn(c.playerID)
		})
	case "state":
		err = d.View(ctx, func(*tournament.Tournament) error {
			d.sendClientData(c)
			return nil
		})
	default:
		err = fmt.Errorf("unknown action: %s", msg.Action)
	}

	if err != nil {
		d.logger.WithError(err).WithField("client", c.String()).Debug("could not perform action")
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	c.Send(playable.OK(msg.Context))
}

// playerAction acts at the player's current table
// The subject is the action and additionalData.amount the chips, if any
func playerAction(t *tournament.Tournament, playerID string, msg *playable.PayloadIn) error {
	reg, ok := t.Registration(playerID)
	if !ok || reg.TableID == "" {
		return fmt.Errorf("player %s is not seated", playerID)
	}

	a, err := action.FromString(msg.Subject)
	if err != nil {
		return err
	}

	amount := chips.Zero
	if n, ok := msg.AdditionalData.GetInt64("amount"); ok {
		if amount, err = chips.New(n); err != nil {
			return err
		}
	}

	return t.ExecuteAction(reg.TableID, playerID, a, amount)
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
