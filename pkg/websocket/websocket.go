package websocketPkg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNotConnected = errors.New("robot bridge not connected")
	ErrRejected     = errors.New("robot rejected command")
)

// IRobotBridge talks to the process that drives the robot base. Every command
// is answered with exactly one ack carrying the same id.
type IRobotBridge interface {
	Rotate(ctx context.Context, direction string, degrees int) error
	IsConnected() bool
	Reconnect() error
	Close()
}

type Command struct {
	ID        uint64 `json:"id"`
	Command   string `json:"command"`
	Direction string `json:"direction,omitempty"`
	Degrees   int    `json:"degrees,omitempty"`
}

type Ack struct {
	ID      uint64 `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	AckDone  = "done"
	AckError = "error"
)

type robotBridge struct {
	url          string
	log          *logrus.Logger
	conn         *websocket.Conn
	mu           sync.Mutex
	nextID       atomic.Uint64
	pingInterval time.Duration
	ackTimeout   time.Duration
	writeTimeout time.Duration
}

// NewRobotBridge dials ROBOT_BRIDGE_URL in the background; commands retry the
// connection on demand.
func NewRobotBridge(log *logrus.Logger) IRobotBridge {
	url := os.Getenv("ROBOT_BRIDGE_URL")
	if url == "" {
		url = "ws://localhost:8765/robot"
	}

	ackTimeout := 20 * time.Second
	if v, err := time.ParseDuration(os.Getenv("ROBOT_ACK_TIMEOUT")); err == nil && v > 0 {
		ackTimeout = v
	}

	client := newRobotBridge(url, log, ackTimeout)
	go client.connectInBackground()

	return client
}

func newRobotBridge(url string, log *logrus.Logger, ackTimeout time.Duration) *robotBridge {
	return &robotBridge{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		ackTimeout:   ackTimeout,
		writeTimeout: 5 * time.Second,
	}
}

func (c *robotBridge) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		c.log.WithFields(logrus.Fields{
			"url":   c.url,
			"error": err.Error(),
		}).Warn("Initial connection to robot bridge failed, will retry on demand")
		return
	}
	c.log.WithField("url", c.url).Info("Connected to robot bridge")
}

func (c *robotBridge) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

func (c *robotBridge) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout)); err != nil {
			c.log.WithField("error", err.Error()).Debug("Error sending pong")
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *robotBridge) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *robotBridge) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithField("error", err.Error()).Warn("Robot bridge ping failed, marking connection as dead")
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

func (c *robotBridge) connection() (*websocket.Conn, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		return conn, nil
	}

	if err := c.Reconnect(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConnected, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	return c.conn, nil
}

// Rotate sends a rotate command and blocks until the matching ack arrives, the
// ack deadline passes or ctx is done.
func (c *robotBridge) Rotate(ctx context.Context, direction string, degrees int) error {
	cmd := Command{
		ID:        c.nextID.Add(1),
		Command:   "rotate",
		Direction: direction,
		Degrees:   degrees,
	}

	ack, err := c.send(ctx, cmd)
	if err != nil {
		return err
	}

	if ack.Status != AckDone {
		return fmt.Errorf("%w: %s", ErrRejected, ack.Message)
	}

	c.log.WithFields(logrus.Fields{
		"command_id": cmd.ID,
		"direction":  direction,
		"degrees":    degrees,
	}).Debug("Rotation acknowledged")

	return nil
}

func (c *robotBridge) send(ctx context.Context, cmd Command) (*Ack, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.drop(conn)
		return nil, fmt.Errorf("error sending %s command: %w", cmd.Command, err)
	}

	deadline := time.Now().Add(c.ackTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetReadDeadline(deadline)
	defer func() {
		conn.SetReadDeadline(time.Time{})
		conn.SetWriteDeadline(time.Time{})
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.drop(conn)
			return nil, fmt.Errorf("error reading ack for %s command: %w", cmd.Command, err)
		}

		var ack Ack
		if err := json.Unmarshal(message, &ack); err != nil {
			c.log.WithField("error", err.Error()).Warn("Ignoring malformed message from robot bridge")
			continue
		}
		if ack.ID != cmd.ID {
			continue
		}
		return &ack, nil
	}
}

// drop must be called with c.mu held.
func (c *robotBridge) drop(conn *websocket.Conn) {
	if c.conn == conn {
		c.conn = nil
	}
	conn.Close()
}
