package server

import (
	"context"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/besuhoff/predator-arena-go/internal/config"
	"github.com/besuhoff/predator-arena-go/internal/game"
	"github.com/besuhoff/predator-arena-go/internal/mapgen"
	"github.com/besuhoff/predator-arena-go/internal/protocol"
	"github.com/besuhoff/predator-arena-go/internal/types"
)

// Options tunes the connection layer
type Options struct {
	TickRate             int
	MaxMessagesPerSecond int
	AllowedOrigin        string // "*" accepts any origin
}

// Status is the operator view of the arena published after every tick
type Status struct {
	game.Stats
	Connections int       `json:"connections"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type inboundFrame struct {
	client *WebsocketClient
	frame  *protocol.Frame
}

// GameServer owns the engine and all clients. Run is the only goroutine
// that touches either, so the simulation needs no locking.
type GameServer struct {
	engine     *game.Engine
	clients    map[string]*WebsocketClient
	register   chan *WebsocketClient
	unregister chan *WebsocketClient
	inbound    chan inboundFrame
	done       chan struct{}
	status     atomic.Pointer[Status]
	upgrader   websocket.Upgrader
	opts       Options
	logger     *zap.SugaredLogger
}

// NewGameServer creates a new game server around a fresh engine
func NewGameServer(tuning config.Tuning, world *mapgen.Map, opts Options, logger *zap.SugaredLogger, engineOpts ...game.Option) *GameServer {
	if opts.TickRate <= 0 {
		opts.TickRate = 30
	}
	if opts.MaxMessagesPerSecond <= 0 {
		opts.MaxMessagesPerSecond = 120
	}

	gs := &GameServer{
		clients:    make(map[string]*WebsocketClient),
		register:   make(chan *WebsocketClient),
		unregister: make(chan *WebsocketClient),
		inbound:    make(chan inboundFrame, 256),
		done:       make(chan struct{}),
		opts:       opts,
		logger:     logger,
	}
	gs.upgrader = websocket.Upgrader{
		CheckOrigin: gs.checkOrigin,
	}

	engineOpts = append([]game.Option{game.WithLogger(logger)}, engineOpts...)
	gs.engine = game.NewEngine(tuning, world, opts.TickRate, gs, engineOpts...)
	gs.publishStatus()
	return gs
}

// Run starts the game server loop and blocks until ctx is cancelled.
func (gs *GameServer) Run(ctx context.Context) error {
	defer close(gs.done)

	ticker := time.NewTicker(gs.engine.TickInterval())
	defer ticker.Stop()

	gs.logger.Infow("Game loop started", "tickInterval", gs.engine.TickInterval())
	for {
		select {
		case <-ctx.Done():
			gs.closeAll()
			gs.logger.Info("Game loop stopped")
			return nil

		case client := <-gs.register:
			gs.clients[client.ID] = client
			gs.logger.Debugw("Client registered", "client", client.ID, "protocol", client.codec.Name())

		case client := <-gs.unregister:
			gs.unregisterClient(client)

		case in := <-gs.inbound:
			gs.safely(string(in.frame.Type), func() { gs.dispatch(in) })

		case <-ticker.C:
			gs.safely("tick", gs.engine.Tick)
			gs.publishStatus()
		}
	}
}

// safely runs fn and recovers a panic so one bad step cannot stop the loop.
func (gs *GameServer) safely(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			gs.logger.Errorw("Recovered panic in game loop", "step", step, "panic", r, zap.Stack("stack"))
		}
	}()
	fn()
}

func (gs *GameServer) unregisterClient(client *WebsocketClient) {
	if _, exists := gs.clients[client.ID]; !exists {
		return
	}
	delete(gs.clients, client.ID)
	close(client.send)

	gs.engine.Leave(client.ID)
	gs.logger.Debugw("Client unregistered", "client", client.ID, "remaining", len(gs.clients))
}

func (gs *GameServer) closeAll() {
	gs.logger.Infow("Closing client connections", "count", len(gs.clients))
	for id, client := range gs.clients {
		delete(gs.clients, id)
		close(client.send)
	}
}

func (gs *GameServer) dispatch(in inboundFrame) {
	id := in.client.ID
	if _, registered := gs.clients[id]; !registered {
		return
	}

	frame := in.frame
	if frame.Type != types.MsgTypeJoinGame {
		if err := gs.engine.RequireJoined(id); err != nil {
			gs.logger.Debugw("Dropping action", "type", frame.Type, "error", err)
			return
		}
	}

	switch frame.Type {
	case types.MsgTypeJoinGame:
		var payload types.JoinGamePayload
		if !gs.bind(id, frame, &payload) {
			return
		}
		if _, err := gs.engine.Join(id, payload.Name); err != nil {
			gs.logger.Debugw("Join rejected", "client", id, "error", err)
		}

	case types.MsgTypePlayerInput:
		var input types.InputState
		if gs.bind(id, frame, &input) && !gs.engine.SetInput(id, input) {
			gs.logger.Debugw("Dropping invalid input", "client", id)
		}

	case types.MsgTypePlayerShoot:
		gs.engine.Shoot(id)

	case types.MsgTypePredatorAttack:
		gs.engine.Attack(id)

	case types.MsgTypeFakeTrail:
		var payload types.FakeTrailPayload
		if !gs.bind(id, frame, &payload) {
			return
		}
		if payload.X == nil || payload.Y == nil {
			gs.logger.Debugw("Dropping decoy without position", "client", id)
			return
		}
		gs.engine.Decoy(id, *payload.X, *payload.Y)

	case types.MsgTypeCollectBonus:
		var payload types.CollectBonusPayload
		if gs.bind(id, frame, &payload) {
			gs.engine.CollectBonus(id, payload.BonusID)
		}
	}
}

func (gs *GameServer) bind(clientID string, frame *protocol.Frame, v interface{}) bool {
	if err := frame.Bind(v); err != nil {
		gs.logger.Debugw("Dropping malformed message", "client", clientID, "error", err)
		return false
	}
	return true
}

// Send implements game.Outbox
func (gs *GameServer) Send(clientID string, msg types.Message) {
	if client, exists := gs.clients[clientID]; exists {
		client.Send(msg)
	}
}

// Broadcast implements game.Outbox. Each codec encodes the message once.
func (gs *GameServer) Broadcast(msg types.Message, exclude ...string) {
	encoded := make(map[string][]byte)
	for id, client := range gs.clients {
		if slices.Contains(exclude, id) {
			continue
		}
		name := client.codec.Name()
		data, ok := encoded[name]
		if !ok {
			var err error
			data, err = client.codec.Encode(msg)
			if err != nil {
				gs.logger.Errorw("Encoding broadcast failed", "type", msg.Type, "protocol", name, "error", err)
				continue
			}
			encoded[name] = data
		}
		client.queue(data)
	}
}

func (gs *GameServer) publishStatus() {
	gs.status.Store(&Status{
		Stats:       gs.engine.Stats(),
		Connections: len(gs.clients),
		UpdatedAt:   time.Now(),
	})
}

// Status returns the state published after the latest tick. Safe for
// concurrent use.
func (gs *GameServer) Status() Status {
	return *gs.status.Load()
}

func (gs *GameServer) checkOrigin(r *http.Request) bool {
	if gs.opts.AllowedOrigin == "" || gs.opts.AllowedOrigin == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == gs.opts.AllowedOrigin
}

// HandleWebSocket handles WebSocket connections
func (gs *GameServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	codec, err := protocol.NewCodec(r.URL.Query().Get("protocol"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := gs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		gs.logger.Warnw("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := &WebsocketClient{
		ID:         uuid.New().String(),
		RemoteAddr: r.RemoteAddr,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		server:     gs,
		codec:      codec,
	}

	select {
	case gs.register <- client:
	case <-gs.done:
		conn.Close()
		return
	}

	gs.logger.Infow("New client connected", "client", client.ID, "remote", client.RemoteAddr, "protocol", codec.Name())

	go client.writePump()
	go client.readPump()
}
