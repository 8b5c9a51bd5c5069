package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/outbreakgames/obx/internal/game"
	"github.com/outbreakgames/obx/internal/log"
	"github.com/outbreakgames/obx/internal/protocol"
	"github.com/outbreakgames/obx/internal/runner"
	"github.com/outbreakgames/obx/internal/strategy"
)

// DecisionType identifies what kind of decision the engine is waiting for.
type DecisionType string

const (
	DecisionChooseClasses DecisionType = "choose_classes"
	DecisionMove          DecisionType = "move"
	DecisionAttack        DecisionType = "attack"
	DecisionAbility       DecisionType = "ability"
	DecisionGameOver      DecisionType = "game_over"
)

// PendingDecision is a decision the engine is waiting for, exposed to the
// MCP client with enough context to answer it.
type PendingDecision struct {
	Type            DecisionType                    `json:"type"`
	Side            protocol.Side                   `json:"side,omitempty"`
	Choices         []game.CharacterClass           `json:"choices,omitempty"`
	NumToPick       int                             `json:"numToPick,omitempty"`
	MaxPerSameClass int                             `json:"maxPerSameClass,omitempty"`
	Moves           map[string][]game.MoveAction    `json:"possibleMoves,omitempty"`
	Attacks         map[string][]game.AttackAction  `json:"possibleAttacks,omitempty"`
	Abilities       map[string][]game.AbilityAction `json:"possibleAbilities,omitempty"`
	State           *game.GameState                 `json:"state,omitempty"`
	Summary         string                          `json:"summary,omitempty"`
}

// Response types sent back from MCP tools to the bridge.

type classResponse struct{ Selection map[game.CharacterClass]int }

type moveResponse struct{ Actions []game.MoveAction }

type attackResponse struct{ Actions []game.AttackAction }

type abilityResponse struct{ Actions []game.AbilityAction }

// EventView is a session event as presented in tool response JSON.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase,omitempty"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []EventView      `json:"events"`
	Pending  *PendingDecision `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Summary  string           `json:"summary,omitempty"`
}

// eventCollector is a log.EventLogger that buffers events for draining
// into tool responses.
type eventCollector struct {
	mu     sync.Mutex
	seq    int
	events []log.SessionEvent
}

func (c *eventCollector) Log(event log.SessionEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	event.Seq = c.seq
	c.events = append(c.events, event)
}

func (c *eventCollector) Events() []log.SessionEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events
}

func (c *eventCollector) drain() []EventView {
	c.mu.Lock()
	defer c.mu.Unlock()
	views := make([]EventView, 0, len(c.events))
	for _, e := range c.events {
		views = append(views, EventView{
			Turn:    e.Turn,
			Phase:   e.Phase,
			Type:    e.Type.String(),
			Details: e.Details,
		})
	}
	c.events = nil
	return views
}

// Bridge implements strategy.Strategy by parking each decision on the
// session's pending channel and blocking until an MCP tool call answers.
type Bridge struct {
	session    *GameSession
	responseCh chan any
}

func (b *Bridge) DecideClasses(ctx context.Context, choices []game.CharacterClass, numToPick, maxPerSameClass int) map[game.CharacterClass]int {
	b.session.pendingCh <- &PendingDecision{
		Type:            DecisionChooseClasses,
		Side:            b.session.runSess.Side(),
		Choices:         choices,
		NumToPick:       numToPick,
		MaxPerSameClass: maxPerSameClass,
	}
	select {
	case resp := <-b.responseCh:
		return resp.(classResponse).Selection
	case <-ctx.Done():
		return nil
	}
}

func (b *Bridge) DecideMoves(ctx context.Context, possible map[string][]game.MoveAction, state *game.GameState) []game.MoveAction {
	b.session.pendingCh <- &PendingDecision{
		Type:  DecisionMove,
		Side:  b.session.runSess.Side(),
		Moves: possible,
		State: state,
	}
	select {
	case resp := <-b.responseCh:
		return resp.(moveResponse).Actions
	case <-ctx.Done():
		return nil
	}
}

func (b *Bridge) DecideAttacks(ctx context.Context, possible map[string][]game.AttackAction, state *game.GameState) []game.AttackAction {
	b.session.pendingCh <- &PendingDecision{
		Type:    DecisionAttack,
		Side:    b.session.runSess.Side(),
		Attacks: possible,
		State:   state,
	}
	select {
	case resp := <-b.responseCh:
		return resp.(attackResponse).Actions
	case <-ctx.Done():
		return nil
	}
}

func (b *Bridge) DecideAbilities(ctx context.Context, possible map[string][]game.AbilityAction, state *game.GameState) []game.AbilityAction {
	b.session.pendingCh <- &PendingDecision{
		Type:      DecisionAbility,
		Side:      b.session.runSess.Side(),
		Abilities: possible,
		State:     state,
	}
	select {
	case resp := <-b.responseCh:
		return resp.(abilityResponse).Actions
	case <-ctx.Done():
		return nil
	}
}

// GameSession holds the state of a single MCP-driven match.
type GameSession struct {
	runSess *runner.Session
	bridge  *Bridge
	events  *eventCollector

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	gameOver bool
	summary  string
}

// NewGameSession connects to the engine and starts the dispatch loop with
// the MCP bridge as the strategy for whichever side the server assigns.
func NewGameSession(addr, transportKind string) (*GameSession, error) {
	var transport runner.Transport
	switch transportKind {
	case "", "tcp":
		transport = &runner.TCPTransport{Addr: addr}
	case "ws":
		transport = &runner.WSTransport{URL: addr}
	default:
		return nil, fmt.Errorf("unknown transport %q", transportKind)
	}

	if err := transport.Connect(context.Background()); err != nil {
		return nil, err
	}

	sess := &GameSession{
		events:    &eventCollector{},
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.bridge = &Bridge{session: sess, responseCh: make(chan any)}
	sess.runSess = &runner.Session{
		Transport: transport,
		Provider:  func(protocol.Side) strategy.Strategy { return sess.bridge },
		Logger:    sess.events,
	}

	go func() {
		err := sess.runSess.Run(context.Background())
		_ = transport.Close()

		summary := sess.finishSummary()
		if err != nil {
			summary = fmt.Sprintf("session error: %v", err)
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.summary = summary
		sess.mu.Unlock()

		sess.pendingCh <- &PendingDecision{Type: DecisionGameOver, Summary: summary}
	}()

	return sess, nil
}

// finishSummary pulls the finish summary out of the event log, if any.
func (s *GameSession) finishSummary() string {
	for _, e := range s.events.Events() {
		if e.Type == log.EventFinish {
			return e.Details
		}
	}
	return "session ended"
}

// waitForPending blocks until the next decision arrives from the dispatch
// loop, then builds a ToolResponse with accumulated events + the pending
// decision.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{Events: s.events.drain()}
	if resp.Events == nil {
		resp.Events = []EventView{}
	}

	if pending.Type == DecisionGameOver {
		resp.GameOver = true
		resp.Summary = pending.Summary
		return resp, nil
	}

	resp.Pending = pending
	return resp, nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
