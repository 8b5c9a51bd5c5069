package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/outbreakgames/obx/internal/game"
	"github.com/outbreakgames/obx/internal/log"
	"github.com/outbreakgames/obx/internal/protocol"
	"github.com/outbreakgames/obx/internal/strategy"
)

// Recorder receives one record per handled turn. Satisfied by
// replay.Recorder; nil disables recording.
type Recorder interface {
	RecordTurn(turn int, phase string, request, response []byte) error
}

// Session runs one match: it reads envelopes off the transport, routes
// each by phase to the matching codec pair and strategy call, writes the
// response, and contains per-turn failures. The only state it keeps
// across turns is the transport and the side the server assigned.
type Session struct {
	Transport Transport
	Provider  strategy.Provider
	Logger    log.EventLogger

	// Recorder, when set, captures every request/response pair.
	Recorder Recorder

	// DecisionTimeout bounds one strategy call; zero means no limit.
	// An expired deadline is handled like any other turn failure.
	DecisionTimeout time.Duration

	side protocol.Side
}

// Run processes envelopes until the server sends FINISH. A failed turn
// never ends the session: the failure is logged, the sentinel response is
// written, and the loop continues. Run returns a non-nil error only for
// transport read failures or context cancellation.
func (s *Session) Run(ctx context.Context) error {
	if s.Provider == nil {
		s.Provider = strategy.Default
	}
	if s.Logger == nil {
		s.Logger = log.NewMemoryLogger()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := s.Transport.Read(ctx)
		if err != nil {
			return fmt.Errorf("session read: %w", err)
		}
		if len(raw) == 0 {
			// Nothing yet; re-poll.
			continue
		}

		if finished := s.handle(ctx, raw); finished {
			return nil
		}
	}
}

// Side returns the faction the server assigned this session, once known.
func (s *Session) Side() protocol.Side { return s.side }

// handle processes one raw message end to end and reports whether the
// session is finished. All turn-level failures are contained here.
func (s *Session) handle(ctx context.Context, raw []byte) bool {
	env, err := protocol.DecodeEnvelope(raw)
	if err != nil {
		s.failTurn(ctx, 0, "", raw, err)
		return false
	}
	if env.Side != "" {
		// Fixed for the life of the session; the server resends it on
		// every envelope.
		s.side = env.Side
	}

	if env.Phase == protocol.PhaseFinish {
		if finished := s.finish(env, raw); finished {
			return true
		}
		// A FINISH payload that does not decode forfeits the turn like
		// any other failure and keeps the session alive.
		return false
	}

	s.Logger.Log(log.NewEnvelopeEvent(env.Turn, string(env.Phase)))

	resp, err := s.dispatch(ctx, env)
	if err != nil {
		s.failTurn(ctx, env.Turn, string(env.Phase), raw, err)
		return false
	}

	if err := s.Transport.Write(ctx, resp); err != nil {
		s.Logger.Log(log.NewTurnErrorEvent(env.Turn, string(env.Phase), err))
		return false
	}
	s.Logger.Log(log.NewDecisionEvent(env.Turn, string(env.Phase)))
	s.record(env.Turn, string(env.Phase), raw, resp)
	return false
}

// dispatch routes one non-FINISH envelope to its decode → decide → encode
// triple. Strategy panics are recovered into ordinary turn errors.
func (s *Session) dispatch(ctx context.Context, env protocol.Envelope) (resp []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("strategy panic: %v", r)
		}
	}()

	if !env.Phase.Known() {
		return nil, fmt.Errorf("%w: %q", protocol.ErrUnknownPhase, env.Phase)
	}

	// The snapshot exists only within this iteration.
	var state *game.GameState
	if env.Phase != protocol.PhaseChooseClasses {
		if state, err = game.DecodeState(env.Message); err != nil {
			return nil, err
		}
	}

	strat := s.Provider(env.Side)

	dctx := ctx
	if s.DecisionTimeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, s.DecisionTimeout)
		defer cancel()
	}

	switch env.Phase {
	case protocol.PhaseChooseClasses:
		cc, err := protocol.DecodeClassChoices(env.Message)
		if err != nil {
			return nil, err
		}
		selection := strat.DecideClasses(dctx, cc.Choices, cc.NumToPick, cc.MaxPerSameClass)
		if selection == nil {
			return nil, fmt.Errorf("%w: DecideClasses", protocol.ErrStrategyNoDecision)
		}
		if err := dctx.Err(); err != nil {
			return nil, fmt.Errorf("DecideClasses: %w", err)
		}
		return protocol.EncodeClassSelection(selection)

	case protocol.PhaseMove:
		choices, err := protocol.DecodeMoveChoices(env.Message)
		if err != nil {
			return nil, err
		}
		chosen := strat.DecideMoves(dctx, choices, state)
		if chosen == nil {
			return nil, fmt.Errorf("%w: DecideMoves", protocol.ErrStrategyNoDecision)
		}
		if err := dctx.Err(); err != nil {
			return nil, fmt.Errorf("DecideMoves: %w", err)
		}
		return protocol.EncodeMoves(chosen)

	case protocol.PhaseAttack:
		choices, err := protocol.DecodeAttackChoices(env.Message)
		if err != nil {
			return nil, err
		}
		chosen := strat.DecideAttacks(dctx, choices, state)
		if chosen == nil {
			return nil, fmt.Errorf("%w: DecideAttacks", protocol.ErrStrategyNoDecision)
		}
		if err := dctx.Err(); err != nil {
			return nil, fmt.Errorf("DecideAttacks: %w", err)
		}
		return protocol.EncodeAttacks(chosen)

	case protocol.PhaseAbility:
		choices, err := protocol.DecodeAbilityChoices(env.Message)
		if err != nil {
			return nil, err
		}
		chosen := strat.DecideAbilities(dctx, choices, state)
		if chosen == nil {
			return nil, fmt.Errorf("%w: DecideAbilities", protocol.ErrStrategyNoDecision)
		}
		if err := dctx.Err(); err != nil {
			return nil, fmt.Errorf("DecideAbilities: %w", err)
		}
		return protocol.EncodeAbilities(chosen)
	}

	// Unreachable: Known() covered the switch.
	return nil, fmt.Errorf("%w: %q", protocol.ErrUnknownPhase, env.Phase)
}

// finish handles the terminal FINISH envelope: summary, no response.
func (s *Session) finish(env protocol.Envelope, raw []byte) bool {
	report, err := protocol.DecodeFinish(env.Message)
	if err != nil {
		s.failTurn(context.Background(), env.Turn, string(env.Phase), raw, err)
		return false
	}
	s.Logger.Log(log.NewFinishEvent(env.Turn, report.Summary(s.side)))
	s.record(env.Turn, string(env.Phase), raw, nil)
	return true
}

// failTurn contains one turn failure: log it, answer with the sentinel,
// record the forfeited turn, carry on.
func (s *Session) failTurn(ctx context.Context, turn int, phase string, raw []byte, cause error) {
	s.Logger.Log(log.NewTurnErrorEvent(turn, phase, cause))
	if err := s.Transport.Write(ctx, protocol.Sentinel); err != nil {
		s.Logger.Log(log.NewTurnErrorEvent(turn, phase, err))
		return
	}
	s.record(turn, phase, raw, protocol.Sentinel)
}

func (s *Session) record(turn int, phase string, request, response []byte) {
	if s.Recorder == nil {
		return
	}
	if err := s.Recorder.RecordTurn(turn, phase, request, response); err != nil {
		s.Logger.Log(log.NewTurnErrorEvent(turn, phase, fmt.Errorf("record turn: %w", err)))
	}
}
