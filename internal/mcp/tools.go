package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/outbreakgames/obx/internal/game"
)

// activeSession is the singleton match session (one per stdio process).
var activeSession *GameSession

// RegisterTools adds all runner tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(connectTool(), handleConnect)
	s.AddTool(getPendingTool(), handleGetPending)
	s.AddTool(chooseClassesTool(), handleChooseClasses)
	s.AddTool(submitMovesTool(), handleSubmitMoves)
	s.AddTool(submitAttacksTool(), handleSubmitAttacks)
	s.AddTool(submitAbilitiesTool(), handleSubmitAbilities)
}

// --- Tool definitions ---

func connectTool() mcp.Tool {
	return mcp.NewTool("connect",
		mcp.WithDescription("Connect to a running Outbreak engine and start playing the assigned seat. "+
			"Blocks until the engine sends the first decision."),
		mcp.WithString("addr", mcp.Required(), mcp.Description("Engine address: host:port for tcp, ws:// URL for ws")),
		mcp.WithString("transport", mcp.Description("Transport kind: 'tcp' (default) or 'ws'")),
	)
}

func getPendingTool() mcp.Tool {
	return mcp.NewTool("get_pending",
		mcp.WithDescription("Get accumulated session events and the current pending decision without submitting a response. Read-only."),
	)
}

func chooseClassesTool() mcp.Tool {
	return mcp.NewTool("choose_classes",
		mcp.WithDescription("Answer a pending 'choose_classes' decision. Selections are space-separated CLASS=COUNT pairs, e.g. 'MEDIC=1 MARKSMAN=2'."),
		mcp.WithString("selections", mcp.Required(), mcp.Description("Space-separated CLASS=COUNT pairs drawn from the offered choices")),
	)
}

func submitMovesTool() mcp.Tool {
	return mcp.NewTool("submit_moves",
		mcp.WithDescription("Answer a pending 'move' decision. Picks are space-separated characterId:index pairs into possibleMoves, "+
			"in execution priority order. Empty string submits no moves."),
		mcp.WithString("picks", mcp.Required(), mcp.Description("Space-separated characterId:index pairs (e.g. 'c1:0 c2:3'), or empty")),
	)
}

func submitAttacksTool() mcp.Tool {
	return mcp.NewTool("submit_attacks",
		mcp.WithDescription("Answer a pending 'attack' decision. Picks are space-separated characterId:index pairs into possibleAttacks, "+
			"in execution priority order. Empty string submits no attacks."),
		mcp.WithString("picks", mcp.Required(), mcp.Description("Space-separated characterId:index pairs, or empty")),
	)
}

func submitAbilitiesTool() mcp.Tool {
	return mcp.NewTool("submit_abilities",
		mcp.WithDescription("Answer a pending 'ability' decision. Picks are space-separated characterId:index pairs into possibleAbilities, "+
			"in execution priority order. Empty string submits no abilities."),
		mcp.WithString("picks", mcp.Required(), mcp.Description("Space-separated characterId:index pairs, or empty")),
	)
}

// --- Tool handlers ---

func handleConnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A session is already running. Only one session at a time is supported."), nil
	}

	addr := request.GetString("addr", "")
	if addr == "" {
		return mcp.NewToolResultError("addr is required"), nil
	}
	transport := request.GetString("transport", "tcp")

	sess, err := NewGameSession(addr, transport)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to connect: %v", err), nil
	}
	activeSession = sess

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetPending(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No session is running. Use connect first."), nil
	}

	sess := activeSession

	sess.mu.Lock()
	gameOver := sess.gameOver
	summary := sess.summary
	sess.mu.Unlock()

	resp := &ToolResponse{
		Events:   sess.events.drain(),
		Pending:  sess.currentPending,
		GameOver: gameOver,
		Summary:  summary,
	}
	if resp.Events == nil {
		resp.Events = []EventView{}
	}
	if gameOver {
		resp.Pending = nil
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleChooseClasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOfType(DecisionChooseClasses)
	if errResult != nil {
		return errResult, nil
	}

	offered := make(map[game.CharacterClass]bool, len(pending.Choices))
	for _, c := range pending.Choices {
		offered[c] = true
	}

	selection := make(map[game.CharacterClass]int)
	total := 0
	for _, pair := range strings.Fields(request.GetString("selections", "")) {
		name, countStr, ok := strings.Cut(pair, "=")
		if !ok {
			return mcp.NewToolResultErrorf("Invalid selection '%s': expected CLASS=COUNT.", pair), nil
		}
		class := game.CharacterClass(name)
		if !offered[class] {
			return mcp.NewToolResultErrorf("Class '%s' is not among the offered choices.", name), nil
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 1 {
			return mcp.NewToolResultErrorf("Invalid count '%s' for class '%s'.", countStr, name), nil
		}
		if pending.MaxPerSameClass > 0 && count > pending.MaxPerSameClass {
			return mcp.NewToolResultErrorf("Count %d for class '%s' exceeds maxPerSameClass=%d.", count, name, pending.MaxPerSameClass), nil
		}
		selection[class] += count
		total += count
	}
	if total != pending.NumToPick {
		return mcp.NewToolResultErrorf("Selections total %d, need exactly %d.", total, pending.NumToPick), nil
	}

	sess.bridge.responseCh <- classResponse{Selection: selection}
	return nextPending(sess)
}

func handleSubmitMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOfType(DecisionMove)
	if errResult != nil {
		return errResult, nil
	}

	actions := []game.MoveAction{}
	for _, pick := range strings.Fields(request.GetString("picks", "")) {
		id, idx, errResult := parsePick(pick)
		if errResult != nil {
			return errResult, nil
		}
		candidates, ok := pending.Moves[id]
		if !ok {
			return mcp.NewToolResultErrorf("Character '%s' has no pending moves.", id), nil
		}
		if idx < 0 || idx >= len(candidates) {
			return mcp.NewToolResultErrorf("Index %d out of range for character '%s' (0-%d).", idx, id, len(candidates)-1), nil
		}
		actions = append(actions, candidates[idx])
	}

	sess.bridge.responseCh <- moveResponse{Actions: actions}
	return nextPending(sess)
}

func handleSubmitAttacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOfType(DecisionAttack)
	if errResult != nil {
		return errResult, nil
	}

	actions := []game.AttackAction{}
	for _, pick := range strings.Fields(request.GetString("picks", "")) {
		id, idx, errResult := parsePick(pick)
		if errResult != nil {
			return errResult, nil
		}
		candidates, ok := pending.Attacks[id]
		if !ok {
			return mcp.NewToolResultErrorf("Character '%s' has no pending attacks.", id), nil
		}
		if idx < 0 || idx >= len(candidates) {
			return mcp.NewToolResultErrorf("Index %d out of range for character '%s' (0-%d).", idx, id, len(candidates)-1), nil
		}
		actions = append(actions, candidates[idx])
	}

	sess.bridge.responseCh <- attackResponse{Actions: actions}
	return nextPending(sess)
}

func handleSubmitAbilities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOfType(DecisionAbility)
	if errResult != nil {
		return errResult, nil
	}

	actions := []game.AbilityAction{}
	for _, pick := range strings.Fields(request.GetString("picks", "")) {
		id, idx, errResult := parsePick(pick)
		if errResult != nil {
			return errResult, nil
		}
		candidates, ok := pending.Abilities[id]
		if !ok {
			return mcp.NewToolResultErrorf("Character '%s' has no pending abilities.", id), nil
		}
		if idx < 0 || idx >= len(candidates) {
			return mcp.NewToolResultErrorf("Index %d out of range for character '%s' (0-%d).", idx, id, len(candidates)-1), nil
		}
		actions = append(actions, candidates[idx])
	}

	sess.bridge.responseCh <- abilityResponse{Actions: actions}
	return nextPending(sess)
}

// --- helpers ---

// pendingOfType checks the singleton session has a pending decision of
// the wanted type and returns it, or a ready-made tool error.
func pendingOfType(want DecisionType) (*GameSession, *PendingDecision, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, nil, mcp.NewToolResultError("No session is running. Use connect first.")
	}
	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return nil, nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != want {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, pending, nil
}

// nextPending waits for the dispatch loop's next decision and renders it.
func nextPending(sess *GameSession) (*mcp.CallToolResult, error) {
	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func parsePick(pick string) (string, int, *mcp.CallToolResult) {
	id, idxStr, ok := strings.Cut(pick, ":")
	if !ok || id == "" {
		return "", 0, mcp.NewToolResultErrorf("Invalid pick '%s': expected characterId:index.", pick)
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return "", 0, mcp.NewToolResultErrorf("Invalid index in pick '%s': must be an integer.", pick)
	}
	return id, idx, nil
}
