package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FinishReport is the decoded FINISH payload: the match result the server
// sends once, after the last turn. No response is sent back.
type FinishReport struct {
	Scores struct {
		Humans  int `json:"humans"`
		Zombies int `json:"zombies"`
	} `json:"scores"`
	Stats struct {
		HumansLeft  int `json:"humansLeft"`
		ZombiesLeft int `json:"zombiesLeft"`
		Turns       int `json:"turns"`
	} `json:"stats"`
	Errors struct {
		HumanErrors  []string `json:"humanErrors"`
		ZombieErrors []string `json:"zombieErrors"`
	} `json:"errors"`
}

// DecodeFinish parses a FINISH message payload.
func DecodeFinish(message json.RawMessage) (FinishReport, error) {
	var r FinishReport
	if err := json.Unmarshal(message, &r); err != nil {
		return FinishReport{}, fmt.Errorf("%w: finish: %v", ErrMalformedPayload, err)
	}
	return r, nil
}

// OwnErrors returns the error lines the server accumulated for the given
// side over the match.
func (r FinishReport) OwnErrors(side Side) []string {
	if side.IsZombie() {
		return r.Errors.ZombieErrors
	}
	return r.Errors.HumanErrors
}

// Summary renders the operator-facing end-of-match report for one side.
func (r FinishReport) Summary(side Side) string {
	var sb strings.Builder

	own := r.OwnErrors(side)
	if len(own) > 0 {
		fmt.Fprintf(&sb, "Your bot had %d errors:\n%s\n", len(own), strings.Join(own, "\n"))
	} else {
		sb.WriteString("Your bot had no errors.\n")
	}

	fmt.Fprintf(&sb, "Finished game on turn %d with %d humans and %d zombies.\n",
		r.Stats.Turns, r.Stats.HumansLeft, r.Stats.ZombiesLeft)

	you := "humans"
	if side.IsZombie() {
		you = "zombies"
	}
	fmt.Fprintf(&sb, "Score: %d-%d (H-Z). You were the %s.",
		r.Scores.Humans, r.Scores.Zombies, you)

	return sb.String()
}
