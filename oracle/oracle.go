// Package oracle adapts a raw text generator into the structured content
// collaborator the settlement core consumes. Each call renders a transcript
// into a prompt, asks the generator for JSON matching a fixed schema, and
// degrades to a deterministic built-in suggestion when the output is
// malformed. Malformed generator output is never fatal.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// Generator produces raw text from a prompt. Implementations wrap whatever
// model backend the deployment uses; the core never sees provider details.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Oracle implements the content collaborator over a Generator.
type Oracle struct {
	config    *config.Config
	generator Generator
}

// New creates an oracle backed by the given generator
func New(generator Generator) *Oracle {
	return &Oracle{
		config:    config.Get(),
		generator: generator,
	}
}

var _ interfaces.Oracle = (*Oracle)(nil)

// transcriptExcerpt renders up to limit messages into prompt lines
func transcriptExcerpt(transcript []entities.ChatMessage, limit int) string {
	if len(transcript) > limit {
		transcript = transcript[len(transcript)-limit:]
	}
	var sb strings.Builder
	for _, m := range transcript {
		fmt.Fprintf(&sb, "[%s] player %d: %s\n", m.Timestamp.Format(time.RFC3339), m.SenderID, m.Content)
	}
	return sb.String()
}

// extractJSON pulls the first top-level JSON object out of generator output,
// tolerating surrounding prose and markdown fences.
func extractJSON(raw string) string {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func (o *Oracle) generateInto(ctx context.Context, prompt string, out any) error {
	raw, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("generator failed: %w", err)
	}
	payload := extractJSON(raw)
	if payload == "" {
		return fmt.Errorf("no JSON object in generator output")
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("failed to parse generator output: %w", err)
	}
	return nil
}

func (o *Oracle) clamp(odds int) int {
	min, max := o.config.MinOdds, o.config.MaxOdds
	if odds == 0 {
		return -100
	}
	if odds > max {
		return max
	}
	if odds < min {
		return min
	}
	return odds
}

// ChatTrends analyzes a transcript excerpt into observed trend strings
func (o *Oracle) ChatTrends(ctx context.Context, transcript []entities.ChatMessage) ([]string, error) {
	prompt := fmt.Sprintf(`Read this group chat excerpt and list 3-5 notable behavioral trends, one short sentence each.
Respond with JSON only: {"trends": ["..."]}

%s`, transcriptExcerpt(transcript, 200))

	var parsed struct {
		Trends []string `json:"trends"`
	}
	if err := o.generateInto(ctx, prompt, &parsed); err != nil || len(parsed.Trends) == 0 {
		log.WithError(err).Warn("Oracle chat trends degraded to fallback")
		return []string{"chat activity looks steady"}, nil
	}
	return parsed.Trends, nil
}

// AmbushProp suggests a proposition about the target's behavior
func (o *Oracle) AmbushProp(ctx context.Context, targetID int64, transcript []entities.ChatMessage) (*interfaces.SuggestedProp, error) {
	prompt := fmt.Sprintf(`Based on this chat excerpt, propose one bet about what player %d will do next week, with American odds.
Respond with JSON only: {"description": "...", "odds": <int>}

%s`, targetID, transcriptExcerpt(transcript, 200))

	var parsed struct {
		Description string `json:"description"`
		Odds        int    `json:"odds"`
	}
	if err := o.generateInto(ctx, prompt, &parsed); err != nil || parsed.Description == "" {
		log.WithError(err).WithField("targetID", targetID).Warn("Oracle ambush prop degraded to fallback")
		return &interfaces.SuggestedProp{
			Description: fmt.Sprintf("player %d sends fewer than 10 messages this week", targetID),
			Odds:        150,
		}, nil
	}
	return &interfaces.SuggestedProp{
		Description: parsed.Description,
		Odds:        o.clamp(parsed.Odds),
	}, nil
}

// Superlative curates an award category with nominees and evidence quotes
func (o *Oracle) Superlative(ctx context.Context, transcript []entities.ChatMessage) (*interfaces.SuggestedSuperlative, error) {
	prompt := fmt.Sprintf(`Based on this chat excerpt, invent one superlative award (like "Most Likely To Cancel Plans") and nominate 2-4 players with a short evidence quote each and American odds.
Respond with JSON only: {"title": "...", "nominees": [{"player_id": <int>, "odds": <int>, "evidence": ["..."]}]}

%s`, transcriptExcerpt(transcript, 200))

	var parsed struct {
		Title    string `json:"title"`
		Nominees []struct {
			PlayerID int64    `json:"player_id"`
			Odds     int      `json:"odds"`
			Evidence []string `json:"evidence"`
		} `json:"nominees"`
	}
	if err := o.generateInto(ctx, prompt, &parsed); err != nil || parsed.Title == "" || len(parsed.Nominees) == 0 {
		log.WithError(err).Warn("Oracle superlative degraded to fallback")
		return o.fallbackSuperlative(transcript), nil
	}

	out := &interfaces.SuggestedSuperlative{Title: parsed.Title}
	for _, n := range parsed.Nominees {
		out.Nominees = append(out.Nominees, interfaces.SuggestedNominee{
			PlayerID: n.PlayerID,
			Odds:     o.clamp(n.Odds),
			Evidence: n.Evidence,
		})
	}
	return out, nil
}

// fallbackSuperlative nominates the two most active senders at even-ish odds
func (o *Oracle) fallbackSuperlative(transcript []entities.ChatMessage) *interfaces.SuggestedSuperlative {
	counts := make(map[int64]int)
	var order []int64
	for _, m := range transcript {
		if counts[m.SenderID] == 0 {
			order = append(order, m.SenderID)
		}
		counts[m.SenderID]++
	}
	var first, second int64
	for _, id := range order {
		if first == 0 || counts[id] > counts[first] {
			second = first
			first = id
		} else if second == 0 || counts[id] > counts[second] {
			second = id
		}
	}

	out := &interfaces.SuggestedSuperlative{Title: "Most Chronically Online"}
	if first != 0 {
		out.Nominees = append(out.Nominees, interfaces.SuggestedNominee{PlayerID: first, Odds: -110})
	}
	if second != 0 {
		out.Nominees = append(out.Nominees, interfaces.SuggestedNominee{PlayerID: second, Odds: 120})
	}
	return out
}

// RedemptionBet generates the single gulag redemption wager
func (o *Oracle) RedemptionBet(ctx context.Context, playerID int64) (*entities.RedemptionBet, error) {
	prompt := fmt.Sprintf(`Player %d just went bankrupt. Propose one dramatic all-or-nothing redemption bet with American odds around even money.
Respond with JSON only: {"description": "...", "odds": <int>}`, playerID)

	var parsed struct {
		Description string `json:"description"`
		Odds        int    `json:"odds"`
	}
	if err := o.generateInto(ctx, prompt, &parsed); err != nil || parsed.Description == "" {
		log.WithError(err).WithField("playerID", playerID).Warn("Oracle redemption bet degraded to fallback")
		parsed.Description = "double or nothing on a coin flip"
		parsed.Odds = 100
	}
	return &entities.RedemptionBet{
		Description: parsed.Description,
		Odds:        o.clamp(parsed.Odds),
		Stake:       o.config.RedemptionStake,
		Reward:      o.config.RedemptionReward,
		CreatedAt:   time.Now(),
	}, nil
}

// StaticGenerator always returns the same payload. Useful for local play and
// tests that need a wired generator without a model backend.
type StaticGenerator struct {
	Payload string
}

// Generate returns the fixed payload
func (g StaticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.Payload, nil
}
