package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every message is
// handled as a dry run.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(ctx context.Context, board *match.Scoreboard, dryRun bool) error {
	msg := s.formatMatchResult(board)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

func (s *Notifier) SendStatusChange(ctx context.Context, m *match.Match, previous match.Status, dryRun bool) error {
	msg := s.formatStatusChange(m, previous)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

// formatMatchResult creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatMatchResult(board *match.Scoreboard) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏏 Match finished! 🏏", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var scoreText string
	if board.Score != nil {
		scoreText = fmt.Sprintf("%s\n%s",
			inningsLine(board.TeamA.Name, board.Score.TeamAScore, board.Score.TeamAWickets, board.Score.TeamAOvers, board.Score.TeamARunRate),
			inningsLine(board.TeamB.Name, board.Score.TeamBScore, board.Score.TeamBWickets, board.Score.TeamBOvers, board.Score.TeamBRunRate),
		)
		if result := resultLine(board); result != "" {
			scoreText += "\n" + result
		}
	} else {
		scoreText = fmt.Sprintf("%s vs %s\nNo score recorded", board.TeamA.Name, board.TeamB.Name)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	var contextElements []slack.MixedElement
	if board.Venue != nil {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", "📍 "+board.Venue.Name, true, false))
	}
	if top := board.TopScorer(); top != nil {
		text := fmt.Sprintf("⭐ Top scorer: %s %d", playerLabel(top.PlayerStat), *top.Runs)
		if top.Balls != nil {
			text += fmt.Sprintf(" (%d)", *top.Balls)
		}
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", text, true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatStatusChange creates the Slack message for a match going live or being cancelled.
func (s *Notifier) formatStatusChange(m *match.Match, previous match.Status) slack.Message {
	blocks := make([]slack.Block, 0)

	var header string
	switch m.Status {
	case match.StatusLive:
		header = "🏏 Match is live! 🏏"
	case match.StatusCancelled:
		header = "Match cancelled"
	default:
		header = fmt.Sprintf("Match is now %s", m.Status)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	details := fmt.Sprintf("%s vs %s\n%d overs a side", m.TeamA.Name, m.TeamB.Name, m.Overs)
	if m.Venue != nil {
		details += "\nVenue: " + m.Venue.Name
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Previously %s", previous), true, false),
	))
	return slack.NewBlockMessage(blocks...)
}

func inningsLine(team string, runs, wickets int, overs, runRate float64) string {
	return fmt.Sprintf("%s %d/%d (%g ov, RR %.2f)", team, runs, wickets, overs, runRate)
}

// resultLine describes the margin when a target was set. Team B chases.
func resultLine(board *match.Scoreboard) string {
	sc := board.Score
	if sc.Target == nil {
		return ""
	}
	switch {
	case sc.TeamBScore >= *sc.Target:
		return fmt.Sprintf("%s won by %d wickets", board.TeamB.Name, 10-sc.TeamBWickets)
	case sc.TeamBScore == *sc.Target-1:
		return "Match tied"
	default:
		return fmt.Sprintf("%s won by %d runs", board.TeamA.Name, *sc.Target-1-sc.TeamBScore)
	}
}

func playerLabel(p match.PlayerStat) string {
	if p.PlayerName != nil {
		return *p.PlayerName
	}
	if p.PlayerID != nil {
		return *p.PlayerID
	}
	return "Unknown"
}
