package notifier

import (
	"context"
	"fmt"
	"time"

	"harvester/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds notifier configuration
type Config struct {
	Token     string
	ChannelID string
}

// Notifier posts collection run summaries to a Discord channel. Messages go
// out over the REST API; no gateway connection is opened.
type Notifier struct {
	config  Config
	session *discordgo.Session
}

// New creates a new Discord notifier
func New(config Config) (*Notifier, error) {
	if config.Token == "" || config.ChannelID == "" {
		return nil, fmt.Errorf("notifier requires both a token and a channel ID")
	}

	session, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}

	return &Notifier{
		config:  config,
		session: session,
	}, nil
}

// Subscribe registers the notifier on the event bus
func (n *Notifier) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeCollectionCompleted, n.handleCollectionCompleted)
}

// handleCollectionCompleted posts a run summary message
func (n *Notifier) handleCollectionCompleted(ctx context.Context, event events.Event) {
	completed, ok := event.(events.CollectionCompletedEvent)
	if !ok {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
		}).Warn("Notifier received unexpected event type")
		return
	}

	ladder := completed.Tier
	if completed.Division != "" {
		ladder = fmt.Sprintf("%s %s", completed.Tier, completed.Division)
	}

	message := fmt.Sprintf(
		"Collection run #%d finished: %s %s, %d entries seen, %d summoners stored (%d requests, %s)",
		completed.RunID,
		completed.Region,
		ladder,
		completed.EntriesSeen,
		completed.SummonersUpserted,
		completed.RequestsMade,
		completed.Duration.Round(time.Millisecond),
	)

	if _, err := n.session.ChannelMessageSend(n.config.ChannelID, message); err != nil {
		log.WithFields(log.Fields{
			"channelId": n.config.ChannelID,
			"error":     err,
		}).Error("Failed to send collection summary to Discord")
		return
	}

	log.WithFields(log.Fields{
		"runId":     completed.RunID,
		"channelId": n.config.ChannelID,
	}).Debug("Posted collection summary to Discord")
}
