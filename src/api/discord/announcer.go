package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/treasury-gov/src/api/data"
	"go.uber.org/zap"
)

// Announcer tails the governance event stream and posts lifecycle messages
// to a Discord channel. Purely informational; losing a message never
// affects governance state.
type Announcer struct {
	session   *discordgo.Session
	rdb       *redis.Client
	channelID string
	log       *zap.Logger
}

func NewAnnouncer(token, channelID string, rdb *redis.Client, log *zap.Logger) (*Announcer, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("discord open: %w", err)
	}
	return &Announcer{session: session, rdb: rdb, channelID: channelID, log: log}, nil
}

// Run blocks reading the event stream until the context is cancelled.
func (a *Announcer) Run(ctx context.Context) {
	lastID := "$"
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := data.ReadEvents(ctx, a.rdb, lastID, 5*time.Second)
		if err != nil {
			if err != redis.Nil && ctx.Err() == nil {
				a.log.Warn("read event stream", zap.Error(err))
				time.Sleep(time.Second)
			}
			continue
		}
		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				a.announce(msg.Values)
			}
		}
	}
}

func (a *Announcer) Close() error { return a.session.Close() }

func (a *Announcer) announce(values map[string]interface{}) {
	event, _ := values["event"].(string)
	var content string
	switch event {
	case "proposal.created":
		content = fmt.Sprintf("New proposal #%v (%v): %v, proposed by %v",
			values["id"], values["kind"], values["title"], values["proposer"])
	case "proposal.finalized":
		content = fmt.Sprintf("Proposal #%v finalized: %v", values["id"], values["status"])
	case "proposal.executed":
		content = fmt.Sprintf("Proposal #%v execution result: %v", values["id"], values["status"])
	case "voter.registered":
		content = fmt.Sprintf("Voter %v registered with weight %v", values["address"], values["weight"])
	case "voter.deactivated":
		content = fmt.Sprintf("Voter %v deactivated", values["address"])
	default:
		return
	}
	if _, err := a.session.ChannelMessageSend(a.channelID, content); err != nil {
		a.log.Warn("discord send", zap.String("event", event), zap.Error(err))
	}
}
