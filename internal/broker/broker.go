// Package broker publishes game lifecycle events over NATS so downstream
// consumers (notification fan-out, archival) can react without coupling
// to the ledger. Publishing is fire-and-forget: a failed publish is
// logged and never fails the originating request.
package broker

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

// Event topics.
const (
	TopicGameCreated = "league.game.created"
	TopicGameEnded   = "league.game.ended"
)

type Broker struct {
	conn *nats.Conn
	url  string
}

// GameEvent is the wire payload for both lifecycle topics.
type GameEvent struct {
	EventID        string                     `json:"event_id"`
	GameID         int64                      `json:"game_id"`
	LeagueID       int64                      `json:"league_id"`
	Status         string                     `json:"status"`
	Reconciliation *models.GameReconciliation `json:"reconciliation,omitempty"`
	OccurredAt     time.Time                  `json:"occurred_at"`
}

// Connect dials the NATS server named by NATS_URL. Returns nil without
// error when NATS_URL is unset; callers fall back to the noop publisher.
func Connect() (*Broker, error) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		return nil, nil
	}

	opts := []nats.Option{
		nats.Name("league-services"),
	}
	if token := os.Getenv("NATS_TOKEN"); token != "" {
		opts = append(opts, nats.Token(token))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &Broker{conn: conn, url: url}, nil
}

func (b *Broker) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *Broker) GameCreated(_ context.Context, game *models.Game) {
	b.publish(TopicGameCreated, GameEvent{
		EventID:    uuid.NewString(),
		GameID:     game.ID,
		LeagueID:   game.LeagueID,
		Status:     game.Status,
		OccurredAt: time.Now().UTC(),
	})
}

func (b *Broker) GameEnded(_ context.Context, game *models.Game, rec *models.GameReconciliation) {
	b.publish(TopicGameEnded, GameEvent{
		EventID:        uuid.NewString(),
		GameID:         game.ID,
		LeagueID:       game.LeagueID,
		Status:         game.Status,
		Reconciliation: rec,
		OccurredAt:     time.Now().UTC(),
	})
}

func (b *Broker) publish(topic string, event GameEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("[broker] unable to marshal %s event: %v", topic, err)
		return
	}

	if err := b.conn.Publish(topic, payload); err != nil {
		log.Errorf("[broker] publish to %s failed: %v", topic, err)
	}
}
