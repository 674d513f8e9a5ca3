package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/nats-io/nats.go"
)

// natsConn is the part of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subj string, data []byte) error
	IsConnected() bool
	Drain() error
}

type NatsPublisher struct {
	conn natsConn
	log  logging.Logger
}

// ConnectNats dials url and keeps reconnecting in the background for the
// life of the process.
func ConnectNats(url string, log logging.Logger) (*NatsPublisher, error) {
	ctx := context.Background()

	nc, err := nats.Connect(url,
		nats.Name("taskboard-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn(ctx, "nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info(ctx, "nats reconnected", "url", c.ConnectedUrlRedacted())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	log.Info(ctx, "connected to nats", "url", nc.ConnectedUrlRedacted())
	return newNatsPublisher(nc, log), nil
}

func newNatsPublisher(conn natsConn, log logging.Logger) *NatsPublisher {
	return &NatsPublisher{conn: conn, log: log}
}

func (p *NatsPublisher) Publish(ctx context.Context, ev Event) error {
	if !p.conn.IsConnected() {
		return nats.ErrConnectionClosed
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.conn.Publish(ev.Subject(), data); err != nil {
		return err
	}

	p.log.Debug(ctx, "event published", "subject", ev.Subject())
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}
