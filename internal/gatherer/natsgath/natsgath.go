// Package natsgath streams grading progress to a NATS subject.
package natsgath

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/programme-lv/autograder/internal/gatherer/wire"
)

const ContentEncodingHeader = "Content-Encoding"

// Publisher is the subset of *nats.Conn the gatherer publishes through.
type Publisher interface {
	PublishMsg(m *nats.Msg) error
}

type Gatherer struct {
	*wire.Stream
	pub     Publisher
	subject string

	nc *nats.Conn
}

// New creates a gatherer that publishes every progress message to subject.
func New(pub Publisher, runUuid string, subject string) *Gatherer {
	g := &Gatherer{pub: pub, subject: subject}
	g.Stream = wire.NewStream(runUuid, g.send)
	return g
}

// Connect dials url and wraps the connection in a Gatherer. The caller owns
// Close, which also closes the connection.
func Connect(url string, runUuid string, subject string) (*Gatherer, error) {
	nc, err := nats.Connect(url,
		nats.Name("autograder"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	g := New(nc, runUuid, subject)
	g.nc = nc
	return g, nil
}

func (g *Gatherer) send(msg any) {
	m, err := g.buildMsg(msg)
	if err != nil {
		slog.Error("failed to encode progress message", "error", err)
		return
	}
	if err := g.pub.PublishMsg(m); err != nil {
		slog.Error("failed to publish message to NATS", "subject", g.subject, "error", err)
	}
}

func (g *Gatherer) buildMsg(msg any) (*nats.Msg, error) {
	body, encoding, err := wire.Encode(msg)
	if err != nil {
		return nil, err
	}
	m := nats.NewMsg(g.subject)
	m.Data = body
	if encoding != wire.EncodingIdentity {
		m.Header.Set(ContentEncodingHeader, encoding)
	}
	return m, nil
}

// Close flushes buffered messages and closes the connection opened by
// Connect.
func (g *Gatherer) Close() error {
	if g.nc == nil {
		return nil
	}
	if err := g.nc.FlushTimeout(5 * time.Second); err != nil {
		slog.Warn("failed to flush NATS connection", "error", err)
	}
	g.nc.Close()
	return nil
}
