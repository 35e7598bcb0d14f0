package natsgath

import (
	"errors"
	"strings"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/programme-lv/autograder/api"
	"github.com/programme-lv/autograder/internal/gatherer/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	msgs []*nats.Msg
	err  error
}

func (r *recordingPublisher) PublishMsg(m *nats.Msg) error {
	r.msgs = append(r.msgs, m)
	return r.err
}

func TestSmallMessagesArePlainJson(t *testing.T) {
	pub := &recordingPublisher{}
	g := New(pub, "run-3", "grading.progress")

	g.FinishQuestion("1-1", 2, 5)
	require.Len(t, pub.msgs, 1)
	m := pub.msgs[0]
	assert.Equal(t, "grading.progress", m.Subject)
	assert.Empty(t, m.Header.Get(ContentEncodingHeader))

	var msg api.FinishQuestion
	require.NoError(t, wire.Decode(m.Data, wire.EncodingIdentity, &msg))
	assert.Equal(t, api.FinishQuestionMsg, msg.MsgType)
	assert.Equal(t, "run-3", msg.RunUuid)
	assert.Equal(t, 2.0, msg.Score)
}

func TestLargeMessagesCarryZstdHeader(t *testing.T) {
	pub := &recordingPublisher{}
	g := New(pub, "run-3", "grading.progress")

	reason := strings.Repeat("y", 2*wire.CompressThreshold)
	g.SkipTesting("2-1", reason)
	require.Len(t, pub.msgs, 1)
	m := pub.msgs[0]
	assert.Equal(t, wire.EncodingZstd, m.Header.Get(ContentEncodingHeader))
	assert.Less(t, len(m.Data), len(reason))

	var msg api.SkipTesting
	require.NoError(t, wire.Decode(m.Data, wire.EncodingZstd, &msg))
	assert.Equal(t, "2-1", msg.QuestionId)
	assert.Equal(t, reason, msg.Reason)
}

func TestPublishErrorsAreLogged(t *testing.T) {
	pub := &recordingPublisher{err: nats.ErrConnectionClosed}
	g := New(pub, "run-3", "grading.progress")

	assert.NotPanics(t, func() { g.FinishRun(0, errors.New("compiler missing")) })
	assert.Len(t, pub.msgs, 1)
	assert.NoError(t, g.Close())
}
