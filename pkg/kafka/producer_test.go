package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "snappy")

	err := p.Publish(context.Background(), "finvault.runs", []byte("run-1"), map[string]int{"stored": 3})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	require.Equal(t, "finvault.runs", w.msgs[0].Topic)
	require.Equal(t, []byte("run-1"), w.msgs[0].Key)

	var got map[string]int
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, 3, got["stored"])
}

func TestPublishBatchPassesRawBytes(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "snappy")

	err := p.PublishBatch(context.Background(), "t", []Message{{Value: []byte("a")}, {Value: "b"}})
	require.NoError(t, err)
	require.Equal(t, []byte("a"), w.msgs[0].Value)
	require.Equal(t, []byte("b"), w.msgs[1].Value)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("leader not available")
	p := NewProducerWithWriter(&fakeWriter{err: boom}, "snappy")

	err := p.Publish(context.Background(), "t", nil, "x")
	require.ErrorIs(t, err, boom)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	require.Error(t, err)
}
