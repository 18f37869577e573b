package kafka

import (
	"context"
	"testing"

	"github.com/iwtcode/gcodeAdapter/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKafkaProducer(t *testing.T) {
	nop := NewKafkaProducer(&config.AppConfig{})
	require.IsType(t, NopProducer{}, nop)
	assert.NoError(t, nop.Produce(context.Background(), []byte("k"), []byte("v")))
	assert.NoError(t, nop.Close())

	p := NewKafkaProducer(&config.AppConfig{KafkaBroker: "localhost:9092", KafkaTopic: "gcode_results"})
	producer, ok := p.(*KafkaProducer)
	require.True(t, ok)
	assert.Equal(t, "gcode_results", producer.writer.Topic)
	assert.Equal(t, "localhost:9092", producer.writer.Addr.String())
	assert.NoError(t, p.Close())
}
