package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weihanng/techtrove/internal/container"
	"github.com/weihanng/techtrove/pkg/helpers"
)

// A nil concrete publisher in the container must surface as a nil
// interface, not a non-nil interface wrapping a nil pointer.
func TestQueuePublisherAbsent(t *testing.T) {
	container.SetRabbitPub(nil)
	assert.True(t, queuePublisher() == nil)
}

func TestQueuePublisherPresent(t *testing.T) {
	pub := &helpers.RabbitPublisher{Queue: "emails"}
	container.SetRabbitPub(pub)
	defer container.SetRabbitPub(nil)

	got := queuePublisher()
	assert.NotNil(t, got)
	assert.Same(t, pub, got)
}
