package application

import "context"

// Publisher abstracts the message queue used for outbound email jobs.
// Satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
