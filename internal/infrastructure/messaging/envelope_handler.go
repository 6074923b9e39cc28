package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/naomili-code/scamalyst/pkg/events"
	pkgkafka "github.com/naomili-code/scamalyst/pkg/kafka"
)

// EnvelopeHandler returns a pkgkafka.Handler that decodes each message as an
// events.Envelope before passing it on. Undecodable messages return an
// error, so the consumer logs and skips them.
func EnvelopeHandler(next func(ctx context.Context, env events.Envelope) error) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		env, err := DecodeEnvelope(msg)
		if err != nil {
			return err
		}
		return next(ctx, env)
	}
}

// DecodeEnvelope unmarshals a Kafka message value into an Envelope.
func DecodeEnvelope(msg pkgkafka.Message) (events.Envelope, error) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return events.Envelope{}, fmt.Errorf("failed to decode event envelope: %w", err)
	}
	if env.Type == "" {
		env.Type = msg.Headers[HeaderEventType]
	}
	if env.Type == "" {
		return events.Envelope{}, errors.New("event envelope has no type")
	}
	return env, nil
}
