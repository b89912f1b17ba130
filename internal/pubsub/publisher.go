package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub"
)

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
// Topic handles are created once and reused so batching works across calls.
type PubSubPublisher struct {
	client *pubsub.Client

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

// NewPublisher creates a PubSubPublisher for the given GCP project.
func NewPublisher(ctx context.Context, projectID string) (*PubSubPublisher, error) {
	if projectID == "" {
		return nil, errors.New("GCP project ID is required for Pub/Sub")
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client, topics: make(map[string]*pubsub.Topic)}, nil
}

func (p *PubSubPublisher) topic(name string) *pubsub.Topic {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.topics[name]
	if !ok {
		t = p.client.Topic(name)
		p.topics[name] = t
	}
	return t
}

// Publish sends the payload to the given topic and waits for the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	result := p.topic(topic).Publish(ctx, &pubsub.Message{Data: payload, Attributes: attrs})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

// Close flushes pending messages and releases the client.
func (p *PubSubPublisher) Close() error {
	p.mu.Lock()
	for _, t := range p.topics {
		t.Stop()
	}
	p.mu.Unlock()
	return p.client.Close()
}

// PublishJSON marshals v and publishes it with attrs.
func PublishJSON(ctx context.Context, pub Publisher, topic string, v any, attrs map[string]string) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}
	return pub.Publish(ctx, topic, payload, attrs)
}
