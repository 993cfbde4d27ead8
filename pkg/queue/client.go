package queue

import (
	"github.com/craibuc/trustedemployee/pkg/queue/message"
	"github.com/craibuc/trustedemployee/pkg/queue/nats"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

type Config struct {
	Type string      `yaml:"type"`
	Nats nats.Config `yaml:"nats"`
}

// Publisher pushes report status messages onto the configured broker.
type Publisher interface {
	Pub(channel string, msg *message.Message) error
}

// Subscriber invokes action for every message arriving on a channel.
type Subscriber interface {
	Sub(channel string, action func(msg *message.Message)) error
}

func NewPublisher(cfg Config, log log.Logger) (Publisher, error) {
	switch cfg.Type {
	case "nats":
		return nats.NewNatsClient(cfg.Nats, log)
	default:
		return nil, errors.Errorf("invalid queue type: %s", cfg.Type)
	}
}

func NewSubscriber(cfg Config, log log.Logger) (Subscriber, error) {
	switch cfg.Type {
	case "nats":
		return nats.NewNatsClient(cfg.Nats, log)
	default:
		return nil, errors.Errorf("invalid queue type: %s", cfg.Type)
	}
}
