package notifier

import (
	"github.com/craibuc/trustedemployee/pkg/queue"
	"github.com/craibuc/trustedemployee/pkg/queue/message"
	"github.com/craibuc/trustedemployee/pkg/trustedemployee"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const defaultChannel = "trustedemployee"

type Config struct {
	Channel string       `yaml:"channel"`
	Queue   queue.Config `yaml:"queue"`
}

// Notifier publishes file numbers whose reports became available, so
// downstream consumers can trigger downloads without polling.
type Notifier struct {
	cfg Config
	log log.Logger

	pub queue.Publisher
}

func New(cfg Config, log log.Logger) (*Notifier, error) {
	pub, err := queue.NewPublisher(cfg.Queue, log)
	if err != nil {
		return nil, errors.Wrap(err, "notifier connect to queue")
	}

	return newNotifier(cfg, log, pub), nil
}

func newNotifier(cfg Config, log log.Logger, pub queue.Publisher) *Notifier {
	if cfg.Channel == "" {
		cfg.Channel = defaultChannel
	}

	return &Notifier{
		cfg: cfg,
		log: log,
		pub: pub,
	}
}

// NotifyAvailable publishes one message per available result. Results
// without a file number or without an available status are skipped.
func (n *Notifier) NotifyAvailable(results []trustedemployee.StatusResult) error {
	available := lo.Filter(results, func(r trustedemployee.StatusResult, _ int) bool {
		return r.Available() && r.FileNo != ""
	})

	for _, r := range available {
		if err := n.pub.Pub(n.cfg.Channel, message.New(r.FileNo, r.Status)); err != nil {
			return errors.Wrapf(err, "notify report %s", r.FileNo)
		}

		level.Info(n.log).Log("msg", "notified report available", "file_no", r.FileNo)
	}

	return nil
}
