package notifier

import (
	"github.com/craibuc/trustedemployee/pkg/queue"
	"github.com/craibuc/trustedemployee/pkg/queue/message"
	"github.com/craibuc/trustedemployee/pkg/trustedemployee"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Watcher consumes the availability notifications a Notifier publishes
// and hands each available file number to a download callback.
type Watcher struct {
	cfg Config
	log log.Logger

	sub queue.Subscriber
}

func NewWatcher(cfg Config, log log.Logger) (*Watcher, error) {
	sub, err := queue.NewSubscriber(cfg.Queue, log)
	if err != nil {
		return nil, errors.Wrap(err, "watcher connect to queue")
	}

	return newWatcher(cfg, log, sub), nil
}

func newWatcher(cfg Config, log log.Logger, sub queue.Subscriber) *Watcher {
	if cfg.Channel == "" {
		cfg.Channel = defaultChannel
	}

	return &Watcher{
		cfg: cfg,
		log: log,
		sub: sub,
	}
}

// Watch subscribes on the notification channel. Messages with any
// status other than available are logged and dropped.
func (w *Watcher) Watch(download func(fileNo string)) error {
	err := w.sub.Sub(w.cfg.Channel, func(msg *message.Message) {
		if msg.Status != trustedemployee.StatusAvailable {
			level.Debug(w.log).Log("msg", "skip notification", "file_no", msg.FileNo, "status", msg.Status)
			return
		}

		download(msg.FileNo)
	})
	if err != nil {
		return errors.Wrap(err, "watch notification channel")
	}

	return nil
}
