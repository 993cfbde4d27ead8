package message

import (
	"strings"

	"github.com/pkg/errors"
)

// Message announces a report status change, published on the queue as
// "{fileNo}_{status}". The file number must not contain an underscore;
// vendor file numbers are numeric, so the first underscore always
// terminates it. The status may contain underscores.
type Message struct {
	FileNo string
	Status string
}

func New(fileNo, status string) *Message {
	return &Message{
		FileNo: fileNo,
		Status: status,
	}
}

// Parse splits raw on the first underscore.
func Parse(raw string) (*Message, error) {
	tokens := strings.SplitN(raw, "_", 2)
	if len(tokens) != 2 || tokens[0] == "" || tokens[1] == "" {
		return nil, errors.New("invalid message raw input")
	}

	return &Message{
		FileNo: tokens[0],
		Status: tokens[1],
	}, nil
}

func (m *Message) String() string {
	return m.FileNo + "_" + m.Status
}
