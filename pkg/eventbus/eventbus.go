package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Event struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// ReportEvent notifies badge and dashboard consumers that a damage report was
// filed or changed status.
type ReportEvent struct {
	ReportID string `json:"report_id"`
	ItemID   string `json:"item_id"`
	Status   string `json:"status"`
	Severity string `json:"severity,omitempty"`
}

type AssignmentEvent struct {
	EmployeeID string `json:"employee_id"`
	RoomID     string `json:"room_id,omitempty"`
	Action     string `json:"action"` // assigned or cleared
}

const (
	ChannelReport     = "estate:events:report"
	ChannelAssignment = "estate:events:assignment"
)

type Bus struct {
	client redis.UniversalClient
}

func NewBus(client redis.UniversalClient) *Bus {
	return &Bus{client: client}
}

func NewEvent(eventType string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}, nil
}

func (b *Bus) Publish(ctx context.Context, channel string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channel, payload).Err()
}

func (b *Bus) Subscribe(ctx context.Context, channels ...string) <-chan *Event {
	sub := b.client.Subscribe(ctx, channels...)
	ch := make(chan *Event, 100)

	go func() {
		defer close(ch)
		for msg := range sub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			ch <- &event
		}
	}()

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()

	return ch
}
