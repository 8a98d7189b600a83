// Package notify shows identification messages to the player.
package notify

import (
	"log/slog"
	"sync"

	"github.com/udisondev/slays/internal/model"
)

// DefaultCapacity is the number of messages a Journal keeps.
const DefaultCapacity = 64

// Journal хранит последние сообщения игрока и дублирует их в лог.
type Journal struct {
	mu       sync.Mutex
	messages []string
	capacity int
	total    int
}

// NewJournal creates a Journal holding up to capacity messages.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{capacity: capacity}
}

// NoticeEgo marks the item's ego as noticed.
func (j *Journal) NoticeEgo(item *model.Item) {
	if item.Ego() == nil || item.EgoKnown() {
		return
	}
	item.SetEgoKnown()
	slog.Debug("ego noticed", "item", item.ID(), "ego", item.Ego().Name)
}

// Describe returns the base name of the item.
func (j *Journal) Describe(item *model.Item) string {
	return item.Name()
}

// Message records text and logs it.
func (j *Journal) Message(text string) {
	j.mu.Lock()
	if len(j.messages) == j.capacity {
		copy(j.messages, j.messages[1:])
		j.messages = j.messages[:len(j.messages)-1]
	}
	j.messages = append(j.messages, text)
	j.total++
	j.mu.Unlock()

	slog.Info("message", "text", text)
}

// Messages returns a copy of the recorded messages, oldest first.
func (j *Journal) Messages() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.messages))
	copy(out, j.messages)
	return out
}

// Total returns how many messages were ever recorded, including dropped ones.
func (j *Journal) Total() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.total
}

// Since returns the messages recorded after Total returned n, oldest first.
// Messages already dropped from the journal are lost.
func (j *Journal) Since(n int) []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	newer := min(max(j.total-n, 0), len(j.messages))
	out := make([]string, newer)
	copy(out, j.messages[len(j.messages)-newer:])
	return out
}
