package usecase

import (
	"sync"
	"time"

	"property-client/internal/core/domain"
)

// DefaultMessageTTL - через сколько сообщение исчезает само
const DefaultMessageTTL = 4 * time.Second

// MessageRenderer - часть ViewPort, которая нужна Notifier
type MessageRenderer interface {
	RenderMessage(msg domain.Message)
}

// Notifier показывает временные сообщения и убирает их по таймеру.
// Новое сообщение отменяет таймер предыдущего; сработавший "старый" таймер
// ничего не стирает благодаря номеру поколения.
type Notifier struct {
	renderer MessageRenderer
	ttl      time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	current    domain.Message
}

func NewNotifier(renderer MessageRenderer, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &Notifier{renderer: renderer, ttl: ttl}
}

func (n *Notifier) Show(msg domain.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.generation++
	generation := n.generation

	n.current = msg
	n.renderer.RenderMessage(msg)
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(generation) })
}

// Current возвращает сообщение, которое сейчас на экране
func (n *Notifier) Current() domain.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Notifier) expire(generation uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if generation != n.generation {
		return
	}
	n.timer = nil
	n.current = domain.Message{}
	n.renderer.RenderMessage(domain.Message{})
}

// Close останавливает ожидающий таймер
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.generation++
}
