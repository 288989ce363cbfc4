package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"property-client/internal/core/domain"
)

func TestNotifier_MessageExpires(t *testing.T) {
	view := &recordingView{}
	n := NewNotifier(view, 20*time.Millisecond)
	defer n.Close()

	n.Show(domain.SuccessMessage("saved"))
	assert.Equal(t, domain.SuccessMessage("saved"), n.Current())

	assert.Eventually(t, func() bool {
		return n.Current().IsZero() && view.lastMessage().IsZero()
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_NewMessageRestartsTimer(t *testing.T) {
	view := &recordingView{}
	n := NewNotifier(view, 150*time.Millisecond)
	defer n.Close()

	n.Show(domain.SuccessMessage("first"))
	time.Sleep(100 * time.Millisecond)
	n.Show(domain.ErrorMessage("second"))
	time.Sleep(100 * time.Millisecond)

	// таймер первого сообщения уже истек бы, но второе остается на экране
	assert.Equal(t, domain.ErrorMessage("second"), n.Current())

	assert.Eventually(t, func() bool { return n.Current().IsZero() }, time.Second, 5*time.Millisecond)
}

func TestNotifier_CloseCancelsPendingTimer(t *testing.T) {
	view := &recordingView{}
	n := NewNotifier(view, 10*time.Millisecond)

	n.Show(domain.SuccessMessage("kept"))
	n.Close()
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, domain.SuccessMessage("kept"), n.Current())
}

func TestNewNotifier_DefaultTTL(t *testing.T) {
	n := NewNotifier(&recordingView{}, 0)
	assert.Equal(t, DefaultMessageTTL, n.ttl)
}
