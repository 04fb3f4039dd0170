package registry

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotAlive is returned by Send when the target proc has shut down.
var ErrNotAlive = errors.New("proc is not alive")

// DefaultMailboxDepth is the mailbox buffer used by Spawn.
const DefaultMailboxDepth = 64

// Proc is a mailbox-owning process. Its goroutine (if spawned) drains the
// mailbox until Close.
type Proc struct {
	id        uuid.UUID
	mailbox   chan any
	done      chan struct{}
	closeOnce sync.Once
}

// NewProc creates a proc with the given mailbox depth. The caller owns the
// receive side; use Spawn to attach a handler goroutine instead.
func NewProc(depth int) *Proc {
	if depth < 0 {
		depth = 0
	}
	return &Proc{
		id:      uuid.New(),
		mailbox: make(chan any, depth),
		done:    make(chan struct{}),
	}
}

// Spawn creates a proc and starts a goroutine that invokes handler for
// every message until the proc is closed.
func Spawn(depth int, handler func(msg any)) *Proc {
	p := NewProc(depth)
	go func() {
		for {
			select {
			case <-p.done:
				return
			case msg := <-p.mailbox:
				handler(msg)
			}
		}
	}()
	return p
}

// ID returns the proc's unique identifier.
func (p *Proc) ID() uuid.UUID {
	return p.id
}

// Alive reports whether the proc still accepts messages.
func (p *Proc) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Send delivers msg to the mailbox, blocking until the proc accepts it.
// It returns ErrNotAlive if the proc has shut down before or while the
// message is waiting for mailbox space.
func (p *Proc) Send(msg any) error {
	select {
	case <-p.done:
		return ErrNotAlive
	default:
	}
	select {
	case p.mailbox <- msg:
		return nil
	case <-p.done:
		return ErrNotAlive
	}
}

// Receive takes the next message from the mailbox. It returns false when
// the proc has shut down and the mailbox is empty.
func (p *Proc) Receive() (any, bool) {
	select {
	case msg := <-p.mailbox:
		return msg, true
	case <-p.done:
		// Drain what was accepted before shutdown.
		select {
		case msg := <-p.mailbox:
			return msg, true
		default:
			return nil, false
		}
	}
}

// Close shuts the proc down. Idempotent. Messages already accepted into
// the mailbox are not returned to senders.
func (p *Proc) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}
