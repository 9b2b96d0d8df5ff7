// Package hub is the automation-command fan-out queue behind the HTTP
// façade's long-poll endpoint and the input bridge: a scheduler or
// tour-scripting client enqueues named camera actions here, then long-polls
// GET /api/v1/cameras/{addr}/poll to drain and execute them against the
// same JSON→viscacmd dispatch table the direct POST /commands endpoint
// uses. The hub never calls into the controller itself — it only queues.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Command is one automation-queued action for a camera. Type names a
// viscacmd builder ("power", "zoom-direct", "preset-recall", ...);
// Payload carries its JSON-encoded arguments, decoded by whatever
// dispatches the queue.
type Command struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewCommand stamps a fresh automation command with a UUID so callers can
// correlate its eventual completion in the activity feed.
func NewCommand(cmdType string, payload json.RawMessage) Command {
	return Command{ID: uuid.NewString(), Type: cmdType, Payload: payload}
}

type cameraQueue struct {
	q    chan Command
	last time.Time
}

// Hub is a set of per-camera-address bounded queues.
type Hub struct {
	mu   sync.RWMutex
	byAddr map[int]*cameraQueue
}

func New() *Hub { return &Hub{byAddr: map[int]*cameraQueue{}} }

func (h *Hub) get(address int) *cameraQueue {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.byAddr[address]
	if !ok {
		s = &cameraQueue{q: make(chan Command, 64)}
		h.byAddr[address] = s
	}
	s.last = time.Now()
	return s
}

// Enqueue adds c to address's queue, dropping it if the queue is full
// (an automation client that never drains its queue shouldn't back up the
// gateway).
func (h *Hub) Enqueue(address int, c Command) {
	s := h.get(address)
	select {
	case s.q <- c:
	default:
	}
}

// LongPoll blocks until at least one command is queued for address (or
// ctx is cancelled), then drains up to 32 at once.
func (h *Hub) LongPoll(ctx context.Context, address int) []Command {
	s := h.get(address)
	select {
	case c := <-s.q:
		cmds := []Command{c}
		for i := 0; i < 31; i++ {
			select {
			case c2 := <-s.q:
				cmds = append(cmds, c2)
			default:
				return cmds
			}
		}
		return cmds
	case <-ctx.Done():
		return nil
	}
}

func (h *Hub) LastSeen(address int) time.Time { return h.get(address).last }
