// Package viscacam implements the per-camera state machine: the two
// command slots and one inquiry slot that model a physical VISCA camera's
// on-device execution buffer, the admission queues that back up behind
// them, and the ACK/COMPLETE/ERROR dispatch and stale-command GC that keep
// them consistent under packet loss (§3, §4.4).
//
// A Camera holds no lock. Per §5's concurrency model, exactly one
// goroutine — the owning Controller's event loop — ever calls into a given
// Camera; that is what makes the lock-free design safe, not anything in
// this package itself.
package viscacam

import (
	"fmt"
	"time"

	"viscabridge/internal/viscacmd"
	"viscabridge/internal/viscareply"
	"viscabridge/internal/viscawire"
	"viscabridge/internal/visgwerr"
)

// StaleAfter is the GC ceiling for both sent-awaiting-ack entries and
// occupied slots. §9 records that the source this was distilled from
// used two different ceilings that disagreed at the boundary; this
// package unifies both on a single constant per spec.md's resolution.
const StaleAfter = 1 * time.Second

// PumpInterval is the self-wake period used by a Controller to retry
// Pump() while queued work is waiting on slot availability (§4.4).
const PumpInterval = 20 * time.Millisecond

// Writer is the narrow surface a Camera needs from its transport: put a
// fully-serialized frame on the wire.
type Writer interface {
	Write(frame []byte) error
}

// Status is the camera's last-known pan/tilt/zoom/digital-zoom/effect
// snapshot (§3), updated opportunistically as inquiries complete.
type Status struct {
	Pan, Tilt     int32
	Zoom          uint16
	DigitalZoomOn bool
	Effect        byte
	UpdatedAt     time.Time
}

// Camera is one daisy-chain address's command-socket bookkeeping.
type Camera struct {
	Address int
	writer  Writer
	now     func() time.Time

	slots [3]*viscacmd.Command // 0=inquiry, 1 and 2 = command slots

	sentAwaitingAck []*viscacmd.Command
	cmdQueue        []*viscacmd.Command
	inqQueue        []*viscacmd.Command

	Status Status
}

// New constructs a Camera bound to a transport writer. now defaults to
// time.Now when nil, overridable in tests.
func New(address int, w Writer, now func() time.Time) *Camera {
	if now == nil {
		now = time.Now
	}
	return &Camera{Address: address, writer: w, now: now}
}

// commandReady reports whether a third command may be sent: the camera
// has exactly two command sockets, and a command occupies one from the
// moment it is written until its COMPLETE/ERROR resolves, whether or not
// the camera has ACKed it yet (§3, §8 P7).
func (c *Camera) commandReady() bool { return c.PendingCount() < 2 }
func (c *Camera) inquiryReady() bool { return c.slots[0] == nil }

// Submit admits a command to this camera per §4.4: the engine stamps
// source/recipient/broadcast/admittedAt, then either places it directly on
// the wire or enqueues it behind the relevant slot(s).
func (c *Camera) Submit(cmd *viscacmd.Command) error {
	cmd.Source = 0
	cmd.Recipient = c.Address
	cmd.Broadcast = false
	cmd.AdmittedAt = c.now()
	cmd.Status = viscacmd.New

	switch cmd.MsgType {
	case viscawire.Inquiry:
		if c.inquiryReady() {
			return c.dispatchInquiry(cmd)
		}
		c.inqQueue = append(c.inqQueue, cmd)
		return nil
	case viscawire.Command:
		if c.commandReady() {
			return c.dispatchCommand(cmd)
		}
		c.cmdQueue = append(c.cmdQueue, cmd)
		return nil
	default:
		// AddressSet/NetChange/Cancel/interface-level frames are written
		// immediately and not tracked in slots or queues.
		return c.writeNow(cmd)
	}
}

func (c *Camera) writeNow(cmd *viscacmd.Command) error {
	frame, err := cmd.Serialize()
	if err != nil {
		return err
	}
	return c.writer.Write(frame)
}

func (c *Camera) dispatchInquiry(cmd *viscacmd.Command) error {
	c.slots[0] = cmd
	if err := c.writeNow(cmd); err != nil {
		c.resolveError(0, visgwerr.New(visgwerr.Transport, err.Error()))
		return err
	}
	return nil
}

func (c *Camera) dispatchCommand(cmd *viscacmd.Command) error {
	c.sentAwaitingAck = append(c.sentAwaitingAck, cmd)
	if err := c.writeNow(cmd); err != nil {
		c.dropSentAwaitingAck(cmd, visgwerr.New(visgwerr.Transport, err.Error()))
		return err
	}
	return nil
}

// OnAck moves the head of sent_awaiting_ack into the ACKed slot (must be 1
// or 2; FIFO across a camera's command submissions guarantees the head is
// the correct correlation, §4.4/§8 P5).
func (c *Camera) OnAck(socket int) error {
	if socket != 1 && socket != 2 {
		return fmt.Errorf("viscacam: camera %d ACK on invalid socket %d", c.Address, socket)
	}
	if len(c.sentAwaitingAck) == 0 {
		return fmt.Errorf("viscacam: camera %d ACK on socket %d with nothing awaiting ack", c.Address, socket)
	}
	cmd := c.sentAwaitingAck[0]
	c.sentAwaitingAck = c.sentAwaitingAck[1:]
	cmd.Socket = socket
	cmd.Status = viscacmd.Acked
	c.slots[socket] = cmd
	if cmd.Callbacks.OnAck != nil {
		cmd.Callbacks.OnAck()
	}
	c.pump()
	return nil
}

// OnComplete resolves slot[socket] with the reply payload, running the
// command's reply parser if any, then clears the slot (§4.4).
func (c *Camera) OnComplete(socket int, data []byte) error {
	cmd := c.slots[socket]
	if cmd == nil {
		return fmt.Errorf("viscacam: camera %d COMPLETE on unbound socket %d discarded", c.Address, socket)
	}
	c.slots[socket] = nil
	cmd.Status = viscacmd.Completed

	var result any
	if cmd.ReplyParser != nil {
		parsed, err := cmd.ReplyParser(data)
		if err != nil {
			if cmd.Callbacks.OnError != nil {
				cmd.Callbacks.OnError(visgwerr.Wrap(visgwerr.UnknownReported, err))
			}
			c.pump()
			return err
		}
		result = parsed
	}
	c.applyStatus(cmd, result)
	if cmd.Callbacks.OnComplete != nil {
		cmd.Callbacks.OnComplete(result)
	}
	c.pump()
	return nil
}

// applyStatus updates the pan/tilt/zoom/digital-zoom/effect snapshot from a
// completed command or inquiry (§3: "updated opportunistically as
// inquiries complete"). Only the reply shapes that carry one of Status's
// fields are recognized; anything else leaves Status untouched.
func (c *Camera) applyStatus(cmd *viscacmd.Command, result any) {
	changed := true
	switch v := result.(type) {
	case viscareply.PTPosition:
		c.Status.Pan, c.Status.Tilt = v.X, v.Y
	case viscareply.ZoomPos:
		c.Status.Zoom = v.Position
	case viscareply.LensBlock:
		c.Status.Zoom = v.ZoomPos
		c.Status.DigitalZoomOn = v.DigitalZoomOn
	default:
		changed = false
	}
	// The effect command itself (there is no readable effect inquiry) is
	// the only source for the effect mode; capture it from the completed
	// command's own payload rather than the (empty) COMPLETE data.
	if cmd.Name == "effect" && len(cmd.Payload) > 0 {
		c.Status.Effect = cmd.Payload[len(cmd.Payload)-1]
		changed = true
	}
	if changed {
		c.Status.UpdatedAt = c.now()
	}
}

// OnError resolves slot[socket], falling back to the head of
// sent_awaiting_ack for buffer-full/syntax errors reported on socket 0
// (§4.4, §9).
func (c *Camera) OnError(socket int, code byte) error {
	vc := visgwerr.FromReported(code)
	if cmd := c.slots[socket]; cmd != nil {
		c.slots[socket] = nil
		c.resolveErrorCmd(cmd, visgwerr.New(vc, fmt.Sprintf("camera %d socket %d", c.Address, socket)))
		c.pump()
		return nil
	}
	if socket == 0 && (vc == visgwerr.BufferFull || vc == visgwerr.Syntax) && len(c.sentAwaitingAck) > 0 {
		cmd := c.sentAwaitingAck[0]
		c.sentAwaitingAck = c.sentAwaitingAck[1:]
		c.resolveErrorCmd(cmd, visgwerr.New(vc, fmt.Sprintf("camera %d head-of-queue", c.Address)))
		c.pump()
		return nil
	}
	return fmt.Errorf("viscacam: camera %d ERROR on unknown socket %d discarded", c.Address, socket)
}

func (c *Camera) resolveError(socket int, err *visgwerr.Error) {
	if cmd := c.slots[socket]; cmd != nil {
		c.slots[socket] = nil
		c.resolveErrorCmd(cmd, err)
	}
}

func (c *Camera) resolveErrorCmd(cmd *viscacmd.Command, err *visgwerr.Error) {
	cmd.Status = viscacmd.Errored
	if cmd.Callbacks.OnError != nil {
		cmd.Callbacks.OnError(err)
	}
}

func (c *Camera) dropSentAwaitingAck(target *viscacmd.Command, err *visgwerr.Error) {
	for i, cmd := range c.sentAwaitingAck {
		if cmd == target {
			c.sentAwaitingAck = append(c.sentAwaitingAck[:i], c.sentAwaitingAck[i+1:]...)
			break
		}
	}
	c.resolveErrorCmd(target, err)
}

// GCStale drops any sent-awaiting-ack entry or occupied slot older than
// StaleAfter, firing on_error(TIMEOUT) on each (§4.4, §8 P7).
func (c *Camera) GCStale() {
	now := c.now()
	var kept []*viscacmd.Command
	for _, cmd := range c.sentAwaitingAck {
		if now.Sub(cmd.AdmittedAt) > StaleAfter {
			c.resolveErrorCmd(cmd, visgwerr.New(visgwerr.Timeout, "stale in sent-awaiting-ack"))
			continue
		}
		kept = append(kept, cmd)
	}
	c.sentAwaitingAck = kept

	for i, cmd := range c.slots {
		if cmd == nil {
			continue
		}
		if now.Sub(cmd.AdmittedAt) > StaleAfter {
			c.slots[i] = nil
			c.resolveErrorCmd(cmd, visgwerr.New(visgwerr.Timeout, "stale in slot"))
		}
	}
	c.pump()
}

// pump is the internal transition hook (§4.4): after every state change,
// admit the next queued command/inquiry if a slot freed up. Returns true
// if pending work remains that still needs a slot, telling the caller
// whether to arm another PumpInterval self-wake.
func (c *Camera) pump() bool {
	if c.commandReady() && len(c.cmdQueue) > 0 {
		next := c.cmdQueue[0]
		c.cmdQueue = c.cmdQueue[1:]
		_ = c.dispatchCommand(next)
	}
	if c.inquiryReady() && len(c.inqQueue) > 0 {
		next := c.inqQueue[0]
		c.inqQueue = c.inqQueue[1:]
		_ = c.dispatchInquiry(next)
	}
	return len(c.cmdQueue) > 0 || len(c.inqQueue) > 0 || len(c.sentAwaitingAck) > 0
}

// Pump is the exported form of pump, used by a Controller's PumpInterval
// timer to retry admission when readiness depends on remote ACK timing.
func (c *Camera) Pump() bool { return c.pump() }

// IFClear resets every queue and slot, firing on_error(CANCELLED) on
// everything pending — the interface-clear-all broadcast's effect on this
// camera (§4.4 edge cases).
func (c *Camera) IFClear() {
	for _, cmd := range c.sentAwaitingAck {
		c.resolveErrorCmd(cmd, visgwerr.New(visgwerr.Cancelled, "if-clear"))
	}
	c.sentAwaitingAck = nil
	for i, cmd := range c.slots {
		if cmd != nil {
			c.slots[i] = nil
			c.resolveErrorCmd(cmd, visgwerr.New(visgwerr.Cancelled, "if-clear"))
		}
	}
	for _, cmd := range c.cmdQueue {
		c.resolveErrorCmd(cmd, visgwerr.New(visgwerr.Cancelled, "if-clear"))
	}
	c.cmdQueue = nil
	for _, cmd := range c.inqQueue {
		c.resolveErrorCmd(cmd, visgwerr.New(visgwerr.Cancelled, "if-clear"))
	}
	c.inqQueue = nil
}

// Shutdown flushes every pending command with CANCELLED, used when the
// owning Controller tears down (§5 resource lifecycle).
func (c *Camera) Shutdown() { c.IFClear() }

// PendingCount reports the slot-count invariant's left-hand side (§3, §8
// P7), useful for tests and diagnostics.
func (c *Camera) PendingCount() int {
	n := len(c.sentAwaitingAck)
	for _, s := range c.slots[1:] {
		if s != nil {
			n++
		}
	}
	return n
}
