// Package controller owns the camera table and drives the single event
// loop described in §5: every transport's inbound frame, every outward
// Submit call, and the periodic GC/pump ticks are all serialized onto one
// goroutine so that no viscacam.Camera is ever touched from two goroutines
// at once. Callers (the HTTP façade, and the daemon's wiring of transports
// and passthrough taps) talk to the Controller only through its
// channel-backed outward API.
package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"viscabridge/internal/events"
	"viscabridge/internal/transport"
	"viscabridge/internal/viscacam"
	"viscabridge/internal/viscacmd"
	"viscabridge/internal/viscareply"
	"viscabridge/internal/viscawire"
)

// CameraLink is a camera table entry: its state machine plus the
// transport it's reachable over. Cameras hot-plugged in off an
// unrecognized source address (§4.6 edge case) share the bus's Conn but
// get their own Camera and address.
type CameraLink struct {
	Camera *viscacam.Camera
	Conn   transport.Conn
}

// Controller is the sole owner of every Camera in the table. Construct
// with New, register transports with AddBus/AddIPCamera, then call Run in
// its own goroutine.
type Controller struct {
	cameras  map[int]*CameraLink
	busConn  transport.Conn // shared serial bus, nil if none configured
	taps     map[int][]func(frame []byte)
	activity events.Buffer // nil-safe: nil skips push, see (*Controller).note

	eventQ chan func()
	done   chan struct{}
}

// New constructs an empty Controller. Nothing is wired to a transport
// until AddBus/AddIPCamera is called. activity may be nil to run without
// an event feed.
func New(activity events.Buffer) *Controller {
	return &Controller{
		cameras:  make(map[int]*CameraLink),
		taps:     make(map[int][]func(frame []byte)),
		activity: activity,
		eventQ:   make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

func (ctl *Controller) note(camera int, topic string, payload string) {
	if ctl.activity == nil {
		return
	}
	ctl.activity.Push(events.Event{Camera: camera, Topic: topic, Payload: []byte(payload), Time: time.Now()})
}

// RegisterTap subscribes fn to every raw inbound frame reported by
// address, in addition to the engine's own ACK/COMPLETE/ERROR handling.
// The passthrough listener uses this to mirror camera replies back to
// whichever external client is currently bridged to that address, without
// taking over the transport's single reader slot.
func (ctl *Controller) RegisterTap(address int, fn func(frame []byte)) {
	ctl.enqueue(func() {
		ctl.taps[address] = append(ctl.taps[address], fn)
	})
}

// AddBus registers the shared daisy-chain serial connection. Inbound
// frames from it are routed to whichever camera address the frame's
// header names; addresses not yet in the table are created on first sight
// (§4.6's hot-plug behavior).
func (ctl *Controller) AddBus(conn transport.Conn) {
	ctl.busConn = conn
}

// AddIPCamera registers a VISCA-over-IP camera at a fixed address: unlike
// the serial bus, each IP camera gets its own socket for outbound frames.
// Inbound frames are still routed by their header's source address (see
// dispatch), not by the socket they arrived on, so this entry receives a
// reply only when the camera's reply header names address as its source.
func (ctl *Controller) AddIPCamera(address int, conn transport.Conn) {
	ctl.enqueue(func() {
		ctl.cameras[address] = &CameraLink{
			Camera: viscacam.New(address, conn, nil),
			Conn:   conn,
		}
	})
}

func (ctl *Controller) enqueue(fn func()) {
	select {
	case ctl.eventQ <- fn:
	case <-ctl.done:
	}
}

// linkFor returns the camera at address, creating one bound to the shared
// bus if it isn't already in the table (§4.6 hot-plug: any daisy-chain
// address can announce itself unsolicited after a NetChange).
func (ctl *Controller) linkFor(address int) *CameraLink {
	if link, ok := ctl.cameras[address]; ok {
		return link
	}
	if ctl.busConn == nil {
		return nil
	}
	link := &CameraLink{
		Camera: viscacam.New(address, ctl.busConn, nil),
		Conn:   ctl.busConn,
	}
	ctl.cameras[address] = link
	return link
}

// OnFrame is the transport-facing entry point: register this as a
// transport's FrameHandler, for an IP camera's dedicated socket and the
// shared serial bus alike; dispatch routes each frame by the source address
// in its header. It always
// enqueues onto the event loop rather than touching camera state inline,
// preserving the single-writer invariant even though frames arrive from
// transport goroutines.
func (ctl *Controller) OnFrame(frame []byte) {
	ctl.enqueue(func() { ctl.dispatch(frame) })
}

func (ctl *Controller) dispatch(frame []byte) {
	cmd, err := viscacmd.Parse(frame)
	if err != nil {
		log.Printf("[controller] dropping malformed frame % X: %v", frame, err)
		return
	}
	switch cmd.MsgType {
	case viscawire.NetChange:
		log.Printf("[controller] NetChange announced by address %d, re-running bring-up", cmd.Source)
		ctl.note(-1, "bringup/netchange", fmt.Sprintf("camera %d announced a topology change", cmd.Source))
		go func() {
			if err := ctl.BringUp(context.Background()); err != nil {
				log.Printf("[controller] bring-up after NetChange failed: %v", err)
			}
		}()
		return
	case viscawire.AddressSet:
		ctl.onAddressSetReply(cmd.Payload)
		return
	}

	link := ctl.linkFor(cmd.Source)
	if link == nil {
		log.Printf("[controller] frame from unknown source %d with no shared bus configured, dropping", cmd.Source)
		return
	}

	for _, tap := range ctl.taps[cmd.Source] {
		tap(frame)
	}

	switch cmd.MsgType {
	case viscawire.Command:
		// The camera's own echo of our IF_CLEAR broadcast arrives as an
		// inbound COMMAND frame; per §4.6 that clears every camera in the
		// table, not just the one that echoed it.
		log.Printf("[controller] camera %d: if-clear echoed, clearing all cameras", cmd.Source)
		for _, l := range ctl.cameras {
			l.Camera.IFClear()
		}
		ctl.note(-1, "bringup/ifclear", fmt.Sprintf("if-clear echoed by camera %d", cmd.Source))
	case viscawire.Ack:
		if err := link.Camera.OnAck(cmd.Socket); err != nil {
			log.Printf("[controller] camera %d: %v", cmd.Source, err)
			return
		}
		ctl.note(cmd.Source, "camera/ack", fmt.Sprintf("socket %d", cmd.Socket))
	case viscawire.Complete:
		if err := link.Camera.OnComplete(cmd.Socket, cmd.Payload); err != nil {
			log.Printf("[controller] camera %d: %v", cmd.Source, err)
			return
		}
		ctl.note(cmd.Source, "camera/complete", fmt.Sprintf("socket %d", cmd.Socket))
	case viscawire.ReplyError:
		env, err := viscareply.ParseErrorEnvelope(cmd.Socket, cmd.Payload)
		if err != nil {
			log.Printf("[controller] camera %d: malformed error reply: %v", cmd.Source, err)
			return
		}
		if err := link.Camera.OnError(env.Socket, env.Code); err != nil {
			log.Printf("[controller] camera %d: %v", cmd.Source, err)
			return
		}
		ctl.note(cmd.Source, "camera/error", fmt.Sprintf("socket %d code %#x", env.Socket, env.Code))
	default:
		log.Printf("[controller] camera %d: unexpected inbound message type %#x, dropping", cmd.Source, byte(cmd.MsgType))
	}
}

// onAddressSetReply handles the last camera in the chain answering our
// AddressSet broadcast with its own AddressSet reply carrying the final
// camera count in payload[0] = N+1 (§4.6). It resets the table and creates
// N Camera records at addresses 1..N bound to the shared bus, leaving any
// IP camera already occupying one of those addresses untouched. Runs on the
// event loop, so it may mutate ctl.cameras directly.
func (ctl *Controller) onAddressSetReply(payload []byte) {
	if len(payload) < 1 || payload[0] == 0 {
		log.Printf("[controller] address-set reply: malformed payload % X, ignoring", payload)
		return
	}
	n := int(payload[0]) - 1

	kept := make(map[int]*CameraLink, len(ctl.cameras))
	for addr, link := range ctl.cameras {
		if link.Conn != ctl.busConn {
			kept[addr] = link
			continue
		}
		link.Camera.Shutdown()
	}
	for addr := 1; addr <= n; addr++ {
		if _, occupied := kept[addr]; occupied {
			log.Printf("[controller] address-set: address %d already bound to a non-bus camera, skipping", addr)
			continue
		}
		kept[addr] = &CameraLink{
			Camera: viscacam.New(addr, ctl.busConn, nil),
			Conn:   ctl.busConn,
		}
	}
	ctl.cameras = kept

	log.Printf("[controller] address-set reply: chain reports %d cameras, table reset", n)
	ctl.note(-1, "bringup/addressset", fmt.Sprintf("%d cameras enumerated", n))
}

// SendToCamera submits a command to one camera's queue.
func (ctl *Controller) SendToCamera(address int, cmd *viscacmd.Command) error {
	errCh := make(chan error, 1)
	ctl.enqueue(func() {
		link := ctl.linkFor(address)
		if link == nil {
			errCh <- fmt.Errorf("controller: no camera at address %d", address)
			return
		}
		errCh <- link.Camera.Submit(cmd)
	})
	select {
	case err := <-errCh:
		return err
	case <-ctl.done:
		return fmt.Errorf("controller: shut down")
	}
}

// SendBroadcast writes a broadcast frame (IF_Clear, AddressSet) directly
// to the shared bus, bypassing per-camera admission — broadcast frames
// are never queued or ACKed per-socket (§4.4).
func (ctl *Controller) SendBroadcast(cmd *viscacmd.Command) error {
	errCh := make(chan error, 1)
	ctl.enqueue(func() {
		if ctl.busConn == nil {
			errCh <- fmt.Errorf("controller: no shared bus configured for broadcast")
			return
		}
		frame, err := cmd.Serialize()
		if err != nil {
			errCh <- err
			return
		}
		errCh <- ctl.busConn.Write(frame)
	})
	select {
	case err := <-errCh:
		return err
	case <-ctl.done:
		return fmt.Errorf("controller: shut down")
	}
}

// BringUp runs the daisy-chain address-assignment handshake (§4.6):
// broadcast AddressSet and give the chain 300ms to self-number and answer
// (dispatch's AddressSet case does the actual table reset as each reply
// lands). Once settled, broadcast Interface-Clear and enqueue the
// inquire-all suite on every camera now in the table to refresh its status.
func (ctl *Controller) BringUp(ctx context.Context) error {
	if err := ctl.SendBroadcast(viscacmd.CmdAddressSet()); err != nil {
		return fmt.Errorf("controller: bring-up: %w", err)
	}
	select {
	case <-time.After(300 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := ctl.SendBroadcast(viscacmd.CmdIFClear()); err != nil {
		return fmt.Errorf("controller: bring-up: if-clear: %w", err)
	}

	for _, addr := range ctl.ListAddresses() {
		for _, inq := range inquireAllSuite(addr) {
			if err := ctl.SendToCamera(addr, inq); err != nil {
				log.Printf("[controller] bring-up: camera %d: inquire-all: %v", addr, err)
			}
		}
	}
	return nil
}

// inquireAllSuite is the set of readable-capability inquiries refreshed on
// every camera after bring-up (§4.6, §8 scenario 2): power, pan/tilt
// position, zoom position, and the lens block (source of the digital-zoom
// flag).
func inquireAllSuite(address int) []*viscacmd.Command {
	return []*viscacmd.Command{
		viscacmd.InqPowerCmd(address),
		viscacmd.InqPTPosCmd(address),
		viscacmd.InqZoomPosCmd(address),
		viscacmd.InqLensBlockCmd(address),
	}
}

// ListAddresses returns every camera address currently in the table.
func (ctl *Controller) ListAddresses() []int {
	resultCh := make(chan []int, 1)
	ctl.enqueue(func() {
		addrs := make([]int, 0, len(ctl.cameras))
		for addr := range ctl.cameras {
			addrs = append(addrs, addr)
		}
		resultCh <- addrs
	})
	select {
	case addrs := <-resultCh:
		return addrs
	case <-ctl.done:
		return nil
	}
}

// PendingCount reports one camera's in-flight command count, for
// diagnostics and the HTTP façade's health endpoint.
func (ctl *Controller) PendingCount(address int) (int, bool) {
	resultCh := make(chan struct {
		n  int
		ok bool
	}, 1)
	ctl.enqueue(func() {
		link, ok := ctl.cameras[address]
		if !ok {
			resultCh <- struct {
				n  int
				ok bool
			}{0, false}
			return
		}
		resultCh <- struct {
			n  int
			ok bool
		}{link.Camera.PendingCount(), true}
	})
	select {
	case r := <-resultCh:
		return r.n, r.ok
	case <-ctl.done:
		return 0, false
	}
}

// Run drives the event loop until ctx is cancelled: it services the
// outward-API/frame-dispatch queue, sweeps every camera for stale commands
// on a StaleAfter/2 tick, and re-pumps queued admissions on every
// PumpInterval tick. This is
// the one goroutine that ever calls into a viscacam.Camera.
func (ctl *Controller) Run(ctx context.Context) {
	gc := time.NewTicker(viscacam.StaleAfter / 2)
	pump := time.NewTicker(viscacam.PumpInterval)
	defer gc.Stop()
	defer pump.Stop()
	defer close(ctl.done)

	for {
		select {
		case <-ctx.Done():
			for _, link := range ctl.cameras {
				link.Camera.Shutdown()
			}
			return
		case fn := <-ctl.eventQ:
			fn()
		case <-gc.C:
			for _, link := range ctl.cameras {
				link.Camera.GCStale()
			}
		case <-pump.C:
			for _, link := range ctl.cameras {
				link.Camera.Pump()
			}
		}
	}
}
