// Package viscacmd implements the VISCA Command value object: header
// fields, opcode, payload, reply parser and completion callbacks, and its
// serialization to/from a raw wire frame (§3, §4.2).
package viscacmd

import (
	"fmt"
	"time"

	"viscabridge/internal/viscawire"
)

// Status is a Command's lifecycle state (§3).
type Status int

const (
	New Status = iota
	Acked
	Completed
	Errored
)

func (s Status) String() string {
	switch s {
	case New:
		return "new"
	case Acked:
		return "acked"
	case Completed:
		return "completed"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// ReplyParser turns a resolved COMPLETE payload into a typed value. Absent
// for commands that carry no completion data.
type ReplyParser func(payload []byte) (any, error)

// Callbacks are invoked at most once, on the terminal status transition.
type Callbacks struct {
	OnAck      func()
	OnComplete func(result any)
	OnError    func(err error)
}

// Command is one VISCA message: a command, an inquiry, or one of the
// control frames (AddressSet/NetChange/Cancel/interface-clear).
type Command struct {
	Source    int
	Recipient int // -1 denotes broadcast
	Broadcast bool
	MsgType   viscawire.MsgType
	Socket    int // bottom nibble of QQ; 0 for new, 1-2 once camera-assigned
	Datatype  viscawire.Datatype
	HasType   bool // whether Datatype byte is emitted at all
	Payload   []byte

	Name        string // human-readable capability name, for logging
	ReplyParser ReplyParser
	Callbacks   Callbacks

	Status      Status
	AdmittedAt  time.Time
}

// Validate checks the invariants from §3.
func (c *Command) Validate() error {
	if c.Broadcast {
		if c.Source != 0 {
			return fmt.Errorf("viscacmd: broadcast command must have source 0, got %d", c.Source)
		}
	} else if c.Recipient < 0 || c.Recipient > 7 {
		return fmt.Errorf("viscacmd: recipient %d out of range [0,7]", c.Recipient)
	}
	if c.Source < 0 || c.Source > 7 {
		return fmt.Errorf("viscacmd: source %d out of range [0,7]", c.Source)
	}
	switch c.MsgType {
	case viscawire.Command, viscawire.Inquiry, viscawire.Cancel,
		viscawire.AddressSet, viscawire.NetChange,
		viscawire.Ack, viscawire.Complete, viscawire.ReplyError:
	default:
		return fmt.Errorf("viscacmd: unknown message type %#x", byte(c.MsgType))
	}
	return nil
}

// Serialize renders the Command as a wire frame: header, QQ, optional
// datatype byte, payload, terminator (§4.2). The result never contains an
// interior 0xFF because all multi-byte payload fields are nibble-packed by
// viscawire before being placed into Payload.
func (c *Command) Serialize() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	recv := c.Recipient
	if c.Broadcast {
		recv = 0
	}
	frame := make([]byte, 0, 3+len(c.Payload))
	frame = append(frame, viscawire.Header(c.Source, recv, c.Broadcast))
	frame = append(frame, viscawire.MakeQQ(c.MsgType, c.Socket))
	if c.HasType {
		frame = append(frame, byte(c.Datatype))
	}
	frame = append(frame, c.Payload...)
	frame = append(frame, viscawire.Terminator)
	return frame, nil
}

// Parse decodes a raw wire frame into a Command (§4.2). The returned
// Command carries no ReplyParser/Callbacks — those are only known to the
// side that submitted the original request; Parse is used for inbound
// frames (replies, bring-up control frames) where the caller correlates
// by (source, socket) instead.
func Parse(frame []byte) (*Command, error) {
	if len(frame) < 3 {
		return nil, fmt.Errorf("viscacmd: frame too short (%d bytes)", len(frame))
	}
	if frame[len(frame)-1] != viscawire.Terminator {
		return nil, fmt.Errorf("viscacmd: frame missing terminator")
	}
	if frame[0]&0x80 == 0 {
		return nil, fmt.Errorf("viscacmd: header byte %#x missing bit7", frame[0])
	}
	h := viscawire.ParseHeader(frame[0])
	mt, socket := viscawire.SplitQQ(frame[1])

	body := frame[2 : len(frame)-1]
	c := &Command{
		Source:    h.Source,
		Recipient: h.Recipient,
		Broadcast: h.Broadcast,
		MsgType:   mt,
		Socket:    socket,
		Status:    New,
	}
	if len(body) >= 1 {
		// Only Command/Inquiry frames carry a leading RR datatype byte
		// (§4.2, §6): AddressSet/NetChange have no datatype concept at
		// all, and reply frames (ACK/COMPLETE/ERROR) carry raw data
		// whose layout is socket/msgtype-specific and handled by
		// viscareply. Applying the "len>=2 => datatype" rule to those
		// too would silently corrupt multi-byte COMPLETE payloads such
		// as the lens/image blocks.
		switch mt {
		case viscawire.Command, viscawire.Inquiry:
			if len(body) >= 2 {
				c.HasType = true
				c.Datatype = viscawire.Datatype(body[0])
				c.Payload = append([]byte(nil), body[1:]...)
			} else {
				c.Payload = append([]byte(nil), body...)
			}
		default:
			c.Payload = append([]byte(nil), body...)
		}
	}
	return c, nil
}
