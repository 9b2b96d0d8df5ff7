// Package viscareply implements the typed reply decoders named in §4.3:
// ACK/COMPLETE/ERROR envelopes and the block/status inquiries (lens,
// image, pan-tilt position/max-speed/status).
package viscareply

import (
	"fmt"

	"viscabridge/internal/viscawire"
)

// Ack is a decoded ACK reply: which socket the camera assigned.
type Ack struct{ Socket int }

// CompleteEnvelope is a decoded COMPLETE reply before running any
// capability-specific parser over Data.
type CompleteEnvelope struct {
	Socket int
	Data   []byte
}

// ErrorEnvelope is a decoded ERROR reply.
type ErrorEnvelope struct {
	Socket int
	Code   byte
}

// ParseAck decodes "0x4X FF" (X = socket).
func ParseAck(socket int) Ack { return Ack{Socket: socket} }

// ParseCompleteEnvelope splits a COMPLETE reply's already-stripped payload
// (viscacmd.Parse leaves Payload = everything between QQ and terminator)
// into socket + data. Socket is carried on the Command already; this just
// documents the split for callers building CompleteEnvelope directly from
// wire bytes.
func ParseCompleteEnvelope(socket int, payload []byte) CompleteEnvelope {
	return CompleteEnvelope{Socket: socket, Data: payload}
}

// ParseErrorEnvelope decodes an ERROR reply's payload (a single error
// code byte, §4.3).
func ParseErrorEnvelope(socket int, payload []byte) (ErrorEnvelope, error) {
	if len(payload) < 1 {
		return ErrorEnvelope{}, fmt.Errorf("viscareply: error reply missing code byte")
	}
	return ErrorEnvelope{Socket: socket, Code: payload[0]}, nil
}

// --- Capability-specific COMPLETE-data parsers, registered as a
// Command's ReplyParser and invoked once its slot resolves (§4.4). ---

// PowerState decodes the power inquiry's single data byte.
type PowerState struct{ On bool }

func ParsePowerInquiry(data []byte) (any, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("viscareply: power inquiry reply too short")
	}
	return PowerState{On: data[0] == 0x02}, nil
}

// ZoomPos decodes the zoom-position inquiry (4 nibble-packed bytes).
type ZoomPos struct{ Position uint16 }

func ParseZoomPosInquiry(data []byte) (any, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("viscareply: zoom pos reply too short")
	}
	return ZoomPos{Position: viscawire.V2I(data[:4]...)}, nil
}

// FocusMode decodes the focus auto/manual inquiry.
type FocusMode struct{ Auto bool }

func ParseFocusModeInquiry(data []byte) (any, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("viscareply: focus mode reply too short")
	}
	return FocusMode{Auto: data[0] == 0x02}, nil
}

// FocusPos decodes the focus-position inquiry.
type FocusPos struct{ Position uint16 }

func ParseFocusPosInquiry(data []byte) (any, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("viscareply: focus pos reply too short")
	}
	return FocusPos{Position: viscawire.V2I(data[:4]...)}, nil
}

// WBMode decodes the white-balance mode inquiry.
type WBMode struct{ Mode byte }

func ParseWBModeInquiry(data []byte) (any, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("viscareply: wb mode reply too short")
	}
	return WBMode{Mode: data[0]}, nil
}

// GainLimit decodes the AGC gain-limit inquiry.
type GainLimit struct{ Level byte }

func ParseGainLimitInquiry(data []byte) (any, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("viscareply: gain limit reply too short")
	}
	return GainLimit{Level: data[0]}, nil
}

// Backlight decodes the backlight-compensation inquiry.
type Backlight struct{ On bool }

func ParseBacklightInquiry(data []byte) (any, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("viscareply: backlight reply too short")
	}
	return Backlight{On: data[0] == 0x02}, nil
}

// PTPosition decodes the 8-byte pan/tilt absolute-position inquiry.
type PTPosition struct{ X, Y int32 }

func ParsePTPosition(data []byte) (any, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("viscareply: pt position reply too short (%d bytes)", len(data))
	}
	return PTPosition{
		X: viscawire.V2SI(data[0:4]...),
		Y: viscawire.V2SI(data[4:8]...),
	}, nil
}

// PTMaxSpeed decodes the 2-byte pan/tilt max-speed inquiry.
type PTMaxSpeed struct{ XSpeed, YSpeed byte }

func ParsePTMaxSpeed(data []byte) (any, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("viscareply: pt max-speed reply too short")
	}
	return PTMaxSpeed{XSpeed: data[0], YSpeed: data[1]}, nil
}

// PTStatus decodes the 4-byte pan/tilt status inquiry, split into 8
// nibbles per §4.3's bit-layout constants.
type PTStatus struct {
	Initializing bool
	Ready        bool
	Fail         bool
	Moving       bool
	MoveDone     bool
	MoveFail     bool
	AtMaxLeft    bool
	AtMaxRight   bool
	AtMaxUp      bool
	AtMaxDown    bool
}

func ParsePTStatus(data []byte) (any, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("viscareply: pt status reply too short")
	}
	n := viscawire.SplitNibbles(data[:4])
	// n[0]=p n[1]=q n[2]=r n[3]=s n[4..7] further status nibbles.
	st := PTStatus{
		Initializing: n[0]&0x01 != 0,
		Ready:        n[1]&0x01 != 0,
		Fail:         n[1]&0x02 != 0,
		Moving:       n[2]&0x02 != 0,
		MoveDone:     n[2]&0x04 != 0,
		MoveFail:     n[2]&0x08 != 0,
	}
	if len(n) >= 8 {
		st.AtMaxLeft = n[4]&0x01 != 0
		st.AtMaxRight = n[4]&0x02 != 0
		st.AtMaxUp = n[5]&0x01 != 0
		st.AtMaxDown = n[5]&0x02 != 0
	}
	return st, nil
}

// LensBlock decodes the 13-byte lens-block inquiry.
type LensBlock struct {
	ZoomPos         uint16
	FocusNearLimit  uint16
	FocusPos        uint16
	AFMode          byte
	AFHighSens      bool
	DigitalZoomOn   bool
	AFOn            bool
	LowContrast     bool
	LoadingPreset   bool
	Focusing        bool
	Zooming         bool
}

func ParseLensBlock(data []byte) (any, error) {
	if len(data) < 13 {
		return nil, fmt.Errorf("viscareply: lens block reply too short (%d bytes)", len(data))
	}
	flags := data[12]
	return LensBlock{
		ZoomPos:        viscawire.V2I(data[0:4]...),
		FocusNearLimit: viscawire.V2I(data[4:6]...),
		FocusPos:       viscawire.V2I(data[6:10]...),
		AFMode:         (data[10] >> 3) & 0x03,
		AFHighSens:     data[10]&0x04 != 0,
		DigitalZoomOn:  data[10]&0x02 != 0,
		AFOn:           data[10]&0x01 != 0,
		LowContrast:    flags&0x01 != 0,
		LoadingPreset:  flags&0x02 != 0,
		Focusing:       flags&0x04 != 0,
		Zooming:        flags&0x08 != 0,
	}, nil
}

// ImageBlock decodes the 13-byte image-block inquiry.
type ImageBlock struct {
	GainR         byte
	GainB         byte
	WBMode        byte
	Gain          byte
	ExposureMode  byte
	ShutterPos    byte
	IrisPos       byte
	GainPos       byte
	Brightness    byte
	Exposure      byte
	HighRes       bool
	HighSens      bool
	WideD         bool
	Backlight     bool
	ExpComp       bool
}

func ParseImageBlock(data []byte) (any, error) {
	if len(data) < 13 {
		return nil, fmt.Errorf("viscareply: image block reply too short (%d bytes)", len(data))
	}
	flags := data[12]
	return ImageBlock{
		GainR:        data[0],
		GainB:        data[1],
		WBMode:       data[2],
		Gain:         data[3] & 0x0F,
		ExposureMode: data[4],
		ShutterPos:   data[5],
		IrisPos:      data[6],
		GainPos:      data[7],
		Brightness:   data[8],
		Exposure:     data[9],
		HighRes:      flags&0x01 != 0,
		HighSens:     flags&0x02 != 0,
		WideD:        flags&0x04 != 0,
		Backlight:    flags&0x08 != 0,
		ExpComp:      flags&0x10 != 0,
	}, nil
}
