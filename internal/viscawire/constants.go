package viscawire

// Terminator ends every VISCA frame (§3).
const Terminator byte = 0xFF

// BroadcastHeader is the fixed header byte for a controller-originated
// broadcast (source 0, broadcast bit set): 0x88.
const BroadcastHeader byte = 0x88

// MsgType is the top nibble of the QQ byte (§3, §6).
type MsgType byte

const (
	Command     MsgType = 0x01
	Inquiry     MsgType = 0x09
	Cancel      MsgType = 0x20
	AddressSet  MsgType = 0x30
	NetChange   MsgType = 0x38
	Ack         MsgType = 0x40
	Complete    MsgType = 0x50
	ReplyError  MsgType = 0x60
)

// exactMsgTypes are QQ values that stand alone (socket implicitly 0)
// rather than being ORed with a nonzero socket nibble.
var exactMsgTypes = map[byte]MsgType{
	byte(Command):    Command,
	byte(Inquiry):    Inquiry,
	byte(AddressSet): AddressSet,
	byte(NetChange):  NetChange,
}

// SplitQQ decodes a QQ byte into its message type and socket. Matches
// Command/Inquiry/AddressSet/NetChange exactly first (socket 0); anything
// else splits into top nibble (msgType*0x10) and bottom nibble (socket).
func SplitQQ(qq byte) (MsgType, int) {
	if mt, ok := exactMsgTypes[qq]; ok {
		return mt, 0
	}
	return MsgType(qq & 0xF0), int(qq & 0x0F)
}

// MakeQQ is the inverse of SplitQQ.
func MakeQQ(mt MsgType, socket int) byte {
	switch mt {
	case Command, Inquiry, AddressSet, NetChange:
		return byte(mt)
	default:
		return byte(mt) | byte(socket&0x0F)
	}
}

// Datatype is the RR byte, the first payload byte of a Command/Inquiry
// whose datatype is nonzero (§4.2, §6).
type Datatype byte

const (
	Interface Datatype = 0x00
	Camera    Datatype = 0x04
	PanTilt   Datatype = 0x06
	Operation Datatype = 0x07
)

// ErrorCode is the byte a camera reports on an ERROR reply (§4.3, §7).
type ErrorCode byte

const (
	ErrSyntax        ErrorCode = 0x02
	ErrBufferFull    ErrorCode = 0x03
	ErrCancelled     ErrorCode = 0x04
	ErrInvalidSocket ErrorCode = 0x05
	ErrNotExecutable ErrorCode = 0x41
)

// Opcode tables. Each capability's command opcode is the byte sequence
// that follows the RR datatype byte; inquiries typically reuse the same
// tail opcode under datatype+Inquiry framing. Verified against the
// PTZOptics VISCA-over-IP reference (rev 1.0-5-18) and the Sony EVI-H100S
// command list, cross-checked against the opcode literals embedded in
// jeremywillden-visca-stick's sendVisca calls.
var (
	// Interface (RR=0x00)
	OpIFClear = []byte{0x01} // 8x 01 00 01 FF

	// Camera (RR=0x04) command opcodes
	OpPower           = []byte{0x00}
	OpZoomStop        = []byte{0x07, 0x00}
	OpZoomTele        = []byte{0x07, 0x02}
	OpZoomWide        = []byte{0x07, 0x03}
	OpZoomTeleVar     = byte(0x20) // OR with speed nibble 0-7
	OpZoomWideVar     = byte(0x30)
	OpZoomDirect      = []byte{0x47}
	OpDZoom           = []byte{0x06}
	OpFocusStop       = []byte{0x08, 0x00}
	OpFocusFar        = []byte{0x08, 0x02}
	OpFocusNear       = []byte{0x08, 0x03}
	OpFocusFarVar     = byte(0x20)
	OpFocusNearVar    = byte(0x30)
	OpFocusDirect     = []byte{0x48}
	OpFocusAuto       = []byte{0x38}
	OpFocusTrigger    = []byte{0x18, 0x01}
	OpFocusInfinity   = []byte{0x18, 0x02}
	OpFocusNearLimit  = []byte{0x28}
	OpFocusIRCorr     = []byte{0x11}
	OpFocusAFSens     = []byte{0x58}
	OpFocusAFInterval = []byte{0x27}
	OpZoomFocus       = []byte{0x47} // combo uses same opcode with 8-byte payload variant handled by builder
	OpWBMode          = []byte{0x35}
	OpWBTrigger       = []byte{0x19, 0x01}
	OpRGain           = []byte{0x03} // R gain step/reset
	OpBGain           = []byte{0x04} // B gain step/reset
	OpGainMaster      = []byte{0x0C} // master gain step/reset
	OpExposureMode    = []byte{0x39}
	OpExpCompEnable   = []byte{0x3E}
	OpExpCompDirect   = []byte{0x4E}
	OpBacklight       = []byte{0x33}
	OpShutterDirect   = []byte{0x4A}
	OpIrisDirect      = []byte{0x4B}
	OpApertureDirect  = []byte{0x42}
	OpRGainDirect     = []byte{0x43}
	OpBGainDirect     = []byte{0x44}
	OpGainDirect      = []byte{0x4C} // master gain direct
	OpGainLimit       = []byte{0x2C}
	OpHighRes         = []byte{0x52}
	OpHighSensitivity = []byte{0x5E}
	OpNoiseReduction  = []byte{0x53}
	OpGamma           = []byte{0x5B}
	OpEffect          = []byte{0x63}
	OpEffectDigital   = []byte{0x64}
	OpEffectLevel     = []byte{0x65}
	OpFreeze          = []byte{0x62}
	OpICRManual       = []byte{0x01, 0x01}
	OpICRAuto         = []byte{0x51}
	OpICRThreshold    = []byte{0x21}
	OpIDWrite         = []byte{0x22}
	OpChromaSuppress  = []byte{0x5F}
	OpColorGain       = []byte{0x49}
	OpColorHue        = []byte{0x4F}

	// Pan-Tilt (RR=0x06)
	OpPTDrive      = []byte{0x01}
	OpPTAbsolute   = []byte{0x02}
	OpPTRelative   = []byte{0x03}
	OpPTHome       = []byte{0x04}
	OpPTReset      = []byte{0x05}
	OpPTLimitSet   = []byte{0x07, 0x00}
	OpPTLimitClear = []byte{0x07, 0x01}

	// Operation (RR=0x07)
	OpPresetReset  = []byte{0x3F, 0x00}
	OpPresetSet    = []byte{0x3F, 0x01}
	OpPresetRecall = []byte{0x3F, 0x02}

	// Inquiries — Camera datatype, prefixed with the same opcode family
	// byte but framed under MsgType Inquiry per §4.2.
	InqPower          = []byte{0x00}
	InqZoomPos        = []byte{0x47}
	InqFocusMode      = []byte{0x38}
	InqFocusPos       = []byte{0x48}
	InqFocusNearLimit = []byte{0x28}
	InqWBMode         = []byte{0x35}
	InqRGain          = []byte{0x43}
	InqBGain          = []byte{0x44}
	InqExposureMode   = []byte{0x39}
	InqShutterPos     = []byte{0x4A}
	InqIrisPos        = []byte{0x4B}
	InqGainPos        = []byte{0x4C}
	InqGainLimit      = []byte{0x2C}
	InqBacklight      = []byte{0x33}
	InqExpComp        = []byte{0x4E}
	InqHighRes        = []byte{0x52}
	InqHighSens       = []byte{0x5E}
	InqNoiseReduction = []byte{0x53}
	InqGamma          = []byte{0x5B}
	InqEffect         = []byte{0x63}
	InqEffectDigital  = []byte{0x64}
	InqEffectLevel    = []byte{0x65}
	InqFreeze         = []byte{0x62}
	InqICRMode        = []byte{0x01, 0x01}
	InqChromaSuppress = []byte{0x5F}
	InqColorGain      = []byte{0x49}
	InqColorHue       = []byte{0x4F}
	InqLensBlock      = []byte{0x7E, 0x7E, 0x00} // datatype-prefixed inquiry with sub-index
	InqImageBlock     = []byte{0x7E, 0x7E, 0x01}
	InqVideoNow       = []byte{0x07} // Interface datatype
	InqVideoNext      = []byte{0x27}

	// Pan-Tilt inquiries
	InqPTPos      = []byte{0x12}
	InqPTMaxSpeed = []byte{0x11}
	InqPTStatus   = []byte{0x10}
)
