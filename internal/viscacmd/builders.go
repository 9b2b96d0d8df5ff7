package viscacmd

import (
	"viscabridge/internal/viscareply"
	"viscabridge/internal/viscawire"
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func onOff(on bool) byte {
	if on {
		return 0x02
	}
	return 0x03
}

func newCommand(recipient int, dt viscawire.Datatype, payload []byte, name string) *Command {
	return &Command{
		Source:    0,
		Recipient: recipient,
		MsgType:   viscawire.Command,
		Datatype:  dt,
		HasType:   true,
		Payload:   payload,
		Name:      name,
		Status:    New,
	}
}

func newInquiry(recipient int, dt viscawire.Datatype, payload []byte, name string, parser ReplyParser) *Command {
	return &Command{
		Source:      0,
		Recipient:   recipient,
		MsgType:     viscawire.Inquiry,
		Datatype:    dt,
		HasType:     true,
		Payload:     payload,
		Name:        name,
		ReplyParser: parser,
		Status:      New,
	}
}

func wrap(f func([]byte) (any, error)) ReplyParser { return ReplyParser(f) }

// --- Interface -------------------------------------------------------

// CmdIFClear broadcasts an interface clear-all, resetting every camera's
// slots and queues (§4.4 edge cases).
func CmdIFClear() *Command {
	c := newCommand(0, viscawire.Interface, append([]byte{}, viscawire.OpIFClear...), "if-clear")
	c.Broadcast = true
	return c
}

// CmdAddressSet is the bring-up broadcast [0x88, 0x30, 0x01, 0xFF] (§4.6).
func CmdAddressSet() *Command {
	return &Command{
		Source:    0,
		Broadcast: true,
		MsgType:   viscawire.AddressSet,
		Payload:   []byte{0x01},
		Name:      "address-set",
		Status:    New,
	}
}

// CmdCancel targets a specific command slot (1 or 2) on recipient,
// prompting the camera to reply with ERROR 0x04 on that slot (§4.4).
func CmdCancel(recipient, socket int) *Command {
	return &Command{
		Source:    0,
		Recipient: recipient,
		MsgType:   viscawire.Cancel,
		Socket:    socket,
		Name:      "cancel",
		Status:    New,
	}
}

// --- Power -------------------------------------------------------------

func CmdPower(recipient int, on bool) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpPower...), onOff(on)), "power")
}

// CmdPowerAutoOff sets the auto-power-off timeout in minutes (0 disables).
func CmdPowerAutoOff(recipient int, minutes uint16) *Command {
	v := viscawire.I2V(minutes)
	payload := append([]byte{0x40}, v[:]...)
	return newCommand(recipient, viscawire.Camera, payload, "power-auto-off")
}

// --- Presets -------------------------------------------------------------

// CmdPresetReset/Set/Recall accept index 0..127; VISCA delegates actual
// vendor-range enforcement to the camera (§4.2, §9 open question).
func CmdPresetReset(recipient, index int) *Command {
	index = clamp(index, 0, 127)
	payload := append(append([]byte{}, viscawire.OpPresetReset...), byte(index))
	return newCommand(recipient, viscawire.Operation, payload, "preset-reset")
}

func CmdPresetSet(recipient, index int) *Command {
	index = clamp(index, 0, 127)
	payload := append(append([]byte{}, viscawire.OpPresetSet...), byte(index))
	return newCommand(recipient, viscawire.Operation, payload, "preset-set")
}

func CmdPresetRecall(recipient, index int) *Command {
	index = clamp(index, 0, 127)
	payload := append(append([]byte{}, viscawire.OpPresetRecall...), byte(index))
	return newCommand(recipient, viscawire.Operation, payload, "preset-recall")
}

// --- Pan/Tilt ------------------------------------------------------------

// PTDirection is one of the three VISCA per-axis codes (§4.2).
type PTDirection byte

const (
	PTDecrease PTDirection = 0x01
	PTIncrease PTDirection = 0x02
	PTStop     PTDirection = 0x03
)

// CmdPanTiltDrive is the speed-step pan/tilt command: independent
// direction codes per axis at the given speeds. panSpeed clamps to 1..18,
// tiltSpeed to 1..17 (§4.2).
func CmdPanTiltDrive(recipient int, panSpeed, tiltSpeed int, panDir, tiltDir PTDirection) *Command {
	panSpeed = clamp(panSpeed, 1, 18)
	tiltSpeed = clamp(tiltSpeed, 1, 17)
	payload := append(append([]byte{}, viscawire.OpPTDrive...), byte(panSpeed), byte(tiltSpeed), byte(panDir), byte(tiltDir))
	return newCommand(recipient, viscawire.PanTilt, payload, "pan-tilt-drive")
}

// CmdPanTiltHome sends the camera to its mechanical home position.
func CmdPanTiltHome(recipient int) *Command {
	return newCommand(recipient, viscawire.PanTilt, append([]byte{}, viscawire.OpPTHome...), "pan-tilt-home")
}

// CmdPanTiltReset resets the pan/tilt mechanism.
func CmdPanTiltReset(recipient int) *Command {
	return newCommand(recipient, viscawire.PanTilt, append([]byte{}, viscawire.OpPTReset...), "pan-tilt-reset")
}

// CmdPanTiltDirect moves to an absolute or relative position. x, y are
// signed pan/tilt targets; relative selects the relative-move opcode.
func CmdPanTiltDirect(recipient int, xspeed, yspeed int, x, y int32, relative bool) *Command {
	xspeed = clamp(xspeed, 1, 18)
	yspeed = clamp(yspeed, 1, 17)
	op := viscawire.OpPTAbsolute
	name := "pan-tilt-absolute"
	if relative {
		op = viscawire.OpPTRelative
		name = "pan-tilt-relative"
	}
	xv := viscawire.SI2V(x)
	yv := viscawire.SI2V(y)
	payload := append([]byte{}, op...)
	payload = append(payload, byte(xspeed), byte(yspeed))
	payload = append(payload, xv[:]...)
	payload = append(payload, yv[:]...)
	return newCommand(recipient, viscawire.PanTilt, payload, name)
}

// CmdPanTiltLimitSet/Clear program one of the two soft limit corners.
// which is 0 (up-right) or 1 (down-left), matching the VISCA convention.
func CmdPanTiltLimitSet(recipient, which int, pan, tilt int32) *Command {
	which = clamp(which, 0, 1)
	panV := viscawire.SI2V(pan)
	tiltV := viscawire.SI2V(tilt)
	payload := append(append([]byte{}, viscawire.OpPTLimitSet...), byte(which))
	payload = append(payload, panV[:]...)
	payload = append(payload, tiltV[:]...)
	return newCommand(recipient, viscawire.PanTilt, payload, "pan-tilt-limit-set")
}

func CmdPanTiltLimitClear(recipient, which int) *Command {
	which = clamp(which, 0, 1)
	payload := append(append([]byte{}, viscawire.OpPTLimitClear...), byte(which), 0x07, 0x0F, 0x0F, 0x0F, 0x0F, 0x07, 0x0F, 0x0F, 0x0F, 0x0F)
	return newCommand(recipient, viscawire.PanTilt, payload, "pan-tilt-limit-clear")
}

// --- Zoom ------------------------------------------------------------

func CmdZoomStop(recipient int) *Command {
	return newCommand(recipient, viscawire.Camera, append([]byte{}, viscawire.OpZoomStop...), "zoom-stop")
}

// CmdZoomVariable drives zoom in (tele) or out (wide) at speed 0..7; speed
// 0 uses the fixed-speed opcode, matching the VISCA convention that a
// nonzero speed nibble selects a variable-speed zoom.
func CmdZoomVariable(recipient int, tele bool, speed int) *Command {
	speed = clamp(speed, 0, 7)
	var op byte
	if tele {
		if speed == 0 {
			return newCommand(recipient, viscawire.Camera, append([]byte{}, viscawire.OpZoomTele...), "zoom-tele")
		}
		op = viscawire.OpZoomTeleVar | byte(speed)
	} else {
		if speed == 0 {
			return newCommand(recipient, viscawire.Camera, append([]byte{}, viscawire.OpZoomWide...), "zoom-wide")
		}
		op = viscawire.OpZoomWideVar | byte(speed)
	}
	return newCommand(recipient, viscawire.Camera, []byte{0x07, op}, "zoom-variable")
}

// CmdZoomDirect moves to an absolute zoom target. Target clamps to
// 0..0x4000 normally, 0..0x7AC0 when digitalZoom is enabled (§4.2).
func CmdZoomDirect(recipient int, target uint16, digitalZoom bool) *Command {
	max := uint16(0x4000)
	if digitalZoom {
		max = 0x7AC0
	}
	if target > max {
		target = max
	}
	v := viscawire.I2V(target)
	payload := append(append([]byte{}, viscawire.OpZoomDirect...), v[:]...)
	return newCommand(recipient, viscawire.Camera, payload, "zoom-direct")
}

func CmdDZoom(recipient int, on bool) *Command {
	payload := append(append([]byte{}, viscawire.OpDZoom...), onOff(on))
	return newCommand(recipient, viscawire.Camera, payload, "digital-zoom")
}

// --- Focus ------------------------------------------------------------

func CmdFocusStop(recipient int) *Command {
	return newCommand(recipient, viscawire.Camera, append([]byte{}, viscawire.OpFocusStop...), "focus-stop")
}

func CmdFocusVariable(recipient int, far bool, speed int) *Command {
	speed = clamp(speed, 0, 7)
	if speed == 0 {
		op := viscawire.OpFocusNear
		name := "focus-near"
		if far {
			op = viscawire.OpFocusFar
			name = "focus-far"
		}
		return newCommand(recipient, viscawire.Camera, append([]byte{}, op...), name)
	}
	base := viscawire.OpFocusNearVar
	if far {
		base = viscawire.OpFocusFarVar
	}
	return newCommand(recipient, viscawire.Camera, []byte{0x08, base | byte(speed)}, "focus-variable")
}

// CmdFocusDirect moves to an absolute focus target, clamped 0..0xF000.
func CmdFocusDirect(recipient int, target uint16) *Command {
	if target > 0xF000 {
		target = 0xF000
	}
	v := viscawire.I2V(target)
	payload := append(append([]byte{}, viscawire.OpFocusDirect...), v[:]...)
	return newCommand(recipient, viscawire.Camera, payload, "focus-direct")
}

func CmdFocusAuto(recipient int, auto bool) *Command {
	mode := byte(0x03) // manual
	if auto {
		mode = 0x02
	}
	payload := append(append([]byte{}, viscawire.OpFocusAuto...), mode)
	return newCommand(recipient, viscawire.Camera, payload, "focus-auto-mode")
}

func CmdFocusOnePushTrigger(recipient int) *Command {
	return newCommand(recipient, viscawire.Camera, append([]byte{}, viscawire.OpFocusTrigger...), "focus-one-push-trigger")
}

func CmdFocusInfinity(recipient int) *Command {
	return newCommand(recipient, viscawire.Camera, append([]byte{}, viscawire.OpFocusInfinity...), "focus-infinity")
}

// CmdFocusNearLimit sets the near focus limit; the low payload byte must
// be 0 per the VISCA reference (§4.2).
func CmdFocusNearLimit(recipient int, target uint16) *Command {
	v := viscawire.I2V(target)
	v[3] = 0
	payload := append(append([]byte{}, viscawire.OpFocusNearLimit...), v[:]...)
	return newCommand(recipient, viscawire.Camera, payload, "focus-near-limit")
}

func CmdFocusIRCorrection(recipient int, on bool) *Command {
	payload := append(append([]byte{}, viscawire.OpFocusIRCorr...), onOff(on))
	return newCommand(recipient, viscawire.Camera, payload, "focus-ir-correction")
}

func CmdFocusAFSensitivity(recipient int, high bool) *Command {
	mode := byte(0x03)
	if high {
		mode = 0x02
	}
	payload := append(append([]byte{}, viscawire.OpFocusAFSens...), mode)
	return newCommand(recipient, viscawire.Camera, payload, "focus-af-sensitivity")
}

func CmdFocusAFInterval(recipient int, movementTime, interval byte) *Command {
	payload := append(append([]byte{}, viscawire.OpFocusAFInterval...), movementTime, interval)
	return newCommand(recipient, viscawire.Camera, payload, "focus-af-interval")
}

// CmdZoomFocusCombo drives zoom and focus in one command.
func CmdZoomFocusCombo(recipient int, zoom, focus uint16) *Command {
	if zoom > 0x4000 {
		zoom = 0x4000
	}
	if focus > 0xF000 {
		focus = 0xF000
	}
	zv := viscawire.I2V(zoom)
	fv := viscawire.I2V(focus)
	payload := append(append([]byte{}, viscawire.OpZoomFocus...), zv[:]...)
	payload = append(payload, fv[:]...)
	return newCommand(recipient, viscawire.Camera, payload, "zoom-focus-combo")
}

// --- White balance / exposure / gain -----------------------------------

func CmdWBMode(recipient int, mode byte) *Command {
	payload := append(append([]byte{}, viscawire.OpWBMode...), mode)
	return newCommand(recipient, viscawire.Camera, payload, "wb-mode")
}

func CmdWBOnePushTrigger(recipient int) *Command {
	return newCommand(recipient, viscawire.Camera, append([]byte{}, viscawire.OpWBTrigger...), "wb-one-push-trigger")
}

func CmdGainStep(recipient int, which string, up bool) *Command {
	op := gainOp(which)
	dir := byte(0x03)
	if up {
		dir = 0x02
	}
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, op...), dir), "gain-"+which+"-step")
}

func CmdGainReset(recipient int, which string) *Command {
	op := gainOp(which)
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, op...), 0x00), "gain-"+which+"-reset")
}

func CmdGainDirect(recipient int, which string, value byte) *Command {
	op := gainDirectOp(which)
	payload := append(append([]byte{}, op...), 0x00, 0x00, byte(value>>4), byte(value&0xF))
	return newCommand(recipient, viscawire.Camera, payload, "gain-"+which+"-direct")
}

// gainOp is the step/reset opcode for a gain channel; "r"/"b" are their own
// opcodes, anything else (master) uses OpGainMaster.
func gainOp(which string) []byte {
	switch which {
	case "r":
		return viscawire.OpRGain
	case "b":
		return viscawire.OpBGain
	default:
		return viscawire.OpGainMaster
	}
}

// gainDirectOp is the direct-value opcode for a gain channel, distinct from
// gainOp's step/reset opcode.
func gainDirectOp(which string) []byte {
	switch which {
	case "r":
		return viscawire.OpRGainDirect
	case "b":
		return viscawire.OpBGainDirect
	default:
		return viscawire.OpGainDirect
	}
}

// CmdGainLimit clamps to 4..15 (§4.2).
func CmdGainLimit(recipient int, level int) *Command {
	level = clamp(level, 4, 15)
	payload := append(append([]byte{}, viscawire.OpGainLimit...), byte(level))
	return newCommand(recipient, viscawire.Camera, payload, "gain-limit")
}

func CmdExposureMode(recipient int, mode byte) *Command {
	payload := append(append([]byte{}, viscawire.OpExposureMode...), mode)
	return newCommand(recipient, viscawire.Camera, payload, "exposure-mode")
}

func CmdExpCompEnable(recipient int, on bool) *Command {
	payload := append(append([]byte{}, viscawire.OpExpCompEnable...), onOff(on))
	return newCommand(recipient, viscawire.Camera, payload, "exp-comp-enable")
}

func CmdExpCompStep(recipient int, up bool) *Command {
	dir := byte(0x03)
	if up {
		dir = 0x02
	}
	return newCommand(recipient, viscawire.Camera, []byte{0x0E, dir}, "exp-comp-step")
}

func CmdExpCompDirect(recipient int, value byte) *Command {
	payload := append(append([]byte{}, viscawire.OpExpCompDirect...), 0x00, 0x00, byte(value>>4), byte(value&0xF))
	return newCommand(recipient, viscawire.Camera, payload, "exp-comp-direct")
}

func CmdBacklight(recipient int, on bool) *Command {
	payload := append(append([]byte{}, viscawire.OpBacklight...), onOff(on))
	return newCommand(recipient, viscawire.Camera, payload, "backlight")
}

func CmdShutterStep(recipient int, up bool) *Command {
	dir := byte(0x03)
	if up {
		dir = 0x02
	}
	return newCommand(recipient, viscawire.Camera, []byte{0x0A, dir}, "shutter-step")
}

func CmdShutterDirect(recipient int, value byte) *Command {
	payload := append(append([]byte{}, viscawire.OpShutterDirect...), 0x00, 0x00, byte(value>>4), byte(value&0xF))
	return newCommand(recipient, viscawire.Camera, payload, "shutter-direct")
}

func CmdShutterSlowAuto(recipient int, on bool) *Command {
	return newCommand(recipient, viscawire.Camera, []byte{0x5A, onOff(on)}, "shutter-slow-auto")
}

func CmdIrisStep(recipient int, up bool) *Command {
	dir := byte(0x03)
	if up {
		dir = 0x02
	}
	return newCommand(recipient, viscawire.Camera, []byte{0x0B, dir}, "iris-step")
}

func CmdIrisDirect(recipient int, value byte) *Command {
	payload := append(append([]byte{}, viscawire.OpIrisDirect...), 0x00, 0x00, byte(value>>4), byte(value&0xF))
	return newCommand(recipient, viscawire.Camera, payload, "iris-direct")
}

func CmdApertureStep(recipient int, up bool) *Command {
	dir := byte(0x03)
	if up {
		dir = 0x02
	}
	return newCommand(recipient, viscawire.Camera, []byte{0x02, dir}, "aperture-step")
}

func CmdApertureDirect(recipient int, value byte) *Command {
	payload := append(append([]byte{}, viscawire.OpApertureDirect...), 0x00, 0x00, byte(value>>4), byte(value&0xF))
	return newCommand(recipient, viscawire.Camera, payload, "aperture-direct")
}

// --- Image quality -------------------------------------------------------

func CmdHighRes(recipient int, on bool) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpHighRes...), onOff(on)), "high-res")
}

func CmdHighSensitivity(recipient int, on bool) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpHighSensitivity...), onOff(on)), "high-sensitivity")
}

// CmdNoiseReduction clamps level to 0..5.
func CmdNoiseReduction(recipient int, level int) *Command {
	level = clamp(level, 0, 5)
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpNoiseReduction...), byte(level)), "noise-reduction")
}

// CmdGamma clamps level to 0..4.
func CmdGamma(recipient int, level int) *Command {
	level = clamp(level, 0, 4)
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpGamma...), byte(level)), "gamma")
}

// EffectMode enumerates the basic-effect palette (§6).
type EffectMode byte

const (
	EffectOff EffectMode = iota
	EffectPastel
	EffectNegative
	EffectSepia
	EffectBW
	EffectSolar
	EffectMosaic
	EffectSlim
	EffectStretch
)

func CmdEffect(recipient int, mode EffectMode) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpEffect...), byte(mode)), "effect")
}

// DigitalEffectMode enumerates the digital-effect palette (§6).
type DigitalEffectMode byte

const (
	DigitalEffectOff DigitalEffectMode = iota
	DigitalEffectStill
	DigitalEffectFlash
	DigitalEffectLumi
	DigitalEffectTrail
)

func CmdEffectDigital(recipient int, mode DigitalEffectMode) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpEffectDigital...), byte(mode)), "effect-digital")
}

func CmdEffectLevel(recipient int, level byte) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpEffectLevel...), level), "effect-level")
}

func CmdFreeze(recipient int, on bool) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpFreeze...), onOff(on)), "freeze")
}

func CmdICRManual(recipient int, on bool) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpICRManual...), onOff(on)), "icr-manual")
}

func CmdICRAuto(recipient int, on bool) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpICRAuto...), onOff(on)), "icr-auto")
}

func CmdICRThreshold(recipient int, level byte) *Command {
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpICRThreshold...), level), "icr-threshold")
}

func CmdIDWrite(recipient int, id uint16) *Command {
	v := viscawire.I2V(id)
	payload := append(append([]byte{}, viscawire.OpIDWrite...), v[:]...)
	return newCommand(recipient, viscawire.Camera, payload, "id-write")
}

// CmdChromaSuppress clamps to 0..3.
func CmdChromaSuppress(recipient int, level int) *Command {
	level = clamp(level, 0, 3)
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpChromaSuppress...), byte(level)), "chroma-suppress")
}

// CmdColorGain clamps to 0..14.
func CmdColorGain(recipient int, level int) *Command {
	level = clamp(level, 0, 14)
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpColorGain...), 0x00, 0x00, 0x00, byte(level)), "color-gain")
}

// CmdColorHue clamps to 0..14.
func CmdColorHue(recipient int, level int) *Command {
	level = clamp(level, 0, 14)
	return newCommand(recipient, viscawire.Camera, append(append([]byte{}, viscawire.OpColorHue...), 0x00, 0x00, 0x00, byte(level)), "color-hue")
}

// --- Inquiries -----------------------------------------------------------

func InqPowerCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqPower...), "inq-power",
		wrap(viscareply.ParsePowerInquiry))
}

func InqZoomPosCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqZoomPos...), "inq-zoom-pos",
		wrap(viscareply.ParseZoomPosInquiry))
}

func InqFocusModeCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqFocusMode...), "inq-focus-mode",
		wrap(viscareply.ParseFocusModeInquiry))
}

func InqFocusPosCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqFocusPos...), "inq-focus-pos",
		wrap(viscareply.ParseFocusPosInquiry))
}

func InqWBModeCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqWBMode...), "inq-wb-mode",
		wrap(viscareply.ParseWBModeInquiry))
}

func InqGainLimitCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqGainLimit...), "inq-gain-limit",
		wrap(viscareply.ParseGainLimitInquiry))
}

func InqBacklightCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqBacklight...), "inq-backlight",
		wrap(viscareply.ParseBacklightInquiry))
}

func InqLensBlockCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqLensBlock...), "inq-lens-block",
		wrap(viscareply.ParseLensBlock))
}

func InqImageBlockCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.Camera, append([]byte{}, viscawire.InqImageBlock...), "inq-image-block",
		wrap(viscareply.ParseImageBlock))
}

func InqPTPosCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.PanTilt, append([]byte{}, viscawire.InqPTPos...), "inq-pt-pos",
		wrap(viscareply.ParsePTPosition))
}

func InqPTMaxSpeedCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.PanTilt, append([]byte{}, viscawire.InqPTMaxSpeed...), "inq-pt-max-speed",
		wrap(viscareply.ParsePTMaxSpeed))
}

func InqPTStatusCmd(recipient int) *Command {
	return newInquiry(recipient, viscawire.PanTilt, append([]byte{}, viscawire.InqPTStatus...), "inq-pt-status",
		wrap(viscareply.ParsePTStatus))
}

// InqVideoFormatCmd inquires the current (now=true) or next power-cycle
// video format. The VideoSystem reply codes are camera-specific and left
// un-parsed here; per §9 that's deferred to per-camera plug-in parsers.
func InqVideoFormatCmd(recipient int, now bool) *Command {
	op := viscawire.InqVideoNow
	name := "inq-video-format-now"
	if !now {
		op = viscawire.InqVideoNext
		name = "inq-video-format-next"
	}
	return newInquiry(recipient, viscawire.Interface, append([]byte{}, op...), name, nil)
}
