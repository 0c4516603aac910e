package pa1010d

import "fmt"

// PPSMode selects the behaviour of the module's PPS status LED.
type PPSMode int

const (
	PPSDisable       PPSMode = iota // LED off
	PPSAfterFirstFix                // blink after the first fix
	PPSOnly3D                       // blink only for a 3D fix
	PPSOnly2D3D                     // blink for a 2D or 3D fix
	PPSAlways                       // blink always
)

func (m PPSMode) String() string {
	switch m {
	case PPSDisable:
		return "disable"
	case PPSAfterFirstFix:
		return "after_first_fix"
	case PPSOnly3D:
		return "only_3d"
	case PPSOnly2D3D:
		return "only_2d_3d"
	case PPSAlways:
		return "always"
	default:
		return fmt.Sprintf("PPSMode(%d)", int(m))
	}
}

// SetPPS configures the pulse-per-second status LED. The mode and the
// pulse width (1..999 ms) are validated before any bus traffic; the device
// acknowledges with "$PMTK001,285,3*3F".
func (d *Device) SetPPS(mode PPSMode, pulseWidthMS int) error {
	if mode < PPSDisable || mode > PPSAlways {
		return fmt.Errorf("%w: %d", ErrInvalidPPSMode, int(mode))
	}
	if pulseWidthMS < 1 || pulseWidthMS > 999 {
		return fmt.Errorf("%w: %d", ErrInvalidPulseWidth, pulseWidthMS)
	}
	return d.SendCommand(fmt.Sprintf("PMTK285,%d,%d", int(mode), pulseWidthMS), true)
}
