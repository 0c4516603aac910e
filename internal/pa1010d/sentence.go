package pa1010d

// Kind identifies the sentence classes the driver understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindGGA         // time, position and fix
	KindGLL         // geographic latitude/longitude
	KindGSA         // DOP and active satellites
	KindRMC         // position, velocity and time
	KindVTG         // track made good and ground speed
	KindGSV         // satellites in view
	KindNotice      // proprietary boot/acknowledge output
)

func (k Kind) String() string {
	switch k {
	case KindGGA:
		return "GGA"
	case KindGLL:
		return "GLL"
	case KindGSA:
		return "GSA"
	case KindRMC:
		return "RMC"
	case KindVTG:
		return "VTG"
	case KindGSV:
		return "GSV"
	case KindNotice:
		return "notice"
	default:
		return "unknown"
	}
}

// Sentence is one classified NMEA sentence. Values are built fresh per
// parsed line and discarded once folded into the fix model.
type Sentence interface {
	Kind() Kind
	Raw() string
}

// RawSentence carries the original line and is embedded in every variant.
type RawSentence struct {
	Text string
}

// Raw returns the sentence exactly as read from the device.
func (r RawSentence) Raw() string { return r.Text }

// PositionFix is a GGA sentence: time, position and fix data.
type PositionFix struct {
	RawSentence
	Timestamp     string
	Latitude      float64 // decimal degrees
	Longitude     float64 // decimal degrees
	Altitude      float64 // meters above mean sea level
	NumSatellites int
	Quality       int
	// HasQuality is false when the quality field was empty; the module
	// emits such sentences before it has a fix.
	HasQuality bool
}

func (PositionFix) Kind() Kind { return KindGGA }

// GeographicPosition is a GLL sentence, a Loran holdover the driver
// recognizes but does not fold.
type GeographicPosition struct {
	RawSentence
}

func (GeographicPosition) Kind() Kind { return KindGLL }

// ActiveSatellites is a GSA sentence: selection mode, fix type and DOP.
type ActiveSatellites struct {
	RawSentence
	Mode    string // "A" automatic, "M" manual
	FixType string // "1" none, "2" 2D, "3" 3D
	PDOP    float64
	HDOP    float64
	VDOP    float64
}

func (ActiveSatellites) Kind() Kind { return KindGSA }

// VelocityTime is an RMC sentence; the driver only folds its speed.
type VelocityTime struct {
	RawSentence
	SpeedKnots float64
}

func (VelocityTime) Kind() Kind { return KindRMC }

// TrackAndSpeed is a VTG sentence, recognized but not folded.
type TrackAndSpeed struct {
	RawSentence
}

func (TrackAndSpeed) Kind() Kind { return KindVTG }

// SatellitesInView is a GSV sentence, recognized but not folded.
type SatellitesInView struct {
	RawSentence
}

func (SatellitesInView) Kind() Kind { return KindGSV }

// DeviceNotice is proprietary boot or acknowledge output such as
// "$PMTK011,MTKGPS*08".
type DeviceNotice struct {
	RawSentence
}

func (DeviceNotice) Kind() Kind { return KindNotice }

// Unrecognized is a well-formed sentence of a type the driver has no
// handler for. Type carries the NMEA data type tag.
type Unrecognized struct {
	RawSentence
	Type string
}

func (Unrecognized) Kind() Kind { return KindUnknown }
