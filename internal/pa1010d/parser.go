package pa1010d

import (
	"strconv"

	nmea "github.com/adrianmo/go-nmea"
)

// Parser turns one line of text into a classified sentence. A malformed
// line (bad checksum, bad grammar) returns an error; a well-formed line of
// a type the driver has no handler for returns Unrecognized.
type Parser interface {
	Parse(line string) (Sentence, error)
	// SupportsProprietary reports whether Parse classifies MTK
	// boot/acknowledge sentences natively. Checked once by the dispatcher
	// so notices from lesser parsers are not mistaken for unsupported
	// sentence types.
	SupportsProprietary() bool
}

// ppsAck is a known-good MTK acknowledgement used to probe proprietary
// support once at construction.
const ppsAck = "$PMTK001,285,3*3F"

type nmeaParser struct {
	mtk bool
}

// NewParser returns the production go-nmea backed parser.
func NewParser() Parser {
	p := &nmeaParser{}
	if s, err := nmea.Parse(ppsAck); err == nil {
		_, p.mtk = s.(nmea.MTK)
	}
	return p
}

func (p *nmeaParser) SupportsProprietary() bool { return p.mtk }

func (p *nmeaParser) Parse(line string) (Sentence, error) {
	s, err := nmea.Parse(line)
	if err != nil {
		return nil, err
	}

	raw := RawSentence{Text: line}
	switch m := s.(type) {
	case nmea.GGA:
		var ts string
		if m.Time.Valid {
			ts = m.Time.String()
		}
		quality := 0
		hasQuality := false
		if m.FixQuality != "" {
			if q, err := strconv.Atoi(m.FixQuality); err == nil {
				quality, hasQuality = q, true
			}
		}
		return PositionFix{
			RawSentence:   raw,
			Timestamp:     ts,
			Latitude:      m.Latitude,
			Longitude:     m.Longitude,
			Altitude:      m.Altitude,
			NumSatellites: int(m.NumSatellites),
			Quality:       quality,
			HasQuality:    hasQuality,
		}, nil
	case nmea.GLL:
		return GeographicPosition{RawSentence: raw}, nil
	case nmea.GSA:
		return ActiveSatellites{
			RawSentence: raw,
			Mode:        m.Mode,
			FixType:     m.FixType,
			PDOP:        m.PDOP,
			HDOP:        m.HDOP,
			VDOP:        m.VDOP,
		}, nil
	case nmea.RMC:
		return VelocityTime{RawSentence: raw, SpeedKnots: m.Speed}, nil
	case nmea.VTG:
		return TrackAndSpeed{RawSentence: raw}, nil
	case nmea.GSV:
		return SatellitesInView{RawSentence: raw}, nil
	case nmea.MTK:
		return DeviceNotice{RawSentence: raw}, nil
	default:
		return Unrecognized{RawSentence: raw, Type: s.DataType()}, nil
	}
}
