package pa1010d

// Fix is a read-only snapshot of the last known receiver state, suitable
// for JSON and MQTT. A nil field has not been reported yet.
type Fix struct {
	Timestamp       *string  `json:"timestamp,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`      // decimal degrees
	Longitude       *float64 `json:"longitude,omitempty"`     // decimal degrees
	Altitude        *float64 `json:"altitude,omitempty"`      // meters
	NumSatellites   *int     `json:"num_satellites,omitempty"`
	FixQuality      *int     `json:"fix_quality,omitempty"`
	SpeedOverGround *float64 `json:"speed_knots,omitempty"`
	ModeFixType     *string  `json:"mode_fix_type,omitempty"` // "1" none, "2" 2D, "3" 3D
	PDOP            *float64 `json:"pdop,omitempty"`
	HDOP            *float64 `json:"hdop,omitempty"`
	VDOP            *float64 `json:"vdop,omitempty"`
}

// fixState is the mutable model behind Fix. Each sentence kind updates its
// own subset of fields; everything else keeps its previous value.
type fixState struct {
	timestamp string
	tsOK      bool

	lat   float64
	latOK bool
	lon   float64
	lonOK bool
	alt   float64
	altOK bool

	sats      int
	satsOK    bool
	quality   int
	qualityOK bool

	speedKt float64
	speedOK bool

	modeFixType string
	modeOK      bool

	pdop, hdop, vdop float64
	dopOK            bool
}

func (s *fixState) applyGGA(m PositionFix) {
	// A GGA with no quality field means the receiver has no fix: zero the
	// satellite count and quality, keep everything else.
	if !m.HasQuality {
		s.sats, s.satsOK = 0, true
		s.quality, s.qualityOK = 0, true
		return
	}
	s.timestamp, s.tsOK = m.Timestamp, true
	s.lat, s.latOK = m.Latitude, true
	s.lon, s.lonOK = m.Longitude, true
	s.alt, s.altOK = m.Altitude, true
	s.sats, s.satsOK = m.NumSatellites, true
	s.quality, s.qualityOK = m.Quality, true
}

func (s *fixState) applyGSA(m ActiveSatellites) {
	s.modeFixType, s.modeOK = m.FixType, true
	s.pdop, s.hdop, s.vdop = m.PDOP, m.HDOP, m.VDOP
	s.dopOK = true
}

func (s *fixState) applyRMC(m VelocityTime) {
	s.speedKt, s.speedOK = m.SpeedKnots, true
}

func (s *fixState) snapshot() Fix {
	var out Fix
	if s.tsOK {
		v := s.timestamp
		out.Timestamp = &v
	}
	if s.latOK {
		v := s.lat
		out.Latitude = &v
	}
	if s.lonOK {
		v := s.lon
		out.Longitude = &v
	}
	if s.altOK {
		v := s.alt
		out.Altitude = &v
	}
	if s.satsOK {
		v := s.sats
		out.NumSatellites = &v
	}
	if s.qualityOK {
		v := s.quality
		out.FixQuality = &v
	}
	if s.speedOK {
		v := s.speedKt
		out.SpeedOverGround = &v
	}
	if s.modeOK {
		v := s.modeFixType
		out.ModeFixType = &v
	}
	if s.dopOK {
		p, h, v := s.pdop, s.hdop, s.vdop
		out.PDOP = &p
		out.HDOP = &h
		out.VDOP = &v
	}
	return out
}
