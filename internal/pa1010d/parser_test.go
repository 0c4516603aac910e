package pa1010d

import (
	"math"
	"testing"
)

func TestParser_ClassifiesGGA(t *testing.T) {
	p := NewParser()
	s, err := p.Parse("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, ok := s.(PositionFix)
	if !ok {
		t.Fatalf("expected PositionFix, got %T", s)
	}
	if !m.HasQuality || m.Quality != 1 {
		t.Fatalf("expected quality 1, got %+v", m)
	}
	if m.NumSatellites != 8 {
		t.Fatalf("expected 8 satellites, got %d", m.NumSatellites)
	}
	if math.Abs(m.Latitude-48.1173) > 1e-4 {
		t.Fatalf("unexpected latitude %v", m.Latitude)
	}
	if m.Altitude != 545.4 {
		t.Fatalf("unexpected altitude %v", m.Altitude)
	}
}

func TestParser_ClassifiesGSA(t *testing.T) {
	p := NewParser()
	s, err := p.Parse(nmeaLine("GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, ok := s.(ActiveSatellites)
	if !ok {
		t.Fatalf("expected ActiveSatellites, got %T", s)
	}
	if m.FixType != "3" {
		t.Fatalf("expected 3D fix type, got %q", m.FixType)
	}
	if m.PDOP != 2.5 || m.HDOP != 1.3 || m.VDOP != 2.1 {
		t.Fatalf("unexpected DOP %v %v %v", m.PDOP, m.HDOP, m.VDOP)
	}
}

func TestParser_ClassifiesRMC(t *testing.T) {
	p := NewParser()
	s, err := p.Parse(nmeaLine("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, ok := s.(VelocityTime)
	if !ok {
		t.Fatalf("expected VelocityTime, got %T", s)
	}
	if m.SpeedKnots != 22.4 {
		t.Fatalf("expected 22.4 knots, got %v", m.SpeedKnots)
	}
}

func TestParser_ClassifiesIgnoredKinds(t *testing.T) {
	p := NewParser()

	cases := []struct {
		line string
		kind Kind
	}{
		{nmeaLine("GPGLL,4916.45,N,12311.12,W,225444,A"), KindGLL},
		{nmeaLine("GPVTG,054.7,T,034.4,M,005.5,N,010.2,K"), KindVTG},
		{nmeaLine("GPGSV,3,1,11,03,03,111,00,04,15,270,00,06,01,010,00,13,06,292,00"), KindGSV},
	}
	for _, c := range cases {
		s, err := p.Parse(c.line)
		if err != nil {
			t.Fatalf("parse %q: %v", c.line, err)
		}
		if s.Kind() != c.kind {
			t.Fatalf("%q: expected kind %v, got %v", c.line, c.kind, s.Kind())
		}
	}
}

func TestParser_RejectsBadChecksum(t *testing.T) {
	p := NewParser()
	good := nmeaLine("GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1")
	bad := good[:len(good)-2] + "00"
	if _, err := p.Parse(bad); err == nil {
		t.Fatalf("expected checksum error")
	}
}

func TestParser_MTKAckIsNotice(t *testing.T) {
	p := NewParser()
	if !p.SupportsProprietary() {
		t.Skip("nmea library built without MTK support")
	}
	s, err := p.Parse("$PMTK001,285,3*3F")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := s.(DeviceNotice); !ok {
		t.Fatalf("expected DeviceNotice, got %T", s)
	}
}

func TestParser_UnhandledTypeIsUnrecognized(t *testing.T) {
	// ZDA is valid NMEA the underlying library understands but the
	// driver has no fold for.
	p := NewParser()
	s, err := p.Parse(nmeaLine("GPZDA,160012.71,11,03,2004,-1,00"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, ok := s.(Unrecognized)
	if !ok {
		t.Fatalf("expected Unrecognized, got %T", s)
	}
	if m.Type != "ZDA" {
		t.Fatalf("expected type tag ZDA, got %q", m.Type)
	}
}
