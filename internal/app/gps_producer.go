package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gnss_computer/internal/bus"
	"github.com/relabs-tech/gnss_computer/internal/config"
	"github.com/relabs-tech/gnss_computer/internal/pa1010d"
)

// closableBus is what openBus hands back: the driver's transport plus the
// ability to release it on shutdown.
type closableBus interface {
	pa1010d.Bus
	Close() error
}

func openBus(cfg *config.Config) (closableBus, error) {
	switch cfg.GPSBus {
	case "i2c":
		return bus.OpenI2C(cfg.GPSI2CBus)
	case "serial":
		return bus.OpenSerial(cfg.GPSSerialPort, uint(cfg.GPSBaudRate))
	default:
		return nil, fmt.Errorf("unknown GPS_BUS %q", cfg.GPSBus)
	}
}

func parsePPSMode(s string) (pa1010d.PPSMode, error) {
	for m := pa1010d.PPSDisable; m <= pa1010d.PPSAlways; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown PPS mode %q", s)
}

func parseWaitFor(s string) (pa1010d.Kind, error) {
	switch s {
	case "GGA":
		return pa1010d.KindGGA, nil
	case "GSA":
		return pa1010d.KindGSA, nil
	case "RMC":
		return pa1010d.KindRMC, nil
	case "VTG":
		return pa1010d.KindVTG, nil
	case "GSV":
		return pa1010d.KindGSV, nil
	default:
		return 0, fmt.Errorf("unknown GPS_WAIT_FOR %q", s)
	}
}

// RunGPSProducer opens the configured bus, drives the PA1010D update loop,
// and publishes each fix snapshot as JSON to MQTT.
func RunGPSProducer() error {
	cfg := config.Get()

	waitFor, err := parseWaitFor(cfg.GPSWaitFor)
	if err != nil {
		return err
	}

	// ---- 1) Connect to MQTT broker ----
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDGPS)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("gps: connected to MQTT broker at %s", cfg.MQTTBroker)

	// ---- 2) Open the module's bus ----
	transport, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer transport.Close()
	log.Printf("gps: module reachable over %s", cfg.GPSBus)

	dev := pa1010d.New(transport, &pa1010d.Opts{
		Addr:  cfg.GPSI2CAddr,
		Debug: cfg.GPSDebug,
	})

	// ---- 3) Apply the configured PPS LED behaviour ----
	if cfg.PPSMode != "" {
		mode, err := parsePPSMode(cfg.PPSMode)
		if err != nil {
			return err
		}
		if err := dev.SetPPS(mode, cfg.PPSPulseWidth); err != nil {
			return err
		}
		log.Printf("gps: pps led set to %s (%d ms pulse)", mode, cfg.PPSPulseWidth)
	}

	// ---- 4) Update loop: fold sentences, publish snapshots ----
	timeout := time.Duration(cfg.GPSUpdateTimeout) * time.Second

	for {
		if err := dev.Update(waitFor, timeout); err != nil {
			var te *pa1010d.TimeoutError
			var ue *pa1010d.UnsupportedError
			switch {
			case errors.As(err, &te):
				// No fix data yet; retry with a fresh deadline.
				log.Printf("gps: %v", err)
				continue
			case errors.As(err, &ue):
				log.Printf("gps: skipping %v", err)
				continue
			default:
				return err // bus fault
			}
		}

		payload, err := json.Marshal(dev.Fix())
		if err != nil {
			log.Printf("gps: JSON marshal error: %v", err)
			continue
		}

		token := client.Publish(cfg.TopicGPSFix, 0, true, payload)
		token.Wait()
		if token.Error() != nil {
			log.Printf("gps: publish error: %v", token.Error())
			continue
		}

		if cfg.GPSDebug {
			log.Printf("gps: published fix: %s", payload)
		}
	}
}
