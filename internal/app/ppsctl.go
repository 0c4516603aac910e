package app

import (
	"log"

	"github.com/relabs-tech/gnss_computer/internal/config"
	"github.com/relabs-tech/gnss_computer/internal/pa1010d"
)

// RunPPSCtl sends a one-shot PPS LED configuration to the module.
func RunPPSCtl(mode string, pulseWidthMS int) error {
	cfg := config.Get()

	m, err := parsePPSMode(mode)
	if err != nil {
		return err
	}

	transport, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer transport.Close()

	dev := pa1010d.New(transport, &pa1010d.Opts{
		Addr:  cfg.GPSI2CAddr,
		Debug: cfg.GPSDebug,
	})

	if err := dev.SetPPS(m, pulseWidthMS); err != nil {
		return err
	}
	log.Printf("ppsctl: pps led set to %s (%d ms pulse)", m, pulseWidthMS)

	// The module confirms with a PMTK ack; surface it when it arrives but
	// do not fail the command if it is missed.
	if err := dev.Update(pa1010d.KindGGA, pa1010d.DefaultTimeout); err != nil {
		log.Printf("ppsctl: no acknowledgement: %v", err)
	}
	return nil
}
