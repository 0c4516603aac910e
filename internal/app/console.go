package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gnss_computer/internal/config"
	"github.com/relabs-tech/gnss_computer/internal/pa1010d"
)

func fmtFloat(v *float64, prec int) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func fmtInt(v *int) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%d", *v)
}

// RunConsole subscribes to the fix topic and prints each update.
func RunConsole() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicGPSFix, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var fix pa1010d.Fix
		if err := json.Unmarshal(msg.Payload(), &fix); err != nil {
			log.Printf("console: fix unmarshal error: %v", err)
			return
		}

		ts := "--"
		if fix.Timestamp != nil {
			ts = *fix.Timestamp
		}
		fmt.Printf(
			"[FIX] T=%s  lat=%s lon=%s alt=%sm  sats=%s qual=%s  spd=%skn\n",
			ts,
			fmtFloat(fix.Latitude, 6),
			fmtFloat(fix.Longitude, 6),
			fmtFloat(fix.Altitude, 1),
			fmtInt(fix.NumSatellites),
			fmtInt(fix.FixQuality),
			fmtFloat(fix.SpeedOverGround, 1),
		)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicGPSFix)

	// Wait for Ctrl+C
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	client.Disconnect(250)
	return nil
}
