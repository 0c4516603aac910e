package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/gnss_computer/internal/config"
	"github.com/relabs-tech/gnss_computer/internal/pa1010d"
)

// displayData holds the latest fix for the render loop.
type displayData struct {
	mu      sync.RWMutex
	fix     pa1010d.Fix
	haveFix bool
}

// RunDisplay renders the latest fix on an ssd1306 OLED, fed from MQTT.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	i2cBus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer i2cBus.Close()

	dev, err := ssd1306.NewI2C(i2cBus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: ssd1306 initialized")

	if err := showSplash(dev); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	data := &displayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicGPSFix, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var fix pa1010d.Fix
		if err := json.Unmarshal(msg.Payload(), &fix); err != nil {
			log.Printf("display: fix unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.fix = fix
		data.haveFix = true
		data.mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicGPSFix)

	interval := cfg.DisplayUpdateInterval
	if interval <= 0 {
		interval = 1000
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		fix, have := data.fix, data.haveFix
		data.mu.RUnlock()

		if err := updateFixDisplay(dev, fix, have); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}

	return nil
}

func blankImage() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}
	return img
}

func updateFixDisplay(dev *ssd1306.Dev, fix pa1010d.Fix, haveData bool) error {
	img := blankImage()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	if !haveData || fix.Latitude == nil || fix.Longitude == nil {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("GPS Fix"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		// Latitude
		drawer.Dot = fixed.P(0, 13)
		latDir := "N"
		lat := *fix.Latitude
		if lat < 0 {
			latDir = "S"
			lat = -lat
		}
		drawer.DrawBytes([]byte(fmt.Sprintf("%.4f%s", lat, latDir)))

		// Longitude
		drawer.Dot = fixed.P(0, 26)
		lonDir := "E"
		lon := *fix.Longitude
		if lon < 0 {
			lonDir = "W"
			lon = -lon
		}
		drawer.DrawBytes([]byte(fmt.Sprintf("%.4f%s", lon, lonDir)))

		// Altitude
		drawer.Dot = fixed.P(0, 39)
		if fix.Altitude != nil {
			drawer.DrawBytes([]byte(fmt.Sprintf("Alt: %.0fm", *fix.Altitude)))
		}

		// Satellites and quality
		drawer.Dot = fixed.P(0, 52)
		drawer.DrawBytes([]byte(fmt.Sprintf("Sats:%s Q:%s", fmtInt(fix.NumSatellites), fmtInt(fix.FixQuality))))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func showSplash(dev *ssd1306.Dev) error {
	img := blankImage()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("GNSS Pi"))

	drawer.Dot = fixed.P(5, 43)
	drawer.DrawBytes([]byte("Looking for"))

	drawer.Dot = fixed.P(25, 56)
	drawer.DrawBytes([]byte("sats"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
