package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker          string
	MQTTClientIDGPS     string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string
	MQTTClientIDDisplay string

	// Topics
	TopicGPSFix string

	// GNSS module wiring: "i2c" (the default PA1010D hookup) or "serial".
	GPSBus        string
	GPSI2CBus     string // periph bus name; empty selects the first one
	GPSI2CAddr    uint16
	GPSSerialPort string
	GPSBaudRate   int

	// Update loop
	GPSWaitFor       string // sentence type to wait for, e.g. "GGA"
	GPSUpdateTimeout int    // seconds
	GPSDebug         bool

	// PPS status LED; empty PPS_MODE leaves the module untouched.
	PPSMode       string
	PPSPulseWidth int // milliseconds, 1-999

	// Web server
	WebServerPort int

	// Display
	DisplayUpdateInterval int // milliseconds
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot modify config
//     without proper locking.
//   - configOnce: ensures InitGlobal() only runs once, even if called
//     multiple times.
//   - configMu: RWMutex protects concurrent access.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		GPSI2CAddr:       0x10,
		GPSWaitFor:       "GGA",
		GPSUpdateTimeout: 5,
		PPSPulseWidth:    100,
	}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_GPS_FIX":
		c.TopicGPSFix = value

	// GNSS module wiring
	case "GPS_BUS":
		value = strings.ToLower(value)
		if value != "i2c" && value != "serial" {
			return fmt.Errorf("GPS_BUS must be \"i2c\" or \"serial\", got %q", value)
		}
		c.GPSBus = value
	case "GPS_I2C_BUS":
		c.GPSI2CBus = value
	case "GPS_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid GPS_I2C_ADDR %q: %w", value, err)
		}
		c.GPSI2CAddr = uint16(addr)
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// Update loop
	case "GPS_WAIT_FOR":
		c.GPSWaitFor = strings.ToUpper(value)
	case "GPS_UPDATE_TIMEOUT":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_UPDATE_TIMEOUT %q: %w", value, err)
		}
		if secs <= 0 {
			return fmt.Errorf("GPS_UPDATE_TIMEOUT must be positive, got %d", secs)
		}
		c.GPSUpdateTimeout = secs
	case "GPS_DEBUG":
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_DEBUG %q: %w", value, err)
		}
		c.GPSDebug = debug

	// PPS status LED
	case "PPS_MODE":
		c.PPSMode = strings.ToLower(value)
	case "PPS_PULSE_WIDTH":
		width, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid PPS_PULSE_WIDTH %q: %w", value, err)
		}
		if width < 1 || width > 999 {
			return fmt.Errorf("PPS_PULSE_WIDTH must be 1-999 ms, got %d", width)
		}
		c.PPSPulseWidth = width

	// Web server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicGPSFix == "" {
		return fmt.Errorf("TOPIC_GPS_FIX is required")
	}
	if c.GPSBus == "" {
		return fmt.Errorf("GPS_BUS is required")
	}
	if c.GPSBus == "serial" {
		if c.GPSSerialPort == "" {
			return fmt.Errorf("GPS_SERIAL_PORT is required when GPS_BUS=serial")
		}
		if c.GPSBaudRate == 0 {
			return fmt.Errorf("GPS_BAUD_RATE is required when GPS_BUS=serial")
		}
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses
// sync.Once so initialization only runs once, even if called from
// multiple entry points.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be
// called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
