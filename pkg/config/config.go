package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the darkmode agent
type Config struct {
	// Observer location
	Latitude  float64
	Longitude float64

	// LocationFile is a YAML file providing latitude/longitude. Values set
	// via environment or flags take precedence over the file.
	LocationFile string

	// MQTT configuration (event publishing, optional)
	PublishEvents bool
	MQTTBroker    string
	MQTTPort      int
	MQTTUser      string
	MQTTPassword  string
	MQTTClientID  string

	// Service configuration
	ServiceName string
	Host        string
	LogLevel    string
}

// locationFile is the YAML shape of the location config file.
type locationFile struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// NewConfig creates a new Config with default values. Latitude and longitude
// default to NaN: the location must come from the location file, environment,
// or flags, and Validate rejects a config where none supplied it.
func NewConfig() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		Latitude:      math.NaN(),
		Longitude:     math.NaN(),
		LocationFile:  defaultLocationFile(),
		PublishEvents: false,
		MQTTBroker:    "localhost",
		MQTTPort:      1883,
		MQTTUser:      "",
		MQTTPassword:  "",
		MQTTClientID:  "",
		ServiceName:   "darkmode-agent",
		Host:          hostname,
		LogLevel:      "info",
	}
}

func defaultLocationFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "auto-darkmode", "location.yaml")
}

// LoadLocationFile reads latitude/longitude from the location file. The file
// is the lowest-priority source: it only fills in coordinates not already
// set via environment or flags, and a missing file is not an error since the
// location may arrive from those instead. A file that exists but cannot be
// parsed always is.
func (c *Config) LoadLocationFile() error {
	if c.LocationFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.LocationFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read location file %s: %w", c.LocationFile, err)
	}

	var loc locationFile
	if err := yaml.Unmarshal(data, &loc); err != nil {
		return fmt.Errorf("failed to parse location file %s: %w", c.LocationFile, err)
	}

	if math.IsNaN(c.Latitude) {
		c.Latitude = loc.Latitude
	}
	if math.IsNaN(c.Longitude) {
		c.Longitude = loc.Longitude
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables with DARKMODE_ prefix
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("DARKMODE_LATITUDE"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			c.Latitude = lat
		}
	}
	if v := os.Getenv("DARKMODE_LONGITUDE"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			c.Longitude = lon
		}
	}
	if v := os.Getenv("DARKMODE_LOCATION_FILE"); v != "" {
		c.LocationFile = v
	}

	// MQTT configuration
	if v := os.Getenv("DARKMODE_PUBLISH_EVENTS"); v != "" {
		if enable, err := strconv.ParseBool(v); err == nil {
			c.PublishEvents = enable
		}
	}
	if v := os.Getenv("DARKMODE_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("DARKMODE_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = port
		}
	}
	if v := os.Getenv("DARKMODE_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("DARKMODE_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("DARKMODE_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}

	// Service configuration
	if v := os.Getenv("DARKMODE_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("DARKMODE_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("DARKMODE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// LoadFromFlags parses command-line flags and overrides config values
func (c *Config) LoadFromFlags() {
	pflag.Float64Var(&c.Latitude, "latitude", c.Latitude, "Geographic latitude for sunrise/sunset calculation")
	pflag.Float64Var(&c.Longitude, "longitude", c.Longitude, "Geographic longitude for sunrise/sunset calculation")
	pflag.StringVar(&c.LocationFile, "location-file", c.LocationFile, "YAML file providing latitude/longitude")

	pflag.BoolVar(&c.PublishEvents, "publish-events", c.PublishEvents, "Publish mode transition events to MQTT")
	pflag.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	pflag.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	pflag.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	pflag.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	pflag.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")

	pflag.StringVar(&c.ServiceName, "service-name", c.ServiceName, "Service name")
	pflag.StringVar(&c.Host, "host", c.Host, "Host name used in published event topics")
	pflag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	pflag.Parse()
}

// Validate checks that required configuration values are set. The latitude
// and longitude checks are the module's fail-fast boundary: the solar
// calculator is only defined for finite, in-range coordinates and is never
// invoked with values that did not pass here.
func (c *Config) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return fmt.Errorf("location is required (set it in %s, or via DARKMODE_LATITUDE/DARKMODE_LONGITUDE, or --latitude/--longitude)", c.LocationFile)
	}
	if math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return fmt.Errorf("latitude and longitude must be finite")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %v", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %v", c.Longitude)
	}

	if c.PublishEvents {
		if c.MQTTBroker == "" {
			return fmt.Errorf("MQTT broker is required when event publishing is enabled")
		}
		if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
			return fmt.Errorf("MQTT port must be between 1 and 65535")
		}
		if c.Host == "" {
			return fmt.Errorf("host name is required when event publishing is enabled")
		}
	}

	if c.ServiceName == "" {
		return fmt.Errorf("Service name is required")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MQTTAddress returns the full MQTT broker address
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}
