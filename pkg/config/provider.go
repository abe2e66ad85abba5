package config

import (
	"errors"
	"fmt"
	"os"
)

// Defaults applied when a value is not configured
const (
	DefaultListenAddr = "0.0.0.0"
	DefaultHTTPPort   = 8080
	DefaultPageTitle  = "Bike Sharing Dashboard"

	// DatasetEnvVar overrides the configured dataset path when set
	DatasetEnvVar = "BIKEDASH_DATASET"
)

var (
	// ErrNoDataset is returned by Validate when no dataset path is configured
	ErrNoDataset = errors.New("dataset path is not configured")
	// ErrNoControllers is returned by Validate when nothing would serve the dashboard
	ErrNoControllers = errors.New("no controllers configured")
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetDataset() (*DatasetData, error)
	GetControllers() ([]ControllerData, error)
	GetLogging() (*LoggingData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Dataset     DatasetData      `json:"dataset"`
	Controllers []ControllerData `json:"controllers,omitempty"`
	Logging     LoggingData      `json:"logging,omitempty"`
}

// DatasetData points at the cleaned daily rental CSV
type DatasetData struct {
	Path string `json:"path"`
}

// ControllerData holds the configuration for the controllers that serve the dashboard
type ControllerData struct {
	Type       string          `json:"type,omitempty"`
	RESTServer *RESTServerData `json:"rest,omitempty"`
}

// RESTServerData configures the dashboard HTTP server
type RESTServerData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	PageTitle  string `json:"page_title,omitempty"`
}

// LoggingData configures an optional rotating log file
type LoggingData struct {
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
}

// knownControllerTypes are the controller types the controller manager can build
var knownControllerTypes = map[string]bool{
	"rest":       true,
	"restserver": true,
}

// Validate checks that the configuration can run a dashboard
func (c *ConfigData) Validate() error {
	if c.Dataset.Path == "" {
		return ErrNoDataset
	}
	if len(c.Controllers) == 0 {
		return ErrNoControllers
	}
	for i, con := range c.Controllers {
		if !knownControllerTypes[con.Type] {
			return fmt.Errorf("controller %d: unknown controller type: %q", i, con.Type)
		}
	}
	return nil
}

// ApplyDefaults fills in unset values and applies environment overrides
func (c *ConfigData) ApplyDefaults() {
	if p := os.Getenv(DatasetEnvVar); p != "" {
		c.Dataset.Path = p
	}
	for i := range c.Controllers {
		if c.Controllers[i].RESTServer == nil {
			c.Controllers[i].RESTServer = &RESTServerData{}
		}
		rc := c.Controllers[i].RESTServer
		if rc.ListenAddr == "" {
			rc.ListenAddr = DefaultListenAddr
		}
		if rc.Port == 0 {
			rc.Port = DefaultHTTPPort
		}
		if rc.PageTitle == "" {
			rc.PageTitle = DefaultPageTitle
		}
	}
	if c.Logging.File != "" {
		if c.Logging.MaxSizeMB == 0 {
			c.Logging.MaxSizeMB = 100
		}
		if c.Logging.MaxBackups == 0 {
			c.Logging.MaxBackups = 3
		}
		if c.Logging.MaxAgeDays == 0 {
			c.Logging.MaxAgeDays = 28
		}
	}
}
