package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// configYAML mirrors ConfigData with YAML tags
type configYAML struct {
	Dataset struct {
		Path string `yaml:"path"`
	} `yaml:"dataset"`
	Controllers []struct {
		Type       string `yaml:"type"`
		RESTServer *struct {
			Cert       string `yaml:"cert,omitempty"`
			Key        string `yaml:"key,omitempty"`
			Port       int    `yaml:"port,omitempty"`
			ListenAddr string `yaml:"listen-addr,omitempty"`
			PageTitle  string `yaml:"page-title,omitempty"`
		} `yaml:"rest,omitempty"`
	} `yaml:"controllers,omitempty"`
	Logging struct {
		File       string `yaml:"file,omitempty"`
		MaxSizeMB  int    `yaml:"max-size-mb,omitempty"`
		MaxBackups int    `yaml:"max-backups,omitempty"`
		MaxAgeDays int    `yaml:"max-age-days,omitempty"`
	} `yaml:"logging,omitempty"`
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig configYAML
	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", y.filename, err)
	}

	// Convert to our internal format
	config := &ConfigData{
		Dataset:     DatasetData{Path: yamlConfig.Dataset.Path},
		Controllers: make([]ControllerData, len(yamlConfig.Controllers)),
		Logging: LoggingData{
			File:       yamlConfig.Logging.File,
			MaxSizeMB:  yamlConfig.Logging.MaxSizeMB,
			MaxBackups: yamlConfig.Logging.MaxBackups,
			MaxAgeDays: yamlConfig.Logging.MaxAgeDays,
		},
	}

	for i, controller := range yamlConfig.Controllers {
		config.Controllers[i] = ControllerData{Type: controller.Type}
		if controller.RESTServer != nil {
			config.Controllers[i].RESTServer = &RESTServerData{
				Cert:       controller.RESTServer.Cert,
				Key:        controller.RESTServer.Key,
				Port:       controller.RESTServer.Port,
				ListenAddr: controller.RESTServer.ListenAddr,
				PageTitle:  controller.RESTServer.PageTitle,
			}
		}
	}

	config.ApplyDefaults()
	return config, nil
}

// GetDataset returns the dataset configuration
func (y *YAMLProvider) GetDataset() (*DatasetData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Dataset, nil
}

// GetControllers returns controller configurations
func (y *YAMLProvider) GetControllers() ([]ControllerData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return config.Controllers, nil
}

// GetLogging returns the logging configuration
func (y *YAMLProvider) GetLogging() (*LoggingData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Logging, nil
}

// IsReadOnly returns true as YAML files are treated as read-only
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}
