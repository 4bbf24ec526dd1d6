package config

import (
	"errors"
	"fmt"
)

var validLogFormats = map[string]bool{"console": true, "json": true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validDevices = map[string]bool{"cpu": true, "metal": true, "cuda": true, "auto": true}

// Validate ensures the configuration is usable. Validation runs before
// any model load so invalid combinations are reported, not discovered
// mid-run.
func (c *Config) Validate() error {
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.Name == "" {
		return errors.New("model.name must be set")
	}
	if !validDevices[c.Model.Device] {
		return fmt.Errorf("model.device must be one of cpu, metal, cuda, auto (got %q)", c.Model.Device)
	}
	if c.Model.BeamSize <= 0 {
		return errors.New("model.beam_size must be positive")
	}
	if c.Model.NumWorkers <= 0 {
		return errors.New("model.num_workers must be positive")
	}
	if c.Model.CPUThreads < 0 {
		return errors.New("model.cpu_threads must not be negative")
	}
	if c.Model.DeviceIndex < 0 {
		return errors.New("model.device_index must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
