package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeModel()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.FallbackDir) == "" {
		c.Paths.FallbackDir = defaultFallbackDir
	}
	if c.Paths.FallbackDir, err = ExpandPath(c.Paths.FallbackDir); err != nil {
		return fmt.Errorf("paths.fallback_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = ExpandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Model.LocalModelRoot) != "" {
		if c.Model.LocalModelRoot, err = ExpandPath(c.Model.LocalModelRoot); err != nil {
			return fmt.Errorf("model.local_model_root: %w", err)
		}
	}
	c.Paths.Bind = strings.TrimSpace(c.Paths.Bind)
	if c.Paths.Bind == "" {
		c.Paths.Bind = defaultBind
	}
	return nil
}

func (c *Config) normalizeModel() {
	c.Model.Name = strings.TrimSpace(c.Model.Name)
	if c.Model.Name == "" {
		c.Model.Name = defaultModelName
	}
	c.Model.Device = strings.ToLower(strings.TrimSpace(c.Model.Device))
	if c.Model.Device == "" {
		c.Model.Device = defaultDevice
	}
	c.Model.ComputeType = strings.ToLower(strings.TrimSpace(c.Model.ComputeType))
	if c.Model.BeamSize == 0 {
		c.Model.BeamSize = defaultBeamSize
	}
	if c.Model.NumWorkers == 0 {
		c.Model.NumWorkers = defaultNumWorkers
	}
	if strings.TrimSpace(c.Model.PythonBinary) == "" {
		c.Model.PythonBinary = defaultPythonBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
