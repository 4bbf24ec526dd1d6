package transcribe

import "whisperlite/internal/config"

// OptionsFromConfig maps the model configuration onto engine options.
// When a bundled model directory exists under the local model root, it
// replaces the model name and forces offline mode so the engine never
// reaches out to the network.
func OptionsFromConfig(m config.Model) Options {
	opts := Options{
		Model:        m.Name,
		Device:       m.Device,
		ComputeType:  m.ComputeType,
		DeviceIndex:  m.DeviceIndex,
		NumWorkers:   m.NumWorkers,
		CPUThreads:   m.CPUThreads,
		PythonBinary: m.PythonBinary,
	}
	if dir, ok := LocalModelDir(m.LocalModelRoot, m.Name); ok {
		opts.Model = dir
		opts.Offline = true
	}
	return opts
}
