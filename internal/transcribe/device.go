package transcribe

import (
	"fmt"
	"runtime"
	"strings"
)

// Known device selectors accepted by the engine.
const (
	DeviceAuto  = "auto"
	DeviceCPU   = "cpu"
	DeviceMetal = "metal"
	DeviceCUDA  = "cuda"
)

var validDevices = map[string]bool{
	DeviceAuto:  true,
	DeviceCPU:   true,
	DeviceMetal: true,
	DeviceCUDA:  true,
}

// ValidateDevice checks a device selector before any model load happens.
func ValidateDevice(device string) error {
	if !validDevices[strings.ToLower(strings.TrimSpace(device))] {
		return fmt.Errorf("unknown device %q (expected cpu, metal, cuda, or auto)", device)
	}
	return nil
}

// ResolveDevice maps "auto" to the platform's preferred accelerator:
// metal on Apple Silicon, cpu everywhere else. Explicit selections pass
// through unchanged.
func ResolveDevice(device string) string {
	device = strings.ToLower(strings.TrimSpace(device))
	if device != DeviceAuto && device != "" {
		return device
	}
	if runtime.GOOS == "darwin" && (runtime.GOARCH == "arm64") {
		return DeviceMetal
	}
	return DeviceCPU
}

// NormalizeComputeType corrects precision selections the resolved device
// cannot execute. float16 variants are unavailable on CPU, so they drop to
// int8. The returned warning is non-empty when a substitution happened;
// callers are expected to log it rather than swallow the correction.
func NormalizeComputeType(device, computeType string) (string, string) {
	ct := strings.ToLower(strings.TrimSpace(computeType))
	if ct == "" {
		ct = "default"
	}
	if device == DeviceCPU && strings.HasPrefix(ct, "float16") {
		warning := fmt.Sprintf("compute type %q is not supported on cpu; using int8", computeType)
		return "int8", warning
	}
	return ct, ""
}

// DefaultComputeType picks the precision the front-ends start from when
// the user supplies none: float16 on accelerators, int8 on CPU.
func DefaultComputeType(device string) string {
	if device == DeviceCPU {
		return "int8"
	}
	return "float16"
}
