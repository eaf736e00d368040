package validation

import (
	"fmt"
	"strings"
)

// =============================================================================
// Recipe-Level Validators
// =============================================================================

// fargateTaskMemoryRanges maps a Fargate task CPU value to the inclusive
// memory range (in MiB) that CPU size supports.
var fargateTaskMemoryRanges = map[int][2]int{
	256:  {512, 2048},
	512:  {1024, 4096},
	1024: {2048, 8192},
	2048: {4096, 16384},
	4096: {8192, 30720},
}

// FargateTaskSizeCpuMemoryLimitsValidator checks that a task's CPU and memory
// settings form a combination Fargate accepts.
type FargateTaskSizeCpuMemoryLimitsValidator struct {
	CpuSettingId            string `json:"cpuSettingId"`
	MemorySettingId         string `json:"memorySettingId"`
	ValidationFailedMessage string `json:"validationFailedMessage"`
}

// NewFargateTaskSizeCpuMemoryLimitsValidator returns a validator bound to the
// conventional TaskCpu/TaskMemory setting ids.
func NewFargateTaskSizeCpuMemoryLimitsValidator() *FargateTaskSizeCpuMemoryLimitsValidator {
	return &FargateTaskSizeCpuMemoryLimitsValidator{
		CpuSettingId:    "TaskCpu",
		MemorySettingId: "TaskMemory",
	}
}

func (v *FargateTaskSizeCpuMemoryLimitsValidator) Validate(source SettingsSource) Result {
	cpuValue, err := source.ResolveValue(v.CpuSettingId)
	if err != nil {
		return Fail(v.message(fmt.Sprintf("Setting %q could not be resolved.", v.CpuSettingId)))
	}
	memoryValue, err := source.ResolveValue(v.MemorySettingId)
	if err != nil {
		return Fail(v.message(fmt.Sprintf("Setting %q could not be resolved.", v.MemorySettingId)))
	}

	cpuFloat, ok := toFloat(cpuValue)
	if !ok {
		return Fail(v.message(fmt.Sprintf("Setting %q must be numeric.", v.CpuSettingId)))
	}
	memoryFloat, ok := toFloat(memoryValue)
	if !ok {
		return Fail(v.message(fmt.Sprintf("Setting %q must be numeric.", v.MemorySettingId)))
	}
	cpu, memory := int(cpuFloat), int(memoryFloat)

	memoryRange, ok := fargateTaskMemoryRanges[cpu]
	if !ok {
		return Fail(v.message(fmt.Sprintf("CPU value %d is not a supported Fargate task size.", cpu)))
	}
	if memory < memoryRange[0] || memory > memoryRange[1] {
		return Fail(v.message(fmt.Sprintf(
			"Memory value %d MiB is outside the supported range %d-%d MiB for %d CPU units.",
			memory, memoryRange[0], memoryRange[1], cpu)))
	}
	// Every supported size above the 256/512 pairing is a 1 GiB increment.
	if memory != 512 && memory%1024 != 0 {
		return Fail(v.message(fmt.Sprintf(
			"Memory value %d MiB must be a 1024 MiB increment.", memory)))
	}
	return Pass()
}

func (v *FargateTaskSizeCpuMemoryLimitsValidator) message(fallback string) string {
	if v.ValidationFailedMessage != "" {
		return v.ValidationFailedMessage
	}
	return fallback
}

// RequiredSettingValidator checks that a named setting resolves to a
// non-empty value.
type RequiredSettingValidator struct {
	SettingId               string `json:"settingId"`
	ValidationFailedMessage string `json:"validationFailedMessage"`
}

// NewRequiredSettingValidator returns a RequiredSettingValidator with default
// messaging.
func NewRequiredSettingValidator() *RequiredSettingValidator {
	return &RequiredSettingValidator{}
}

func (v *RequiredSettingValidator) Validate(source SettingsSource) Result {
	value, err := source.ResolveValue(v.SettingId)
	if err != nil {
		return Fail(v.message())
	}
	if strings.TrimSpace(stringify(value)) == "" {
		return Fail(v.message())
	}
	return Pass()
}

func (v *RequiredSettingValidator) message() string {
	if v.ValidationFailedMessage != "" {
		return v.ValidationFailedMessage
	}
	return fmt.Sprintf("Setting %q requires a value.", v.SettingId)
}
