package llmprovider

import (
	"fmt"
	"sync"
)

// Severity indicates how serious a validation warning is
type Severity string

const (
	SeverityInfo    Severity = "info"    // Informational (might be expected)
	SeverityWarning Severity = "warning" // Potentially problematic
)

// WarningCode is a machine-readable identifier for validation warnings
type WarningCode string

const (
	WarningCodeModelUnknown          WarningCode = "MODEL_UNKNOWN"
	WarningCodeModelDefaulted        WarningCode = "MODEL_DEFAULTED"
	WarningCodeTemperatureOutOfRange WarningCode = "TEMPERATURE_OUT_OF_RANGE"
)

// ValidationWarning represents a potential issue that might cause API failure.
// These are informational - requests are never blocked based on warnings.
type ValidationWarning struct {
	Code     WarningCode // Machine-readable code
	Field    string      // Field that might cause issues
	Value    any         // The potentially problematic value
	Message  string      // Human-readable warning
	Severity Severity    // How serious this warning is
}

// ValidationRule interface allows adding custom validation logic
type ValidationRule interface {
	// Name returns a human-readable name for this rule
	Name() string

	// Check inspects a request bound for provider and returns warnings
	Check(provider ProviderID, req *GenerateRequest) []ValidationWarning
}

// ValidationEngine manages validation rules and executes them
type ValidationEngine struct {
	rules []ValidationRule
	mu    sync.RWMutex
}

var (
	globalValidationEngine     *ValidationEngine
	globalValidationEngineOnce sync.Once
)

// GetValidationEngine returns the global validation engine (singleton)
func GetValidationEngine() *ValidationEngine {
	globalValidationEngineOnce.Do(func() {
		globalValidationEngine = &ValidationEngine{}
		globalValidationEngine.AddRule(&ModelValidationRule{catalog: GetBackendCatalog()})
		globalValidationEngine.AddRule(&TemperatureValidationRule{catalog: GetBackendCatalog()})
	})
	return globalValidationEngine
}

// AddRule adds a validation rule to the engine
func (ve *ValidationEngine) AddRule(rule ValidationRule) {
	ve.mu.Lock()
	defer ve.mu.Unlock()
	ve.rules = append(ve.rules, rule)
}

// Validate runs all validation rules and returns warnings
func (ve *ValidationEngine) Validate(provider ProviderID, req *GenerateRequest) []ValidationWarning {
	ve.mu.RLock()
	defer ve.mu.RUnlock()

	var warnings []ValidationWarning
	for _, rule := range ve.rules {
		warnings = append(warnings, rule.Check(provider, req)...)
	}
	return warnings
}

// GetValidationWarnings returns potential issues with a request.
// These are INFORMATIONAL - callers can choose to show warnings or ignore them.
func GetValidationWarnings(provider ProviderID, req *GenerateRequest) []ValidationWarning {
	return GetValidationEngine().Validate(provider, req)
}

// ModelValidationRule flags models missing from backends.yaml
type ModelValidationRule struct {
	catalog *BackendCatalog
}

func (r *ModelValidationRule) Name() string {
	return "Model Validation"
}

func (r *ModelValidationRule) Check(provider ProviderID, req *GenerateRequest) []ValidationWarning {
	spec, err := r.catalog.Get(provider)
	if err != nil {
		return nil
	}

	if req.Model == "" {
		return []ValidationWarning{{
			Code:     WarningCodeModelDefaulted,
			Field:    "model",
			Value:    spec.DefaultModel,
			Message:  fmt.Sprintf("No model set, %s will use %s", provider, spec.DefaultModel),
			Severity: SeverityInfo,
		}}
	}

	if !spec.IsKnownModel(req.Model) {
		return []ValidationWarning{{
			Code:     WarningCodeModelUnknown,
			Field:    "model",
			Value:    req.Model,
			Message:  fmt.Sprintf("Model %s not found in %s metadata (metadata may be outdated)", req.Model, provider),
			Severity: SeverityWarning,
		}}
	}
	return nil
}

// TemperatureValidationRule flags temperatures outside the backend's range
type TemperatureValidationRule struct {
	catalog *BackendCatalog
}

func (r *TemperatureValidationRule) Name() string {
	return "Temperature Validation"
}

func (r *TemperatureValidationRule) Check(provider ProviderID, req *GenerateRequest) []ValidationWarning {
	spec, err := r.catalog.Get(provider)
	if err != nil || spec.Temperature.Max == 0 {
		return nil
	}

	if req.Temperature < spec.Temperature.Min || req.Temperature > spec.Temperature.Max {
		return []ValidationWarning{{
			Code:     WarningCodeTemperatureOutOfRange,
			Field:    "temperature",
			Value:    req.Temperature,
			Message:  fmt.Sprintf("Temperature %g outside %s range [%g, %g]", req.Temperature, provider, spec.Temperature.Min, spec.Temperature.Max),
			Severity: SeverityWarning,
		}}
	}
	return nil
}
