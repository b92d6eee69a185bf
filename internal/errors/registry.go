package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Setup Errors (Q001-Q019)
	// ============================================

	"Q001": {
		Category:   CategorySetup,
		Message:    "Selector matched no elements",
		Detail:     "A component was bound to a selector that matched nothing in the host document. The markup and the selector disagree.",
		Suggestion: "Check the selector against the host page markup",
	},
	"Q002": {
		Category: CategorySetup,
		Message:  "Invalid selector",
		Detail:   "The selector could not be parsed as CSS.",
	},
	"Q003": {
		Category: CategorySetup,
		Message:  "Initial render failed",
		Detail:   "The component returned an error while rendering its first markup.",
	},
	"Q004": {
		Category: CategorySetup,
		Message:  "Template compile failed",
		Detail:   "A component template could not be parsed.",
	},

	// ============================================
	// Runtime Errors (Q020-Q039)
	// ============================================

	"Q020": {
		Category: CategoryRuntime,
		Message:  "Missing state key",
		Detail:   "No value is stored under this name and type.",
	},
	"Q021": {
		Category: CategoryRuntime,
		Message:  "Render failed",
		Detail:   "A component returned an error while re-rendering. Its previous markup was kept.",
	},
	"Q022": {
		Category: CategoryRuntime,
		Message:  "Markup patch failed",
		Detail:   "Rendered markup could not be applied to the host element.",
	},

	// ============================================
	// Invariant Errors (Q040-Q059)
	// ============================================

	"Q040": {
		Category:   CategoryInvariant,
		Message:    "Reentrant state access",
		Detail:     "State was mutated while it was already borrowed, or while a render was in progress. Renders must not write state.",
		Suggestion: "Move the write into an event handler",
	},
	"Q041": {
		Category: CategoryInvariant,
		Message:  "State type mismatch",
		Detail:   "A stored value did not have the type encoded in its key.",
	},

	// ============================================
	// Config Errors (Q060-Q079)
	// ============================================

	"Q060": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "quasar.yaml could not be read or parsed.",
	},
	"Q061": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// CLI Errors (Q080-Q099)
	// ============================================

	"Q080": {
		Category:   CategoryCLI,
		Message:    "Unknown demo app",
		Suggestion: "Run `quasar render --help` to list the available apps",
	},
	"Q081": {
		Category: CategoryCLI,
		Message:  "Export failed",
		Detail:   "The rendered snapshot could not be written.",
	},
	"Q082": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
