package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://ember.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Build errors (E001-E009)

	"E001": {
		Category: CategoryBuild,
		Message:  "Mount target is missing",
		Detail:   "Mount needs a host container to attach the tree to. Nothing was created or inserted.",
		DocURL:   docBase + "E001",
	},
	"E002": {
		Category: CategoryBuild,
		Message:  "Conditional block without a predicate",
		Detail:   "If and ElseIf require a predicate function. Use Else for the fallback branch.",
		DocURL:   docBase + "E002",
	},
	"E003": {
		Category: CategoryBuild,
		Message:  "Unsupported expression result",
		Detail:   "A dynamic expression must return a scalar (string, number, boolean, fmt.Stringer) or a slice of children.",
		DocURL:   docBase + "E003",
	},
	"E004": {
		Category: CategoryBuild,
		Message:  "Unsupported child",
		Detail:   "Children must be nodes, scalars, zero-argument functions or slices of those.",
		DocURL:   docBase + "E004",
	},

	// Runtime errors (E010-E019)

	"E010": {
		Category: CategoryRuntime,
		Message:  "List refresh failed",
		Detail:   "A keyed list could not build one of its new items. The item was skipped.",
		DocURL:   docBase + "E010",
	},
	"E011": {
		Category: CategoryRuntime,
		Message:  "Binding write rejected",
		Detail:   "The host value could not be converted to the bound store's type.",
		DocURL:   docBase + "E011",
	},

	// Config errors (E020-E029)

	"E020": {
		Category: CategoryConfig,
		Message:  "Configuration file is malformed",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   docBase + "E020",
	},
	"E021": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or has the wrong form.",
		DocURL:   docBase + "E021",
	},
	"E022": {
		Category: CategoryConfig,
		Message:  "Configuration file not readable",
		Detail:   "The configuration file exists but could not be read.",
		DocURL:   docBase + "E022",
	},

	// CLI errors (E030-E039)

	"E030": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo is not registered.",
		DocURL:   docBase + "E030",
	},
	"E031": {
		Category: CategoryCLI,
		Message:  "Invalid state step",
		Detail:   "State steps have the form action or action:argument.",
		DocURL:   docBase + "E031",
	},

	// Export errors (E040-E049)

	"E040": {
		Category: CategoryExport,
		Message:  "Invalid export target",
		Detail:   "Export targets are a file path, file://path or s3://bucket/key.",
		DocURL:   docBase + "E040",
	},
	"E041": {
		Category: CategoryExport,
		Message:  "Export failed",
		Detail:   "The snapshot could not be written to its target.",
		DocURL:   docBase + "E041",
	},

	// Preview errors (E050-E059)

	"E050": {
		Category: CategoryPreview,
		Message:  "Preview node not found",
		Detail:   "The event names a node id that is not part of the rendered document.",
		DocURL:   docBase + "E050",
	},
	"E051": {
		Category: CategoryPreview,
		Message:  "Preview server failed",
		Detail:   "The preview server stopped unexpectedly.",
		DocURL:   docBase + "E051",
	},
	"E052": {
		Category: CategoryPreview,
		Message:  "Malformed preview request",
		Detail:   "Event requests take a numeric node id and an optional JSON body.",
		DocURL:   docBase + "E052",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
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
