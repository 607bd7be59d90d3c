package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Handle Errors (M100-M199)
	// ============================================

	"M101": {
		Category: CategoryRuntime,
		Message:  "Handle used before mount",
		Detail:   "An imperative operation was invoked before the component captured its native node. Call it from an event handler or after the component has mounted.",
	},
	"M102": {
		Category: CategoryRuntime,
		Message:  "Handle used after unmount",
		Detail:   "An imperative operation was invoked after the component was torn down. The native node is no longer reachable.",
	},
	"M103": {
		Category: CategoryRuntime,
		Message:  "Native call failed",
		Detail:   "The native node rejected or could not deliver the method call.",
	},

	// ============================================
	// Element Loading Errors (M200-M299)
	// ============================================

	"M201": {
		Category: CategoryLoader,
		Message:  "Custom element definition failed to load",
		Detail:   "The module defining the custom element could not be registered. No functionality of the element is available without it.",
	},
	"M202": {
		Category: CategoryLoader,
		Message:  "Asset not found",
		Detail:   "The asset source has no object under the requested name.",
	},

	// ============================================
	// Config Errors (M300-M399)
	// ============================================

	"M301": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 1 and 65535.",
	},
	"M302": {
		Category: CategoryConfig,
		Message:  "Ambiguous asset source",
		Detail:   "Configure either assets.dir or assets.s3, not both.",
	},
	"M303": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file could not be read or parsed.",
	},

	// ============================================
	// Build Errors (M400-M499)
	// ============================================

	"M401": {
		Category: CategoryBuild,
		Message:  "No asset directory",
		Detail:   "Fingerprinting needs a local module directory.",
	},
	"M402": {
		Category: CategoryBuild,
		Message:  "Fingerprint failed",
		Detail:   "A module could not be hashed or copied into the output directory.",
	},
	"M403": {
		Category: CategoryBuild,
		Message:  "Manifest write failed",
		Detail:   "The fingerprint manifest could not be written.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
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
