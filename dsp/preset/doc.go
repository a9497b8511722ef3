// Package preset maps voice preset names to pipeline graphs.
//
// A Registry is populated once, either programmatically through Register or
// from a YAML preset table through Load, then sealed and shared read-only.
// Default returns the sealed registry built from the embedded presets.yaml.
package preset
