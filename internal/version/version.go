// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - YAML scenarios, headless simulate command, energy diagnostics
// 0.2.0 - Mouse hover info, body dragging, camera zoom and pan
// 0.1.0 - Initial release: solar preset, merges, trails, console setup
