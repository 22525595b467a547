// ABOUTME: Build version constants
// ABOUTME: Identifies the voxdeck binary in logs and CLI output
package version

// Version is overridden at build time via -ldflags.
var Version = "0.1.0"

// Product is the user-facing application name.
const Product = "voxdeck"

// String returns "product/version" for logs and user agents.
func String() string {
	return Product + "/" + Version
}
