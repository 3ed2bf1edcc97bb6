package sprinkles

import "github.com/zoobzio/capitan"

// Field keys for Registry events.
var (
	// KeyPath is the configuration file that triggered a reload, empty for
	// explicit reloads.
	KeyPath = capitan.NewStringKey("path")

	KeyError = capitan.NewStringKey("error")

	// KeyFiles is the number of configuration files.
	KeyFiles = capitan.NewIntKey("files")

	// KeyProperties is the number of properties the new resolver recognizes.
	KeyProperties = capitan.NewIntKey("properties")

	KeyDebounce = capitan.NewDurationKey("debounce")
)
