package sprinkles

import "github.com/zoobzio/capitan"

// Registry reload signals.
var (
	// RegistryReloaded is emitted after a new resolver replaced the current one.
	RegistryReloaded = capitan.NewSignal(
		"sprinkles.registry.reloaded",
		"Atom configuration reloaded",
	)

	// RegistryReloadFailed is emitted when loading or merging the files fails.
	// The previous resolver stays in place.
	RegistryReloadFailed = capitan.NewSignal(
		"sprinkles.registry.reload.failed",
		"Atom configuration reload failed",
	)
)

// Registry watch signals.
var (
	RegistryWatchStarted = capitan.NewSignal(
		"sprinkles.registry.watch.started",
		"Watching atom configuration files",
	)

	RegistryWatchStopped = capitan.NewSignal(
		"sprinkles.registry.watch.stopped",
		"Stopped watching atom configuration files",
	)
)
