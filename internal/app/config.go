package app

// Config contains the runtime configuration for the orchestrator. Keep this
// small; add fields as wiring requires them.
type Config struct {
	// StorageRoot is the base path where the report database is kept.
	StorageRoot string

	// DatabaseFile is the SQLite file name created under StorageRoot.
	DatabaseFile string

	// SubscriberBuffer is the per-subscriber channel buffer for report
	// broadcasts. Slow subscribers drop reports rather than block analyses.
	SubscriberBuffer int
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		StorageRoot:      "~/.config/pagesentry",
		DatabaseFile:     "pagesentry.db",
		SubscriberBuffer: 16,
	}
}
