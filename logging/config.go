package logging

// Config is the `logging` extension section of tour.yml.
type Config struct {
	// Level is the minimum log level. TOUR_LOG_LEVEL overrides it.
	Level string `yaml:"level"`

	// ReportCaller adds file, line and function to each entry.
	// TOUR_LOG_CALLER=true enables it too.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig configures the optional file sink. Nothing is written to
// disk unless Path is set.
type FileSinkConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format,omitempty"` // "text" (default) or "json"
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is "auto" (default), "always", or "never". In auto
	// mode entries reach stderr only when debugging or when stderr is not a
	// terminal, so they never tear through the TUI.
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
