package classify

// Defaults applied by New, Scan, and the CLI configuration layer.
const (
	DefaultVerbose      = false
	DefaultTuiEnabled   = true
	DefaultConcurrency  = 0 // one worker per CPU
	DefaultOnErrorMode  = OnErrorContinue
	DefaultOutputFormat = OutputFormatText

	// ReportSchemaVersion identifies the JSON report layout.
	ReportSchemaVersion = "1.0"

	// languageSniffLen bounds how much of a file the optional language
	// detector reads.
	languageSniffLen = 16 * 1024
)
