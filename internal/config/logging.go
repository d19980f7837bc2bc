package config

import "github.com/rshade/greenroi/internal/logging"

// ToLoggingConfig converts the logging section for the logging package.
// A configured File switches output to the file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
