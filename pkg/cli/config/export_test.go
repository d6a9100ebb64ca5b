package config

// NewServerForTest creates a Server config for testing purposes
func NewServerForTest(configPath string, corsOrigins []string) *Server {
	return &Server{
		configPath:  configPath,
		corsOrigins: corsOrigins,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
