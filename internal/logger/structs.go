package logger

import (
	"time"
)

// Console implements a console based logger.
type Console struct {
	Enabled          bool
	UseConsoleWriter bool
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool
	Path    string

	AccessLog        string `mapstructure:"access"`
	AccessMaxSize    int
	AccessMaxBackups int
	AccessMaxAge     int

	ErrorLog        string `mapstructure:"error"`
	ErrorMaxSize    int
	ErrorMaxBackups int
	ErrorMaxAge     int

	InfoLog        string `mapstructure:"info"`
	InfoMaxSize    int
	InfoMaxBackups int
	InfoMaxAge     int

	TraceLog        string `mapstructure:"trace"`
	TraceMaxSize    int
	TraceMaxBackups int
	TraceMaxAge     int

	WarnLog        string `mapstructure:"warn"`
	WarnMaxSize    int
	WarnMaxBackups int
	WarnMaxAge     int
}

// DataDog implements a datadog config.
type DataDog struct {
	Enabled     bool
	APIKey      string        // API Key defined at datadog
	Site        string        // Regional Site aka DD_SITE ("datadoghq.eu")
	ServiceName string        // service tag, defaults to Log.ServiceName
	MinLevel    string        // lowest level shipped, default warn
	Timeout     time.Duration // how long to wait to send a log entry to datadog.
}

// Log implements the logger config.
type Log struct {
	LogLevel string // info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole if true the access log is written to the console as well.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /healthz calls

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	// File based rolling logs.
	File LogFile

	// DataDog log shipping.
	DataDog DataDog
}
