package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Scheduling mode
// --------------------------------------------------------------------------

// Mode selects how the listener schedules connection handling.
type Mode string

const (
	// ModeConcurrent spawns one goroutine per accepted connection with no
	// pool and no connection limit (fire-and-forget).
	ModeConcurrent Mode = "concurrent"

	// ModeSequential handles each connection inline before accepting the
	// next one.
	ModeSequential Mode = "sequential"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeConcurrent:
		return ModeConcurrent, nil
	case ModeSequential:
		return ModeSequential, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected one of: concurrent, sequential)", s)
	}
}

// --------------------------------------------------------------------------
// Record service server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the record service.
type ServerConfig struct {
	// The address on which the line protocol listens
	Endpoint string

	// Scheduling model for accepted connections
	Mode Mode

	// Per-connection read/write deadline in seconds (0 disables)
	TimeoutSecond int

	// File paths
	GradesPath string
	RosterPath string

	// NRC catalog service parameters
	NRCEndpoint      string
	NRCTimeoutSecond int

	// Optional HTTP endpoint exposing Prometheus-format metrics
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Record Server")
	addField("Endpoint", c.Endpoint)
	addField("Mode", string(c.Mode))
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Storage")
	addField("Grades CSV", c.GradesPath)
	addField("Roster CSV", c.RosterPath)

	addSection("NRC Catalog")
	addField("Endpoint", c.NRCEndpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.NRCTimeoutSecond))

	if c.MetricsEndpoint != "" {
		addSection("Metrics")
		addField("Endpoint", c.MetricsEndpoint)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// NRC catalog server configuration struct
// --------------------------------------------------------------------------

// NRCServerConfig holds all configuration parameters for the catalog
// microservice.
type NRCServerConfig struct {
	Endpoint      string
	CatalogPath   string
	TimeoutSecond int
	LogLevel      string
}

// String returns a formatted string representation of the configuration
func (c *NRCServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("NRC Catalog Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Storage")
	addField("Catalog CSV", c.CatalogPath)

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the parameters of a one-shot protocol client. The
// protocol is single-command-per-connection, so there is no pooling and no
// retry; every call dials, sends one line, reads one line and closes.
type ClientConfig struct {
	Endpoint      string
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	return sb.String()
}
