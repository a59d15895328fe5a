// Package logger builds the diagnostic logger shared by the CLI and sessions.
package logger
