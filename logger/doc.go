// Package logger provides structured logging for the Whispir client using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("httpclient")
//	log.Info("request sent", logger.Fields("status", 202))
package logger
