package fiberlog

import "github.com/sirupsen/logrus"

// Config controls which request attributes become log fields and where
// the entries go.
type Config struct {
	// Logger receives the request entries. The logrus standard logger
	// is used when nil.
	Logger *logrus.Logger
	// Tags name the fields to extract per request, see tags.go.
	Tags []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
	},
}
