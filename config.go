// SPDX-License-Identifier: MIT
package lex

import "github.com/sirupsen/logrus"

// Config configures a Scanner's (or ScannerPool's) operations.
//
// This is the teacher's lexer.Config/lexer.Opts "Validate fills in defaults"
// idiom, generalized from a string-splitting lexer's config to the
// rule-table-driven Scanner.
type Config struct {
	Logger logrus.FieldLogger
	Debug  bool
}

// DefaultConfig returns a Config with a default logrus logger.
func DefaultConfig() *Config {
	return &Config{Logger: logrus.New()}
}

// Validate populates missing Config entries with defaults. Safe to call on
// the zero Config.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}
