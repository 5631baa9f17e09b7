// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the environment-tunable settings of the serving
// pipeline surrounding the parser.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the settings consumed by the sequence registry and by
// the payload size guard of the transport layer.
type Config struct {
	// SequenceTimeout is the idle time after which a sequence is
	// evicted by the sweeper.
	SequenceTimeout time.Duration `split_words:"true" default:"2m"`
	// MaxSequences bounds the number of live sequences; zero or a
	// negative value means unbounded.
	MaxSequences int `split_words:"true" default:"512"`
	// SweepInterval is the period of the timeout sweeper.
	SweepInterval time.Duration `split_words:"true" default:"30s"`
	// MaxPayloadBytes is the request payload size limit enforced with
	// RequestParser.ParseLimited; zero or a negative value disables it.
	MaxPayloadBytes int `split_words:"true" default:"67108864"`
}

// FromEnv loads the configuration from TENSORJSON_* environment
// variables, falling back to defaults for unset ones.
func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("tensorjson", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
