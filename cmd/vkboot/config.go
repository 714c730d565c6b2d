// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/vkboot/core"
	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const defaultsFile = "default.env"

// flags holds the command line overrides.
type flags struct {
	envFile  string
	debug    bool
	logLevel string
}

// loadConfiguration reads the bundled defaults, loads the env file when one
// is given and applies the command line flags last.
func loadConfiguration(box packr.Box, f flags) (core.Configuration, error) {
	resource, err := box.FindString(defaultsFile)
	if err != nil {
		return core.Configuration{}, errors.Wrap(err, defaultsFile)
	}
	defaults, err := godotenv.Unmarshal(resource)
	if err != nil {
		return core.Configuration{}, errors.Wrap(err, defaultsFile)
	}

	if f.envFile != "" {
		if err := envy.Load(f.envFile); err != nil {
			return core.Configuration{}, errors.Wrap(err, f.envFile)
		}
	}

	cfg, err := core.LoadConfiguration(defaults)
	if err != nil {
		return core.Configuration{}, err
	}

	if f.debug {
		cfg.Instance.DebugMode = true
	}
	if f.logLevel != "" {
		level, err := log.ParseLevel(f.logLevel)
		if err != nil {
			return core.Configuration{}, errors.Wrap(err, "-loglevel")
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}
