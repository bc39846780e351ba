// thermal-tracker - track warm moving objects across a low-resolution
// thermal sensor grid
//  Copyright (C) 2018, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package hostconfig loads the on-disk YAML configuration a host binary
// needs to assemble a tracker, its active-window gate and its
// event-reporting policy.
package hostconfig

import (
	"errors"
	"io/ioutil"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/thermal-tracker/report"
	"github.com/TheCacophonyProject/thermal-tracker/tracker"
)

// Config is the fully resolved, validated host configuration.
type Config struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Tracker     tracker.Config
	Throttle    report.ThrottleConfig
}

// Validate reports any configuration that would make the host behave
// nonsensically.
func (c *Config) Validate() error {
	if c.WindowStart.IsZero() && !c.WindowEnd.IsZero() {
		return errors.New("window-end is set but window-start isn't")
	}
	if !c.WindowStart.IsZero() && c.WindowEnd.IsZero() {
		return errors.New("window-start is set but window-end isn't")
	}
	return c.Tracker.Validate()
}

type rawConfig struct {
	WindowStart string                `yaml:"window-start"`
	WindowEnd   string                `yaml:"window-end"`
	Tracker     tracker.Config        `yaml:"tracker"`
	Throttle    report.ThrottleConfig `yaml:"throttle"`
}

func defaultConfig() rawConfig {
	return rawConfig{
		Tracker:  tracker.DefaultConfig(),
		Throttle: report.DefaultThrottleConfig(),
	}
}

// ParseConfigFile reads and parses the YAML file at filename.
func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(buf)
}

// ParseConfig parses buf as YAML, merging it over the documented
// defaults, and validates the result.
func ParseConfig(buf []byte) (*Config, error) {
	raw := defaultConfig()
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return nil, err
	}

	conf := &Config{
		Tracker:  raw.Tracker,
		Throttle: raw.Throttle,
	}

	const timeOnly = "15:04"
	if raw.WindowStart != "" {
		t, err := time.Parse(timeOnly, raw.WindowStart)
		if err != nil {
			return nil, errors.New("invalid window-start")
		}
		conf.WindowStart = t
	}
	if raw.WindowEnd != "" {
		t, err := time.Parse(timeOnly, raw.WindowEnd)
		if err != nil {
			return nil, errors.New("invalid window-end")
		}
		conf.WindowEnd = t
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}
