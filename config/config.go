//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package config holds peacemakerd's on-disk configuration: a small YAML
// document, not a new configuration framework. CLI flags (cmd/peacemakerd)
// take precedence over whatever this file sets, the same "flags win, file
// fills gaps" precedence the teacher applies between its CLI flags and
// their hard-coded defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of peacemakerd's --config file.
type Config struct {
	StateDir       string `yaml:"state_dir"`
	SocketPath     string `yaml:"socket_path"`
	ProtectedPID   uint32 `yaml:"protected_pid"`
	WalkerPID      int    `yaml:"walker_pid"`
	MaxStackFrames int    `yaml:"max_stack_frames"`
	LogLevel       string `yaml:"log_level"`
	// LogFormat is parsed but not consulted by peacemakerd: log output
	// always uses logrus's text formatter.
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the configuration peacemakerd runs with when no
// --config file is supplied.
func Defaults() Config {
	return Config{
		StateDir:       "/var/lib/peacemaker",
		SocketPath:     "/run/peacemaker/control.sock",
		MaxStackFrames: 30, // MAX_STACK_RETURN_HISTORY, spec §6
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads and parses the YAML configuration file at path, overlaying it
// onto Defaults(). A missing file is not an error: it yields the defaults
// unchanged, mirroring persist.Store.Restore's "absent means empty, not a
// failure" treatment of missing on-disk state.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}
