// Copyright 2023 Skiff Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

// Config holds the analyzer settings that can be loaded from a file.
type Config struct {
	// Debug enables analyzer debug logging.
	Debug bool `yaml:"debug"`
	// MaxSubqueryDepth overrides the default subquery nesting limit when
	// greater than zero.
	MaxSubqueryDepth int `yaml:"max_subquery_depth"`
}

// ReadConfigFile loads an analyzer configuration from a YAML file.
func ReadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// WriteConfigFile writes an analyzer configuration to a YAML file.
func WriteConfigFile(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(path, data, 0644)
}
