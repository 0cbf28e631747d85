// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/TFMV/TextVectorPro/pkg/db"
)

type Config struct {
	DBCreds  db.DBCreds `yaml:"db_creds"`
	Server   Server     `yaml:"server"`
	Pipeline Pipeline   `yaml:"pipeline"`
}

type Server struct {
	Port     string `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

type Pipeline struct {
	LexiconPath    string   `yaml:"lexicon_path"`
	Reduction      string   `yaml:"reduction"`
	KeepTokens     bool     `yaml:"keep_tokens"`
	Workers        int      `yaml:"workers"`
	Components     int      `yaml:"components"`
	MinTokenLength int      `yaml:"min_token_length"`
	Stopwords      []string `yaml:"stopwords"`
	ModelPath      string   `yaml:"model_path"`
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %v", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %v", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.Env == "" {
		config.Server.Env = "prod"
	}
	if config.Pipeline.Reduction == "" {
		config.Pipeline.Reduction = "sum"
	}
	if config.Pipeline.Workers < 1 {
		config.Pipeline.Workers = 1
	}
	if config.Pipeline.MinTokenLength < 1 {
		config.Pipeline.MinTokenLength = 1
	}
}
