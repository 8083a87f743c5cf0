package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

const defaultConfigFile = "rainyday.yml"

type rainyConfig struct {
	Prompt      string `yaml:"prompt"`
	ScriptDir   string `yaml:"scriptDir"`
	HistoryFile string `yaml:"historyFile"`
	Symbols     bool   `yaml:"symbols"`
}

func defaultConfig() rainyConfig {
	return rainyConfig{
		Prompt:      "@> ",
		ScriptDir:   ".",
		HistoryFile: ".rainyday_history",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (rainyConfig, error) {
	cfg := defaultConfig()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, tracerr.Wrap(err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg rainyConfig) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}

	fi, err := os.Create(path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer fi.Close()

	_, err = fi.Write(out)
	return tracerr.Wrap(err)
}

// scriptPath resolves a script name the way `run` does: relative names are
// looked up in the script directory.
func (c rainyConfig) scriptPath(name string) string {
	if filepath.IsAbs(name) || c.ScriptDir == "" {
		return name
	}
	return filepath.Join(c.ScriptDir, name)
}
