package config

import (
	"edusync/internal/agent"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional agents file
type YAMLConfig struct {
	Agents map[string]AgentOverride `yaml:"agents"`
}

// AgentOverride replaces parts of a built-in preset
type AgentOverride struct {
	Temperature *float32 `yaml:"temperature"`
	Instruction string   `yaml:"instruction"`
}

// LoadConfig loads the agents file at filepath
func LoadConfig(filepath string) (*YAMLConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading agents file: %w", err)
	}

	var config YAMLConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	for name, override := range config.Agents {
		if _, ok := agent.DefaultPresets()[name]; !ok {
			return nil, fmt.Errorf("unknown agent %q in %s", name, filepath)
		}
		if override.Temperature != nil && (*override.Temperature < 0 || *override.Temperature > 2) {
			return nil, fmt.Errorf("agent %q: temperature %.2f out of range [0, 2]", name, *override.Temperature)
		}
	}

	return &config, nil
}

// BuildPresets merges the overrides onto the built-in presets. A nil config
// yields the defaults unchanged.
func BuildPresets(config *YAMLConfig) map[string]agent.Preset {
	presets := agent.DefaultPresets()
	if config == nil {
		return presets
	}

	for name, override := range config.Agents {
		preset, ok := presets[name]
		if !ok {
			continue
		}
		if override.Temperature != nil {
			preset.Temperature = *override.Temperature
		}
		if override.Instruction != "" {
			preset.Instruction = override.Instruction
		}
		presets[name] = preset
	}

	return presets
}

// LoadPresets reads filepath when set and returns the merged presets
func LoadPresets(filepath string) (map[string]agent.Preset, error) {
	if filepath == "" {
		return agent.DefaultPresets(), nil
	}
	config, err := LoadConfig(filepath)
	if err != nil {
		return nil, err
	}
	return BuildPresets(config), nil
}
