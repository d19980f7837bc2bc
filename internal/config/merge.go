package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML keys.
const (
	keyAssumptions = "assumptions"
	keyOutput      = "output"
	keyLogging     = "logging"
	keyFabrication = "fabrication"
	keyCache       = "cache"
	keyProcessing  = "processing"
)

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. A section present in the file replaces the target's section;
// fields it leaves out take their built-in defaults, not the target's
// current values. Sections absent from the file and unknown keys are left
// alone.
func ShallowMergeYAML(target *Config, path string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}

	defaults := New()
	for key, node := range overlay {
		if err = mergeSection(target, defaults, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}
	return nil
}

func mergeSection(target, defaults *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAssumptions:
		v := defaults.Assumptions
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Assumptions = v
	case keyOutput:
		v := defaults.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := defaults.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyFabrication:
		v := defaults.Fabrication
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Fabrication = v
	case keyCache:
		v := defaults.Cache
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	case keyProcessing:
		v := defaults.Processing
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Processing = v
	}
	return nil
}
