package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultMaxCombinations uint64 = 10_000_000

var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	MaxCombinations uint64        `mapstructure:"max_combinations"` // Items with more combinations are rejected; 0 disables the limit
	Workers         int           `mapstructure:"workers"`          // Items evaluated concurrently
	Timeout         time.Duration `mapstructure:"timeout"`          // Deadline for the whole evaluation; 0 disables it
	Debug           bool          `mapstructure:"debug"`
}

func Default() Settings {
	return Settings{
		MaxCombinations: DefaultMaxCombinations,
		Workers:         runtime.NumCPU(),
	}
}

// Reads settings from a JSON or YAML file. Keys missing from the file keep their default value
func Load(file string) (Settings, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Settings{}, errors.Wrap(err, "cannot read settings file")
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		err = json.Unmarshal(bytes, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		return Settings{}, errors.Wrapf(ErrInvalidSettings, "unsupported settings format %q", file)
	}
	if err != nil {
		return Settings{}, errors.Wrapf(err, "malformed settings file %q", file)
	}

	settings := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(durationStringHook, mapstructure.StringToTimeDurationHookFunc()),
		ErrorUnused: true,
		Result:      &settings,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Settings{}, errors.Wrapf(ErrInvalidSettings, "%v", err)
	}

	return settings, settings.Validate()
}

// Durations must be written as strings (e.g. "30s"); a bare number would otherwise be read as nanoseconds
func durationStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to == reflect.TypeOf(time.Duration(0)) && from.Kind() != reflect.String {
		return nil, fmt.Errorf("duration %v must be a string such as \"30s\"", data)
	}
	return data, nil
}

func (settings Settings) Validate() error {
	if settings.Workers < 0 {
		return errors.Wrapf(ErrInvalidSettings, "workers must not be negative: %v", settings.Workers)
	} else if settings.Timeout < 0 {
		return errors.Wrapf(ErrInvalidSettings, "timeout must not be negative: %v", settings.Timeout)
	}
	return nil
}
