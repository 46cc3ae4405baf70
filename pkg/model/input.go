package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported input format")

type RawTargetCoverage struct {
	Numbers           []uint64 `mapstructure:"numbers"`
	MinNumbersToCover uint64   `mapstructure:"min_numbers_to_cover"`
}

type RawItemSet struct {
	Tickets        [][]uint64        `mapstructure:"tickets"`
	TargetCoverage RawTargetCoverage `mapstructure:"target_coverage"`
	Expected       bool              `mapstructure:"expected"`
}

type RawProblemSet struct {
	Items []RawItemSet `mapstructure:"items"`
}

type TargetCoverage struct {
	Numbers           NumberSet
	MinNumbersToCover uint64 // k; it's compared against len(Numbers) only when combinations are generated
}

type ItemSet struct {
	Tickets        []NumberSet
	TargetCoverage TargetCoverage
	Expected       bool
}

type ProblemSet struct {
	Items []ItemSet
}

// Reads a problem set from a file whose format is inferred from its extension (".json", ".yaml" or ".yml")
func InputFromFile(file string) (ProblemSet, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return InputFromJson(file)
	case ".yaml", ".yml":
		return InputFromYaml(file)
	default:
		return ProblemSet{}, errors.Wrapf(ErrUnsupportedFormat, "file %q", file)
	}
}

func InputFromJson(file string) (ProblemSet, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return ProblemSet{}, errors.Wrap(err, "cannot read input file")
	}

	// Numbers are kept as json.Number so fractional values fail to decode into unsigned fields instead of being truncated
	var inputJson map[string]any
	jsonDecoder := json.NewDecoder(bytes.NewReader(content))
	jsonDecoder.UseNumber()
	if err := jsonDecoder.Decode(&inputJson); err != nil {
		return ProblemSet{}, errors.Wrapf(err, "malformed json in %q", file)
	}
	return decodeInput(inputJson, file)
}

func InputFromYaml(file string) (ProblemSet, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return ProblemSet{}, errors.Wrap(err, "cannot read input file")
	}

	var inputYaml map[string]any
	if err := yaml.Unmarshal(content, &inputYaml); err != nil {
		return ProblemSet{}, errors.Wrapf(err, "malformed yaml in %q", file)
	}
	return decodeInput(inputYaml, file)
}

func decodeInput(input map[string]any, file string) (ProblemSet, error) {
	var rawInput RawProblemSet
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  integralNumberHook,
		ErrorUnused: true, // Unknown keys mean the document does not follow the expected schema
		ErrorUnset:  true, // And so do missing ones: a missing k would otherwise make the item vacuously covered
		Result:      &rawInput,
	})
	if err != nil {
		return ProblemSet{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return ProblemSet{}, errors.Wrapf(err, "schema mismatch in %q", file)
	}
	return ProcessRawInput(rawInput), nil
}

// Rejects fractional floats headed for unsigned fields, which mapstructure would otherwise truncate
func integralNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value := reflect.ValueOf(data).Float()
		if value != math.Trunc(value) {
			return nil, fmt.Errorf("%v is not an integer", value)
		}
	}
	return data, nil
}

// Builds the problem set from its raw counterpart, collapsing duplicated numbers inside every ticket and inside the target numbers
func ProcessRawInput(rawInput RawProblemSet) ProblemSet {
	items := lo.Map(rawInput.Items, func(rawItem RawItemSet, _ int) ItemSet {
		return ItemSet{
			Tickets: lo.Map(rawItem.Tickets, func(ticket []uint64, _ int) NumberSet {
				return NewNumberSet(ticket...)
			}),
			TargetCoverage: TargetCoverage{
				Numbers:           NewNumberSet(rawItem.TargetCoverage.Numbers...),
				MinNumbersToCover: rawItem.TargetCoverage.MinNumbersToCover,
			},
			Expected: rawItem.Expected,
		}
	})
	return ProblemSet{Items: items}
}
