package utils

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Decode hook converting configuration strings to booleans.
func stringToBoolHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}

		switch data.(string) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		default:
			return nil, fmt.Errorf("cannot convert %q to bool", data)
		}
	}
}

// Decode hook converting configuration strings to integers.
func stringToIntHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Int {
			return data, nil
		}

		value, err := strconv.Atoi(data.(string))
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to int: %v", data, err)
		}
		return value, nil
	}
}

// Unmarshal the settings held by viper into a configuration struct.
// Handles time.Duration, bool and int values given as strings, which
// is what viper delivers for values set through the environment.
func UnmarshalConfig(v viper.Viper, cfg interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToBoolHook(),
			stringToIntHook(),
		),
		Result: &cfg,
	}

	decoder, _ := mapstructure.NewDecoder(decoderConfig)
	return decoder.Decode(v.AllSettings())
}
