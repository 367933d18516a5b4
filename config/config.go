package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/constant"
	"github.com/vidscrub/vidscrub/filesystem"
	"github.com/vidscrub/vidscrub/style"
	"github.com/vidscrub/vidscrub/where"
)

// EnvKeyReplacer normalizes configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes defaults, environment bindings and the config file lookup.
func Setup() error {
	viper.SetConfigName(constant.Vidscrub)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Vidscrub)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Keys returns every registered key in order.
func Keys() []string {
	keys := lo.Keys(Default)
	sort.Strings(keys)
	return keys
}

// Lookup returns the field registered under k. An unknown key suggests the closest registered one.
func Lookup(k string) (Field, error) {
	if field, ok := Default[k]; ok {
		return field, nil
	}

	closest := lo.MinBy(Keys(), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})

	return Field{}, fmt.Errorf("unknown key %s, did you mean %s?", style.Fg(color.Red)(k), style.Fg(color.Yellow)(closest))
}

// Set assigns values to a registered key and persists the configuration. The change is rolled
// back when it leaves the timeline tuning invalid.
func Set(k string, values []string) (any, error) {
	field, err := Lookup(k)
	if err != nil {
		return nil, err
	}

	value, err := field.Parse(values)
	if err != nil {
		return nil, err
	}

	previous := viper.Get(k)
	viper.Set(k, value)
	if _, err := TimelineParams(); err != nil {
		viper.Set(k, previous)
		return nil, err
	}

	return value, Write()
}

// Reset restores the given keys, or all of them when none are given, and persists the result.
func Reset(keys ...string) error {
	if len(keys) == 0 {
		keys = Keys()
	}

	for _, k := range keys {
		field, err := Lookup(k)
		if err != nil {
			return err
		}
		viper.Set(k, field.Value)
	}

	return Write()
}

// Write persists the configuration, creating the file on first use.
func Write() error {
	err := viper.WriteConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return viper.SafeWriteConfig()
	}
	return err
}

// Path is where the configuration file lives.
func Path() string {
	return filepath.Join(where.Config(), constant.Vidscrub+".toml")
}
