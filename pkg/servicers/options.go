package servicers

import (
	"github.com/core-tools/hsu-servicers/pkg/errors"
	"github.com/core-tools/hsu-servicers/pkg/serviceconfig"

	"github.com/spf13/viper"
)

const (
	// DefaultPath is where the build drops the service list
	DefaultPath = "target/debug/servicers.json"

	// EnvPrefix prefixes the environment overrides, e.g. SERVICERS_PATH
	EnvPrefix = "SERVICERS"

	KeyPath   = "path"
	KeyStrict = "strict"
)

// Options controls where and how the record set is loaded
type Options struct {
	Path string `mapstructure:"path" yaml:"path"`
	// Strict rejects record keys other than program, args, cwd and state
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

func DefaultOptions() Options {
	return Options{
		Path: DefaultPath,
	}
}

// ResolveOptions layers defaults, SERVICERS_* environment variables and the
// given overrides, in increasing precedence
func ResolveOptions(overrides map[string]interface{}) (Options, error) {
	v := viper.New()

	defaults := DefaultOptions()
	v.SetDefault(KeyPath, defaults.Path)
	v.SetDefault(KeyStrict, defaults.Strict)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, value := range overrides {
		v.Set(key, value)
	}

	var options Options
	if err := v.Unmarshal(&options); err != nil {
		return Options{}, errors.NewValidationError("failed to resolve loader options", err)
	}

	if options.Path == "" {
		return Options{}, errors.NewValidationError("configuration path cannot be empty", nil).
			WithContext("env", EnvPrefix+"_PATH")
	}

	return options, nil
}

func (o Options) unknownKeyPolicy() serviceconfig.UnknownKeyPolicy {
	if o.Strict {
		return serviceconfig.RejectUnknownKeys
	}
	return serviceconfig.IgnoreUnknownKeys
}
