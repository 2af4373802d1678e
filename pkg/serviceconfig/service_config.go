package serviceconfig

import (
	"encoding/json"
	"fmt"

	"github.com/core-tools/hsu-servicers/pkg/errors"

	"github.com/mitchellh/mapstructure"
)

// Well-known lifecycle state labels. State is free-form; these are not enforced.
const (
	StateDisabled = "Disabled"
	StateEnabled  = "Enabled"
	StateRunning  = "Running"
	StateStopped  = "Stopped"
	StatePaused   = "Paused"
)

// DefaultState is the state of a descriptor whose record carries none
const DefaultState = StateDisabled

// UnknownKeyPolicy decides what happens to record keys that match no field
type UnknownKeyPolicy int

const (
	IgnoreUnknownKeys UnknownKeyPolicy = iota
	RejectUnknownKeys
)

// ServiceConfig describes how to launch one service and its lifecycle state
type ServiceConfig struct {
	program string
	args    []string
	cwd     string
	state   string
}

// serviceRecord is the decoded shape of one element of the configuration file
type serviceRecord struct {
	Program string   `mapstructure:"program" json:"program" yaml:"program"`
	Args    []string `mapstructure:"args" json:"args" yaml:"args"`
	Cwd     string   `mapstructure:"cwd" json:"cwd" yaml:"cwd"`
	State   string   `mapstructure:"state" json:"state" yaml:"state"`
}

// New returns a descriptor with every field at its default
func New() *ServiceConfig {
	return &ServiceConfig{
		args:  []string{},
		state: DefaultState,
	}
}

// FromRecord builds a descriptor from a generic key/value record.
// Known keys overwrite defaults, a null value keeps the default, and a known
// key holding a value of the wrong type is a malformed configuration.
func FromRecord(record map[string]interface{}, policy UnknownKeyPolicy) (*ServiceConfig, error) {
	if err := checkArgElements(record); err != nil {
		return nil, err
	}

	decoded := defaultRecord()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &decoded,
		ErrorUnused: policy == RejectUnknownKeys,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to create record decoder", err)
	}

	if err := decoder.Decode(record); err != nil {
		return nil, errors.NewMalformedConfigurationError("invalid service record", err)
	}

	return fromServiceRecord(decoded), nil
}

// checkArgElements rejects null args elements, which the decoder would
// otherwise turn into empty strings
func checkArgElements(record map[string]interface{}) error {
	elements, ok := record["args"].([]interface{})
	if !ok {
		return nil
	}
	for i, element := range elements {
		if element == nil {
			return errors.NewMalformedConfigurationError("invalid service record", nil).
				WithContext("field", fmt.Sprintf("args[%d]", i)).
				WithContext("reason", "null element")
		}
	}
	return nil
}

func defaultRecord() serviceRecord {
	return serviceRecord{
		Args:  []string{},
		State: DefaultState,
	}
}

func fromServiceRecord(r serviceRecord) *ServiceConfig {
	return New().
		SetProgram(r.Program).
		SetArgs(r.Args).
		SetCwd(r.Cwd).
		SetState(r.State)
}

func (c *ServiceConfig) toServiceRecord() serviceRecord {
	return serviceRecord{
		Program: c.program,
		Args:    c.Args(),
		Cwd:     c.cwd,
		State:   c.state,
	}
}

func (c *ServiceConfig) Program() string {
	return c.program
}

func (c *ServiceConfig) SetProgram(program string) *ServiceConfig {
	c.program = program
	return c
}

// Args returns a copy of the argument list
func (c *ServiceConfig) Args() []string {
	return copyArgs(c.args)
}

func (c *ServiceConfig) SetArgs(args []string) *ServiceConfig {
	c.args = copyArgs(args)
	return c
}

func (c *ServiceConfig) Cwd() string {
	return c.cwd
}

func (c *ServiceConfig) SetCwd(cwd string) *ServiceConfig {
	c.cwd = cwd
	return c
}

func (c *ServiceConfig) State() string {
	return c.state
}

func (c *ServiceConfig) SetState(state string) *ServiceConfig {
	c.state = state
	return c
}

// Clone returns an independent copy
func (c *ServiceConfig) Clone() *ServiceConfig {
	return fromServiceRecord(c.toServiceRecord())
}

// Equal reports whether both descriptors hold the same values.
// A nil and an empty argument list compare equal.
func (c *ServiceConfig) Equal(other *ServiceConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.program != other.program || c.cwd != other.cwd || c.state != other.state {
		return false
	}
	if len(c.args) != len(other.args) {
		return false
	}
	for i := range c.args {
		if c.args[i] != other.args[i] {
			return false
		}
	}
	return true
}

func (c *ServiceConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toServiceRecord())
}

// UnmarshalJSON decodes one JSON object with defaults applied and unknown keys ignored
func (c *ServiceConfig) UnmarshalJSON(data []byte) error {
	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		return errors.NewMalformedConfigurationError("service record is not a JSON object", err)
	}
	if record == nil {
		// null leaves the receiver untouched
		return nil
	}

	decoded, err := FromRecord(record, IgnoreUnknownKeys)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

func (c *ServiceConfig) MarshalYAML() (interface{}, error) {
	return c.toServiceRecord(), nil
}

func copyArgs(args []string) []string {
	result := make([]string, len(args))
	copy(result, args)
	return result
}
