package serviceconfig

import (
	"encoding/json"
	"testing"

	"github.com/core-tools/hsu-servicers/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNew_Defaults(t *testing.T) {
	config := New()

	assert.Equal(t, "", config.Program())
	assert.NotNil(t, config.Args())
	assert.Empty(t, config.Args())
	assert.Equal(t, "", config.Cwd())
	assert.Equal(t, StateDisabled, config.State())
}

func TestFluentSetters(t *testing.T) {
	config := New()
	same := config.
		SetProgram("/usr/bin/sleep").
		SetArgs([]string{"60"}).
		SetCwd("/tmp").
		SetState(StateEnabled)

	assert.Same(t, config, same)
	assert.Equal(t, "/usr/bin/sleep", config.Program())
	assert.Equal(t, []string{"60"}, config.Args())
	assert.Equal(t, "/tmp", config.Cwd())
	assert.Equal(t, StateEnabled, config.State())
}

func TestArgs_AreCopied(t *testing.T) {
	args := []string{"a", "b"}
	config := New().SetArgs(args)

	args[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, config.Args())

	got := config.Args()
	got[1] = "mutated"
	assert.Equal(t, []string{"a", "b"}, config.Args())
}

func TestSetState_AcceptsAnyString(t *testing.T) {
	config := New().SetState("Whatever-The-Caller-Wants")

	assert.Equal(t, "Whatever-The-Caller-Wants", config.State())
}

func TestFromRecord(t *testing.T) {
	tests := []struct {
		name        string
		record      map[string]interface{}
		policy      UnknownKeyPolicy
		expectError bool
		expected    *ServiceConfig
	}{
		{
			name:     "empty record yields defaults",
			record:   map[string]interface{}{},
			expected: New(),
		},
		{
			name: "all fields",
			record: map[string]interface{}{
				"program": "a",
				"args":    []interface{}{"x", "y"},
				"cwd":     "/tmp",
				"state":   "Running",
			},
			expected: New().SetProgram("a").SetArgs([]string{"x", "y"}).SetCwd("/tmp").SetState("Running"),
		},
		{
			name:     "partial record keeps remaining defaults",
			record:   map[string]interface{}{"program": "/usr/bin/echo"},
			expected: New().SetProgram("/usr/bin/echo"),
		},
		{
			name:     "null value keeps default",
			record:   map[string]interface{}{"state": nil, "args": nil},
			expected: New(),
		},
		{
			name:     "unknown keys are ignored by default",
			record:   map[string]interface{}{"program": "p", "restart": "always"},
			expected: New().SetProgram("p"),
		},
		{
			name:     "key match is case sensitive",
			record:   map[string]interface{}{"Program": "p"},
			expected: New(),
		},
		{
			name:        "unknown keys are rejected in strict mode",
			record:      map[string]interface{}{"program": "p", "restart": "always"},
			policy:      RejectUnknownKeys,
			expectError: true,
		},
		{
			name:     "strict mode accepts known keys",
			record:   map[string]interface{}{"program": "p", "cwd": "/"},
			policy:   RejectUnknownKeys,
			expected: New().SetProgram("p").SetCwd("/"),
		},
		{
			name:        "program of wrong type",
			record:      map[string]interface{}{"program": float64(5)},
			expectError: true,
		},
		{
			name:        "args not a list",
			record:      map[string]interface{}{"args": "x"},
			expectError: true,
		},
		{
			name:        "args with non-string element",
			record:      map[string]interface{}{"args": []interface{}{"x", float64(1)}},
			expectError: true,
		},
		{
			name:        "args with null element",
			record:      map[string]interface{}{"args": []interface{}{"a", nil}},
			expectError: true,
		},
		{
			name:        "args with only a null element",
			record:      map[string]interface{}{"args": []interface{}{nil}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := FromRecord(tt.record, tt.policy)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.IsMalformedConfigurationError(err))
				assert.Nil(t, config)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(config), "expected %+v, got %+v", tt.expected, config)
		})
	}
}

func TestEqual(t *testing.T) {
	a := New().SetProgram("p").SetArgs([]string{"1"})
	b := New().SetProgram("p").SetArgs([]string{"1"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b.Clone().SetArgs([]string{"2"})))
	assert.False(t, a.Equal(b.Clone().SetState(StateRunning)))
	assert.False(t, a.Equal(nil))
	assert.True(t, New().SetArgs(nil).Equal(New()))

	var nilConfig *ServiceConfig
	assert.True(t, nilConfig.Equal(nil))
}

func TestClone_IsIndependent(t *testing.T) {
	original := New().SetProgram("p").SetArgs([]string{"x"})
	clone := original.Clone()

	clone.SetProgram("q").SetArgs([]string{"y"})

	assert.Equal(t, "p", original.Program())
	assert.Equal(t, []string{"x"}, original.Args())
}

func TestUnmarshalJSON(t *testing.T) {
	var config ServiceConfig
	err := json.Unmarshal([]byte(`{"program":"/usr/bin/sleep","args":["60"],"extra":true}`), &config)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/sleep", config.Program())
	assert.Equal(t, []string{"60"}, config.Args())
	assert.Equal(t, "", config.Cwd())
	assert.Equal(t, StateDisabled, config.State())
}

func TestUnmarshalJSON_NotAnObject(t *testing.T) {
	var config ServiceConfig

	err := json.Unmarshal([]byte(`["program"]`), &config)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedConfigurationError(err))

	config.SetProgram("kept")
	err = json.Unmarshal([]byte(`null`), &config)
	assert.NoError(t, err)
	assert.Equal(t, "kept", config.Program())
}

func TestMarshalJSON(t *testing.T) {
	config := New().SetProgram("/usr/bin/echo").SetArgs([]string{"hi"}).SetCwd("/")

	data, err := json.Marshal(config)
	require.NoError(t, err)

	assert.JSONEq(t, `{"program":"/usr/bin/echo","args":["hi"],"cwd":"/","state":"Disabled"}`, string(data))
}

func TestMarshalJSON_DefaultsRenderEmptyArgs(t *testing.T) {
	data, err := json.Marshal(New())
	require.NoError(t, err)

	assert.JSONEq(t, `{"program":"","args":[],"cwd":"","state":"Disabled"}`, string(data))
}

func TestMarshalYAML(t *testing.T) {
	config := New().SetProgram("a").SetArgs([]string{"x", "y"}).SetCwd("/tmp").SetState(StateRunning)

	data, err := yaml.Marshal(config)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "a", decoded["program"])
	assert.Equal(t, []interface{}{"x", "y"}, decoded["args"])
	assert.Equal(t, "/tmp", decoded["cwd"])
	assert.Equal(t, StateRunning, decoded["state"])
}
