package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDescent(t *testing.T) {
	tests := []struct {
		in       string
		expected DescentEnum
	}{
		{"", DescentUnset},
		{"strict", DescentStrict},
		{" Lenient ", DescentLenient},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDescent(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseDescent("loose")
	assert.Error(t, err)
}

func TestDescentOr(t *testing.T) {
	assert.Equal(t, DescentStrict, DescentUnset.Or(DescentStrict))
	assert.Equal(t, DescentLenient, DescentLenient.Or(DescentStrict))
}

func TestDescentYAML(t *testing.T) {
	var v struct {
		Descent DescentEnum `yaml:"descent"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("descent: lenient\n"), &v))
	assert.Equal(t, DescentLenient, v.Descent)

	assert.Error(t, yaml.Unmarshal([]byte("descent: sloppy\n"), &v))
}
