package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/internal/config"
	"devconsole/internal/console"
	"devconsole/internal/output"
)

func testConfig() *config.Config {
	return &config.Config{
		Name:         "test",
		LogLevel:     "info",
		TestMode:     true,
		HistoryLimit: 10,
		TickInterval: time.Millisecond,
		Theme:        "plain",
		Output:       "auto",
	}
}

func TestNewConsole_RegistersNatives(t *testing.T) {
	reg, err := newConsole(testConfig())
	require.NoError(t, err)

	assert.Equal(t, "test", reg.Name())
	_, found := reg.FindCommand("help")
	assert.True(t, found)
	_, found = reg.FindSetting(console.SettingPrompt)
	assert.True(t, found)
}

func TestNewConsole_AppliesConfiguredSettings(t *testing.T) {
	c := testConfig()
	c.Settings = map[string]any{
		console.SettingEchoCommands: true,
		"does_not_exist":            1,
	}

	reg, err := newConsole(c)
	require.NoError(t, err)

	echo, err := console.LookupSetting[bool](reg, console.SettingEchoCommands)
	require.NoError(t, err)
	assert.True(t, echo.Get())
}

func TestNewConsole_UnknownTheme(t *testing.T) {
	c := testConfig()
	c.TestMode = false
	c.Theme = "neon"

	_, err := newConsole(c)
	assert.Error(t, err)
}

func TestValidateScriptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.cfg")
	require.NoError(t, os.WriteFile(path, []byte("echo hi\n"), 0600))

	assert.NoError(t, validateScriptFile(path))
	assert.Error(t, validateScriptFile(filepath.Join(dir, "missing.cfg")))
	assert.Error(t, validateScriptFile(dir))
}

func TestPrinterOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{
			name:   "test mode prints plain prefixes",
			mutate: func(*config.Config) {},
			want:   "✓ saved\n",
		},
		{
			name: "json output",
			mutate: func(c *config.Config) {
				c.TestMode = false
				c.Output = "json"
			},
			want: `{"message":"saved","type":"success"}` + "\n",
		},
		{
			name: "quiet drops output",
			mutate: func(c *config.Config) {
				c.Quiet = true
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mutate(c)

			opts, err := printerOptions(c)
			require.NoError(t, err)

			buf := output.NewCaptureBuffer()
			output.NewPrinter(append(opts, output.WithWriter(buf))...).Success("saved")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinterOptions_UnknownMode(t *testing.T) {
	c := testConfig()
	c.TestMode = false
	c.Output = "xml"

	_, err := printerOptions(c)
	assert.Error(t, err)
}
