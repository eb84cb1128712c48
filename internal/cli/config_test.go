package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/mdshare/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSettings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Settings.CatalogueFile = "/data/cat.yaml"
	cfg.Settings.HTTPTimeout = 30 * time.Second

	var out bytes.Buffer
	require.NoError(t, printSettings(&out, cfg))
	text := out.String()

	for _, g := range settingGroups {
		assert.Contains(t, text, g.title+"\n")
		for _, key := range g.keys {
			assert.Contains(t, text, "  "+key)
		}
	}
	assert.Contains(t, text, "/data/cat.yaml")
	assert.Contains(t, text, "30s")
	assert.Contains(t, text, "user_agent")
	assert.NotContains(t, text, "Other")
	assert.True(t, strings.HasSuffix(strings.TrimRight(text, " \n"), "none"))
}

func TestPrintSettings_Credentials(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Settings.Auth = &config.AuthConfig{BasicAuth: &config.BasicAuth{Username: "alice", Password: "s3cret"}}

	var out bytes.Buffer
	require.NoError(t, printSettings(&out, cfg))
	text := out.String()

	credentials := text[strings.Index(text, "Credentials"):]
	assert.Contains(t, credentials, "basic")
	assert.Contains(t, credentials, "alice")
	assert.NotContains(t, text, "s3cret")
}
