package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "debatebot dev"), out.String())
}

func TestConfigPathPrecedence(t *testing.T) {
	t.Setenv("DEBATEBOT_CONFIG", "")
	root := newRootCmd()
	assert.Equal(t, "config.yaml", configPath(root))

	t.Setenv("DEBATEBOT_CONFIG", "/etc/debatebot.yaml")
	assert.Equal(t, "/etc/debatebot.yaml", configPath(root))

	require.NoError(t, root.PersistentFlags().Set("config", "local.yaml"))
	assert.Equal(t, "local.yaml", configPath(root))
}

func TestSubcommandsRegistered(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "chat", "doctor", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestUnknownCommand(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"bogus"})
	assert.Error(t, root.Execute())
}
