package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/arthur-debert/dodot-firefox/pkg/ui"
	"github.com/arthur-debert/dodot-firefox/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *display.RunReport {
	return &display.RunReport{
		InstallFile: "install.conf.yaml",
		Directives: []display.DirectiveRow{
			{Task: 0, Directive: "defaults", Status: "defaults"},
			{Task: 1, Directive: "firefox", Status: "success"},
			{Task: 1, Directive: "shell", Status: "failed", Error: "action shell not handled"},
		},
		Succeeded: 1,
		Failed:    1,
	}
}

func sampleProfiles() *display.ProfileList {
	return &display.ProfileList{
		Roots: []string{"/home/u/.mozilla/firefox"},
		Profiles: []display.ProfileRow{
			{Name: "default-release", Path: "/home/u/.mozilla/firefox/abcd.default-release", Root: "/home/u/.mozilla/firefox", Default: true},
			{Path: "/home/u/.mozilla/firefox/efgh.work", Root: "/home/u/.mozilla/firefox"},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "terminal", format: ui.FormatTerminal},
		{name: "text", format: ui.FormatText},
		{name: "json", format: ui.FormatJSON},
		{name: "auto with buffer", format: ui.FormatAuto},
		{name: "invalid format", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderRun(sampleRun()))
	out := buf.String()
	assert.Contains(t, out, "success   firefox")
	assert.Contains(t, out, "failed    shell: action shell not handled")
	assert.Contains(t, out, "1 succeeded, 1 failed, 0 skipped")

	buf.Reset()
	require.NoError(t, r.RenderProfiles(sampleProfiles()))
	assert.Equal(t,
		"/home/u/.mozilla/firefox/abcd.default-release\tdefault-release\t(default)\n"+
			"/home/u/.mozilla/firefox/efgh.work\n",
		buf.String())

	buf.Reset()
	require.NoError(t, r.RenderProfiles(&display.ProfileList{Roots: []string{"/r"}}))
	assert.Equal(t, "No Firefox profiles found\n  searched /r\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrNotFound, "missing")))
	assert.Equal(t, "Error: [NOT_FOUND] missing\n", buf.String())
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderRun(sampleRun()))
	out := buf.String()
	assert.Contains(t, out, "install.conf.yaml")
	assert.Contains(t, out, "firefox")
	assert.Contains(t, out, "action shell not handled")

	buf.Reset()
	require.NoError(t, r.RenderProfiles(sampleProfiles()))
	out = buf.String()
	assert.Contains(t, out, "default-release")
	assert.Contains(t, out, "(unnamed)")
	assert.Contains(t, out, "/home/u/.mozilla/firefox/efgh.work")
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderRun(sampleRun()))
	var run map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &run))
	assert.Equal(t, false, run["success"])
	assert.Len(t, run["directives"], 3)

	buf.Reset()
	require.NoError(t, r.RenderProfiles(sampleProfiles()))
	var list display.ProfileList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	assert.Equal(t, *sampleProfiles(), list)

	buf.Reset()
	require.NoError(t, r.RenderMessage("hello"))
	assert.JSONEq(t, `{"message":"hello"}`, buf.String())
}
