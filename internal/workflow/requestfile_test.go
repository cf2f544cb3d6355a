// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.yaml")
	content := `requests:
  - topic: Quantum computing basics
  - topic: MCP servers explained
    urls:
      - http://a.example
      - http://b.example
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rf, err := ReadRequestFile(path)
	require.NoError(t, err)
	require.Len(t, rf.Requests, 2)

	assert.Equal(t, "Quantum computing basics", rf.Requests[0].Topic)
	assert.Empty(t, rf.Requests[0].URLs)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, rf.Requests[1].URLs)
}

func TestReadRequestFileValidation(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("requests: []\n"), 0o644))
	_, err := ReadRequestFile(empty)
	assert.ErrorContains(t, err, "no requests")

	blank := filepath.Join(dir, "blank.yaml")
	require.NoError(t, os.WriteFile(blank, []byte("requests:\n  - urls: [http://x]\n"), 0o644))
	_, err = ReadRequestFile(blank)
	assert.ErrorContains(t, err, "empty topic")

	_, err = ReadRequestFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRequestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.yaml")
	in := &RequestFile{Requests: []Request{
		{Topic: "a"},
		{Topic: "b", URLs: []string{"http://x.example"}},
	}}
	require.NoError(t, WriteRequestFile(path, in))

	out, err := ReadRequestFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
