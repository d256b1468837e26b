package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgspeck/gen-systemd-svcs/pkg/adapters/redis"
	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
	"github.com/cgspeck/gen-systemd-svcs/pkg/resolver"
)

const definition = `
defs:
  - template:
      Unit:
        After: [network-online.target]
      Service:
        ExecStart: /usr/bin/worker
    instances:
      - Unit:
          Name: worker-a
          Description: Worker A
      - Unit:
          Name: worker-b
          Description: Worker B
`

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testOptions(t *testing.T, content string) (CommonOptions, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	return CommonOptions{
		DefinitionPath: writeDefinition(t, content),
		Stdout:         &stdout,
		Stderr:         &stderr,
	}, &stdout, &stderr
}

func TestGenerate_WritesEveryInstance(t *testing.T) {
	common, stdout, stderr := testOptions(t, definition)
	out := t.TempDir()

	err := Generate(context.Background(), GenerateOptions{CommonOptions: common, OutputDir: out, Workers: 2})
	require.NoError(t, err)

	for _, name := range []string{"worker-a", "worker-b"} {
		data, err := os.ReadFile(filepath.Join(out, name+".service"))
		require.NoError(t, err)
		assert.Contains(t, string(data), resolver.Header)
		assert.Contains(t, string(data), "After=network-online.target\n")
	}
	assert.Contains(t, stdout.String(), "2 written, 0 failed")
	assert.Contains(t, stderr.String(), "wrote unit")
}

func TestGenerate_Quiet(t *testing.T) {
	common, stdout, stderr := testOptions(t, definition)
	common.Quiet = true

	err := Generate(context.Background(), GenerateOptions{CommonOptions: common, OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestGenerate_MissingOutputDir(t *testing.T) {
	common, _, _ := testOptions(t, definition)
	missing := filepath.Join(t.TempDir(), "nope")

	err := Generate(context.Background(), GenerateOptions{CommonOptions: common, OutputDir: missing})
	var ioErr *model.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, missing, ioErr.Path)
}

func TestGenerate_CreateDir(t *testing.T) {
	common, _, _ := testOptions(t, definition)
	out := filepath.Join(t.TempDir(), "etc", "systemd", "system")

	err := Generate(context.Background(), GenerateOptions{CommonOptions: common, OutputDir: out, CreateDir: true})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "worker-a.service"))
}

func TestGenerate_DecodeErrorWritesNothing(t *testing.T) {
	common, _, _ := testOptions(t, `
defs:
  - template: {}
    instances:
      - Unit:
          Name: worker-a
`)
	out := t.TempDir()

	err := Generate(context.Background(), GenerateOptions{CommonOptions: common, OutputDir: out})
	var decodeErr *model.DecodeError
	require.ErrorAs(t, err, &decodeErr)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_MetricsFile(t *testing.T) {
	common, _, _ := testOptions(t, definition)
	metricsFile := filepath.Join(t.TempDir(), "gensvc.prom")

	err := Generate(context.Background(), GenerateOptions{CommonOptions: common, OutputDir: t.TempDir(), MetricsFile: metricsFile})
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gensvc_units_generated_total{sink="file"} 2`)
}

func TestPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	common, _, _ := testOptions(t, definition)

	err := Publish(context.Background(), PublishOptions{CommonOptions: common, RedisAddr: mr.Addr()})
	require.NoError(t, err)

	content := mr.HGet(redis.DefaultKey, "worker-b.service")
	assert.Contains(t, content, "Description=Worker B\n")
}

func TestPublish_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	common, _, _ := testOptions(t, definition)

	err := Publish(context.Background(), PublishOptions{CommonOptions: common, RedisAddr: addr})
	var ioErr *model.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestValidate_Collision(t *testing.T) {
	common, _, _ := testOptions(t, `
defs:
  - template: {}
    instances:
      - Unit: {Name: dup, Description: one}
  - template: {}
    instances:
      - Unit: {Name: dup, Description: two}
`)

	_, err := Validate(common)
	var collision *model.NameCollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "dup", collision.Name)
}

func TestRender(t *testing.T) {
	common, stdout, _ := testOptions(t, definition)

	require.NoError(t, Render(common, "worker-a"))
	assert.Contains(t, stdout.String(), "Description=Worker A\n")
	assert.Contains(t, stdout.String(), "ExecStart=/usr/bin/worker\n")

	err := Render(common, "missing")
	assert.ErrorIs(t, err, model.ErrUnitNotFound)
}

func TestGraph(t *testing.T) {
	common, stdout, _ := testOptions(t, definition)

	require.NoError(t, Graph(common))
	assert.Contains(t, stdout.String(), "graph TD")
}

func TestCreateLogger_InvalidFormat(t *testing.T) {
	_, err := createLogger(CommonOptions{LogFormat: "xml", Stderr: &bytes.Buffer{}})
	assert.Error(t, err)
}
