package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/critters/config"
)

// setup resets the globals the commands read and returns a command whose
// output lands in the returned buffer.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Default()
	matrixFile, pdfPath, inputLine, batchOut, serveAddr = "", "", "", "", ""
	animate = false
	spiralRow, spiralCol, ceiling, batchWorkers = 0, 0, 0, 0

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return cmd, &buf
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestZigZagCmd(t *testing.T) {
	cmd, out := setup(t)
	matrixFile = writeFile(t, "m.yaml", "[[1, 2], [3, 4]]\n")

	require.NoError(t, runZigZag(cmd, nil))
	assert.Contains(t, out.String(), "4 of 4 cells")
	assert.Contains(t, out.String(), "1, 0: 3")
}

func TestZigZagCmd_BadMatrix(t *testing.T) {
	cmd, _ := setup(t)
	matrixFile = writeFile(t, "m.yaml", "[[1, 2], [3]]\n")
	assert.Error(t, runZigZag(cmd, nil))

	matrixFile = filepath.Join(t.TempDir(), "missing.yaml")
	assert.Error(t, runZigZag(cmd, nil))
}

func TestSpiralCmd(t *testing.T) {
	cmd, out := setup(t)
	spiralRow, spiralCol = 2, 3

	require.NoError(t, runSpiral(cmd, nil))
	assert.Contains(t, out.String(), "42 of 42 cells")

	out.Reset()
	spiralRow = 99
	require.NoError(t, runSpiral(cmd, nil), "outside start is not an error")
	assert.Contains(t, out.String(), "0 of 42 cells")
}

func TestRoutesCmd(t *testing.T) {
	cmd, out := setup(t)
	matrixFile = writeFile(t, "m.yaml", "- [2, 8]\n- [8, 2]\n")
	pdfPath = filepath.Join(t.TempDir(), "routes.pdf")

	require.NoError(t, runRoutes(cmd, []string{"2", "8"}))
	assert.Contains(t, out.String(), "len=2")

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, runRoutes(cmd, []string{"two", "8"}))
	assert.Error(t, runRoutes(cmd, []string{"2", "eight"}))
}

func TestSimulateCmd(t *testing.T) {
	cmd, out := setup(t)
	inputLine = "4,3,AB)C)"

	require.NoError(t, runSimulate(cmd, nil))
	assert.Contains(t, out.String(), "1AB 2AC 3AB 4AC")
	assert.Contains(t, out.String(), "placed 4 of 4 walnuts")
	assert.NotContains(t, out.String(), "left over")

	out.Reset()
	inputLine = "9,2,AB)C)"
	pdfPath = filepath.Join(t.TempDir(), "tree.pdf")
	require.NoError(t, runSimulate(cmd, nil))
	assert.Contains(t, out.String(), "tree is full: 5 walnuts left over")
	assert.FileExists(t, pdfPath)

	inputLine = "4,3,A))"
	assert.Error(t, runSimulate(cmd, nil))
}

func TestSimulateCmd_Ceiling(t *testing.T) {
	cmd, out := setup(t)
	inputLine = "10,5,AB)"
	ceiling = 2

	require.NoError(t, runSimulate(cmd, nil))
	assert.Contains(t, out.String(), "placed 2 of 10 walnuts")
}

func TestBatchCmd(t *testing.T) {
	cmd, out := setup(t)
	path := writeFile(t, "batch.yaml", `
scenarios:
  - name: zig
    kind: zigzag
    matrix: [[1, 2], [3, 4]]
  - name: forest
    kind: simulate
    input: "4,3,AB)C)"
`)

	require.NoError(t, runBatch(cmd, []string{path}))
	assert.Contains(t, out.String(), "outcomes:")
	assert.Contains(t, out.String(), "name: forest")

	batchOut = filepath.Join(t.TempDir(), "out.yaml")
	out.Reset()
	require.NoError(t, runBatch(cmd, []string{path}))
	assert.Empty(t, out.String())
	data, err := os.ReadFile(batchOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: zig")

	assert.Error(t, runBatch(cmd, []string{filepath.Join(t.TempDir(), "none.yaml")}))
}

func TestServeCmd_Shutdown(t *testing.T) {
	cmd, _ := setup(t)
	serveAddr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	cmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() { done <- runServe(cmd, nil) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRootCmd_Execute(t *testing.T) {
	setup(t)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"simulate", "--input", "2,1,AB)"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		inputLine = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "placed 1 of 2 walnuts")
	require.NotNil(t, logger)
	require.NotNil(t, cfg)
}
