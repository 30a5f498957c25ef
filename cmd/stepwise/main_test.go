package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise"
)

func parseRunFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addRunFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestBuildRequest_Values(t *testing.T) {
	cmd := parseRunFlags(t, "--values", "5,3,8", "--target", "8", "--direction", "desc")
	req, err := buildRequest(cmd, []string{"linear"})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 8}, req.Values)
	assert.Equal(t, 8, req.Target)
	assert.Equal(t, "desc", req.Direction)
	assert.Nil(t, req.Random)
	assert.Nil(t, req.Maze)
}

func TestBuildRequest_DefaultsByKind(t *testing.T) {
	req, err := buildRequest(parseRunFlags(t), []string{"bfs"})
	require.NoError(t, err)
	require.NotNil(t, req.Maze)
	assert.Zero(t, req.Maze.Rows, "demo maze")

	req, err = buildRequest(parseRunFlags(t), []string{"bubble", "quick"})
	require.NoError(t, err)
	require.NotNil(t, req.Random)
	assert.Nil(t, req.Random.Size)
}

func TestBuildRequest_RandomFlags(t *testing.T) {
	cmd := parseRunFlags(t, "--random", "7", "--max", "9", "--seed", "42", "--distinct")
	req, err := buildRequest(cmd, []string{"binary"})
	require.NoError(t, err)
	require.NotNil(t, req.Random)
	assert.Equal(t, 7, *req.Random.Size)
	assert.Equal(t, 9, *req.Random.Max)
	assert.Nil(t, req.Random.Min)
	assert.Equal(t, uint64(42), req.Random.Seed)
	assert.True(t, req.Random.Distinct)

	algorithms, data, _, err := req.Resolve()
	require.NoError(t, err)
	assert.Len(t, algorithms, 1)
	assert.Len(t, data.Values, 7)
}

func TestBuildRequest_MazeAndPositions(t *testing.T) {
	cmd := parseRunFlags(t, "--rows", "6", "--density", "0.1", "--seed", "3", "--start", "0,1", "--goal", "5,4")
	req, err := buildRequest(cmd, []string{"bfs"})
	require.NoError(t, err)
	require.NotNil(t, req.Maze)
	assert.Equal(t, 6, req.Maze.Rows)
	assert.Equal(t, 6, req.Maze.Cols)
	assert.Equal(t, []int{0, 1}, req.Start)
	assert.Equal(t, []int{5, 4}, req.Goal)
}

func TestBuildRequest_BadPosition(t *testing.T) {
	_, err := buildRequest(parseRunFlags(t, "--goal", "1"), []string{"bfs"})
	assert.ErrorContains(t, err, "--goal")
}

func TestAllPaths(t *testing.T) {
	assert.True(t, allPaths([]string{"bfs", "Grid BFS"}))
	assert.False(t, allPaths([]string{"bfs", "bubble"}))
	assert.False(t, allPaths(nil))
}

func TestCommands(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"version"}, []string{"stepwise version " + stepwise.Version}},
		{[]string{"algorithms"}, []string{"ID", "bubble_sort", "bfs"}},
		{[]string{"algorithms", "binary"}, []string{"Binary Search"}},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			require.NoError(t, rootCmd.Execute())
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}
