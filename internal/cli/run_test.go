package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/session"
)

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.Pacing = config.Pacing{
		Base: config.Duration(time.Millisecond),
		Min:  config.Duration(time.Millisecond),
	}
	return cfg
}

func TestExecute_JSONLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), RunOptions{
		Request: session.Request{Algorithms: []string{"bubble"}, Values: []int{3, 1, 2}},
		Config:  fastConfig(),
		JSON:    true,
		Stdin:   strings.NewReader(""),
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	require.NoError(t, err)

	var lines []jsonLine
	sc := bufio.NewScanner(&stdout)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var l jsonLine
		require.NoError(t, json.Unmarshal(sc.Bytes(), &l))
		lines = append(lines, l)
	}
	require.Len(t, lines, 10)
	for i, l := range lines[:9] {
		require.Equal(t, "frame", l.Type)
		assert.Equal(t, i+1, l.Frame.Step.Seq)
	}
	last := lines[9]
	require.Equal(t, "status", last.Type)
	assert.Equal(t, domain.StateFinished, last.Status.State)
	assert.Equal(t, []int{1, 2, 3}, last.Status.Lanes[0].Last.Snapshot.Values)
}

func TestExecute_Headless(t *testing.T) {
	var stdout bytes.Buffer
	err := Execute(context.Background(), RunOptions{
		Request:  session.Request{Algorithms: []string{"linear", "binary"}, Values: []int{1, 4, 4, 7, 9}, Target: 4},
		Config:   fastConfig(),
		Headless: true,
		Stdout:   &stdout,
		Stderr:   &bytes.Buffer{},
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "linear_search")
	assert.Contains(t, out, "binary_search")
	assert.Contains(t, out, "result (0,1)")
	assert.Contains(t, out, "result (0,2)")
}

func TestExecute_PlainView(t *testing.T) {
	var stdout bytes.Buffer
	err := Execute(context.Background(), RunOptions{
		Request: session.Request{Algorithms: []string{"insertion"}, Values: []int{5, 3, 8, 4, 2}},
		Config:  fastConfig(),
		Stdin:   strings.NewReader(""),
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "FINISHED")
	assert.Contains(t, out, "Completed in")
	assert.Contains(t, out, "4/4 sorted")
	assert.NotContains(t, out, keyHelp, "key help needs a raw terminal")
}

func TestExecute_Scenario(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nalgorithm: bfs\ngrid:\n  - \"..\"\n  - \"..\"\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.md"), []byte(doc), 0o644))

	cfg := fastConfig()
	cfg.Scenarios = dir
	var stdout bytes.Buffer
	err := Execute(context.Background(), RunOptions{
		Scenario: "tiny",
		Config:   cfg,
		Headless: true,
		Stdout:   &stdout,
		Stderr:   &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "result (1,1)")
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts RunOptions
		want error
	}{
		{"unknown algorithm", RunOptions{Request: session.Request{Algorithms: []string{"bogo"}, Values: []int{1}}}, domain.ErrUnknownAlgorithm},
		{"no data", RunOptions{Request: session.Request{Algorithms: []string{"bubble"}}}, domain.ErrNoDataset},
		{"missing scenario", RunOptions{Scenario: "nope", Config: config.Config{Scenarios: t.TempDir()}}, domain.ErrScenarioNotFound},
		{"bad backend", RunOptions{
			Request: session.Request{Algorithms: []string{"bubble"}, Values: []int{1}},
			Config:  config.Config{Store: config.Store{Backend: "etcd"}},
		}, config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Headless = true
			tt.opts.Stdout = &bytes.Buffer{}
			tt.opts.Stderr = &bytes.Buffer{}
			err := Execute(context.Background(), tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_CancelledContextIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config.Default()
	err := Execute(ctx, RunOptions{
		Request:  session.Request{Algorithms: []string{"bubble"}, Values: []int{3, 2, 1}},
		Config:   cfg,
		Headless: true,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	})
	assert.NoError(t, err)
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := config.Store{Backend: config.StoreSQLite, SQLite: config.SQLite{Path: filepath.Join(t.TempDir(), "r.db")}}
	store, closeStore, err := OpenStore(context.Background(), cfg, slogDiscard())
	require.NoError(t, err)
	defer closeStore()

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	cfg := config.Store{Backend: config.StoreRedis, Redis: config.Redis{Addr: "127.0.0.1:1"}}
	_, closeStore, err := OpenStore(context.Background(), cfg, slogDiscard())
	require.Error(t, err)
	assert.NoError(t, closeStore())
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, keyToggle, actionFor(' '))
	assert.Equal(t, keyToggle, actionFor('p'))
	assert.Equal(t, keyStop, actionFor('s'))
	assert.Equal(t, keyQuit, actionFor('q'))
	assert.Equal(t, keyQuit, actionFor(ctrlC))
	assert.Equal(t, keyNone, actionFor('x'))
}

func TestWatchKeys(t *testing.T) {
	var got []keyAction
	watchKeys(context.Background(), strings.NewReader("xp sqp"), func(a keyAction) {
		got = append(got, a)
	})
	assert.Equal(t, []keyAction{keyToggle, keyToggle, keyStop, keyQuit}, got)
}

func TestCRLFWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := crlfWriter{w: &buf}.Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "a\r\nb\r\n", buf.String())
}
