package progrock_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	rec "go.trai.ch/wheelhouse/internal/adapters/telemetry/progrock"
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"google.golang.org/protobuf/encoding/protojson"
)

// journalState folds the journal lines into the final state of each vertex.
type journalState struct {
	names     []string
	completed map[string]bool
	cached    map[string]bool
	errors    map[string]string
	logs      map[string]string
}

func readJournal(t *testing.T, data []byte) journalState {
	t.Helper()
	state := journalState{
		completed: map[string]bool{},
		cached:    map[string]bool{},
		errors:    map[string]string{},
		logs:      map[string]string{},
	}
	ids := map[string]string{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var update progrock.StatusUpdate
		require.NoError(t, protojson.Unmarshal(scanner.Bytes(), &update))

		for _, v := range update.GetVertexes() {
			if _, seen := ids[v.GetId()]; !seen {
				state.names = append(state.names, v.GetName())
			}
			ids[v.GetId()] = v.GetName()
			if v.GetCompleted() != nil {
				state.completed[v.GetName()] = true
			}
			if v.GetCached() {
				state.cached[v.GetName()] = true
			}
			if v.GetError() != "" {
				state.errors[v.GetName()] = v.GetError()
			}
		}
		for _, l := range update.GetLogs() {
			state.logs[ids[l.GetVertex()]] += string(l.GetData())
		}
	}
	require.NoError(t, scanner.Err())
	return state
}

func TestRecorder_WritesJournal(t *testing.T) {
	var buf bytes.Buffer
	recorder := rec.NewRecorder(rec.NewJournal(&buf))

	ctx, sync := recorder.Record(context.Background(), "sync acme/foo")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, sync, fromCtx)

	_, err := sync.Stdout().Write([]byte("Already up to date.\n"))
	require.NoError(t, err)
	sync.Log(domain.LogLevelInfo, "3 tags, 1 to build")
	sync.Complete(nil)

	_, build := recorder.Record(context.Background(), "build foo v1.0.0")
	_, err = build.Stderr().Write([]byte("error: invalid pyproject.toml\n"))
	require.NoError(t, err)
	build.Complete(errors.New("exit status 1"))

	_, index := recorder.Record(context.Background(), "index")
	index.Cached()
	index.Complete(nil)

	require.NoError(t, recorder.Close())

	state := readJournal(t, buf.Bytes())
	assert.Equal(t, []string{"sync acme/foo", "build foo v1.0.0", "index"}, state.names)
	assert.True(t, state.completed["sync acme/foo"])
	assert.Contains(t, state.logs["sync acme/foo"], "Already up to date.\n")
	assert.Contains(t, state.logs["sync acme/foo"], "[info] 3 tags, 1 to build\n")
	assert.Contains(t, state.logs["build foo v1.0.0"], "error: invalid pyproject.toml\n")
	assert.Equal(t, "exit status 1", state.errors["build foo v1.0.0"])
	assert.NotContains(t, state.errors, "sync acme/foo")
	assert.True(t, state.cached["index"])
}

func TestOpenJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos", domain.JournalFileName)

	journal, err := rec.OpenJournal(path)
	require.NoError(t, err)

	recorder := rec.NewRecorder(journal)
	_, v := recorder.Record(context.Background(), "index")
	v.Complete(nil)
	require.NoError(t, recorder.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	state := readJournal(t, data)
	assert.Equal(t, []string{"index"}, state.names)
	assert.True(t, state.completed["index"])

	// A second run starts a fresh journal.
	journal, err = rec.OpenJournal(path)
	require.NoError(t, err)
	require.NoError(t, journal.Close())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(data)))
}

func TestOpenJournal_Failure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "repos")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))

	_, err := rec.OpenJournal(filepath.Join(blocker, domain.JournalFileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrJournalOpenFailed.Error())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestJournal_WriteFailure(t *testing.T) {
	err := rec.NewJournal(failingWriter{}).WriteStatus(&progrock.StatusUpdate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrJournalWriteFailed.Error())
	assert.Contains(t, err.Error(), "disk full")
}
