package main

import (
	"bytes"
	"context"
	"dvdlend/internal/app"
	"dvdlend/internal/config"
	"dvdlend/internal/server"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, "demo", "--config", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Loan(1, João, Matrix)")
	assert.Contains(t, out, "After return:\n[]")
}

func TestClientCommands(t *testing.T) {
	srv := httptest.NewServer(server.New(app.New(logr.Discard()), config.RateLimitConfig{PerSecond: 100, Burst: 100}))
	defer srv.Close()

	_, err := run(t, "--addr", srv.URL, "friend", "add", "--name", "João", "--phone", "123456789")
	require.NoError(t, err)
	_, err = run(t, "--addr", srv.URL, "dvd", "add", "--title", "Matrix", "--genre", "science fiction", "--minimum-age", "14")
	require.NoError(t, err)

	out, err := run(t, "--addr", srv.URL, "loan", "borrow", "1", "1")
	require.NoError(t, err)
	var loan struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &loan))
	assert.Equal(t, int64(1), loan.ID)

	_, err = run(t, "--addr", srv.URL, "loan", "borrow", "1", "1")
	assert.Error(t, err)

	out, err = run(t, "--addr", srv.URL, "loan", "return", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "returned_at")

	out, err = run(t, "--addr", srv.URL, "loan", "active")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	_, err = run(t, "--addr", srv.URL, "dvd", "add", "--title", "X", "--genre", "Western")
	assert.Error(t, err)
	_, err = run(t, "--addr", srv.URL, "loan", "return", "abc")
	assert.Error(t, err)
}
