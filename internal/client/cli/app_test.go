package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records requests and answers with canned bodies keyed by
// "METHOD /path".
type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	auth     []string
	replies  map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	b, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, key+queryString(r))
	f.bodies[key] = string(b)
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	reply, ok := f.replies[key]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Task not found"}`)
		return
	}
	_, _ = io.WriteString(w, reply)
}

func queryString(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}

func newTestApp(t *testing.T, replies map[string]string, input string) (*App, *fakeAPI, *bytes.Buffer) {
	t.Helper()

	f := &fakeAPI{bodies: map[string]string{}, replies: replies}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	cfg := &config.Config{ServerURL: srv.URL, RequestTimeout: time.Second}
	a, err := newApp(cfg, filepath.Join(t.TempDir(), "token"), strings.NewReader(input), out)
	require.NoError(t, err)
	return a, f, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readSecretFn
	readSecretFn = func(string, io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { readSecretFn = orig })
}

func TestStripGlobalFlags(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"tasks"}, []string{"tasks"}},
		{[]string{"-s", "http://x", "tasks", "-search", "a"}, []string{"tasks", "-search", "a"}},
		{[]string{"-t=5", "-c", "cfg.json", "me"}, []string{"me"}},
		{[]string{"-s", "http://x"}, nil},
		{[]string{"--weird", "me"}, []string{"--weird", "me"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripGlobalFlags(tt.args), "%v", tt.args)
	}
}

func TestLoginStoresToken(t *testing.T) {
	stubPassword(t, "pw")
	a, f, out := newTestApp(t, map[string]string{
		"POST /api/auth/login": `{"token":"tok-1","user":{"id":1,"username":"ann"}}`,
		"GET /api/auth/me":     `{"user":{"id":1,"username":"ann","email":"ann@example.com","fullname":"Ann"}}`,
	}, "ann@example.com\n")

	require.NoError(t, a.Run(context.Background(), []string{"login"}))
	assert.Contains(t, out.String(), "Logged in as ann")

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(f.bodies["POST /api/auth/login"]), &body))
	assert.Equal(t, map[string]string{"email": "ann@example.com", "password": "pw"}, body)

	stored, err := os.ReadFile(a.tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(stored))

	// a fresh app picks the token up from disk
	b, err := newApp(a.config, a.tokenPath, strings.NewReader(""), out)
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background(), []string{"me"}))
	assert.Equal(t, "Bearer tok-1", f.auth[len(f.auth)-1])
	assert.Contains(t, out.String(), "ann@example.com")

	require.NoError(t, b.Run(context.Background(), []string{"logout"}))
	_, err = os.Stat(a.tokenPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRegister(t *testing.T) {
	stubPassword(t, "pw")
	a, f, out := newTestApp(t, map[string]string{
		"POST /api/auth/register": `{"token":"tok-2","user":{"id":2,"username":"bob"}}`,
	}, "bob@example.com\nbob\nBob Stone\n")

	require.NoError(t, a.Run(context.Background(), []string{"register"}))
	assert.Contains(t, out.String(), "Registered as bob")

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(f.bodies["POST /api/auth/register"]), &body))
	assert.Equal(t, "Bob Stone", body["fullname"])
	assert.Equal(t, "bob", body["username"])
}

func TestTaskCommands(t *testing.T) {
	a, f, out := newTestApp(t, map[string]string{
		"GET /api/tasks":       `[{"id":1,"title":"Report","categoryId":2,"priority":"high","completed":true,"dueDate":"2024-06-01"}]`,
		"POST /api/tasks":      `{"id":9,"title":"Buy milk","categoryId":2}`,
		"PUT /api/tasks/9":     `{"id":9,"completed":true}`,
		"DELETE /api/tasks/9":  `{"message":"Task deleted successfully"}`,
		"GET /api/tasks/stats": `{"total":3,"completed":1,"pending":2}`,
	}, "")
	ctx := context.Background()

	require.NoError(t, a.Run(ctx, []string{"tasks", "-search", "rep", "-category", "2"}))
	assert.Contains(t, out.String(), "[x] 1\tReport\t(high, category 2 due 2024-06-01)")

	require.NoError(t, a.Run(ctx, []string{"add-task", "2", "Buy", "milk"}))
	assert.JSONEq(t, `{"title":"Buy milk","categoryId":2}`, f.bodies["POST /api/tasks"])

	require.NoError(t, a.Run(ctx, []string{"done", "9"}))
	require.NoError(t, a.Run(ctx, []string{"rm-task", "9"}))
	require.NoError(t, a.Run(ctx, []string{"stats"}))
	assert.Contains(t, out.String(), "total 3, completed 1, pending 2")

	assert.Equal(t, "GET /api/tasks?categoryId=2&search=rep", f.requests[0])

	err := a.Run(ctx, []string{"done", "abc"})
	require.Error(t, err)
	assert.Equal(t, "usage: taskctl done <taskId>", err.Error())

	err = a.Run(ctx, []string{"rm-task", "5"})
	assert.ErrorContains(t, err, "Task not found")
}

func TestMoveCommand(t *testing.T) {
	a, f, out := newTestApp(t, map[string]string{
		"PUT /api/tasks/4": `{"id":4,"title":"Report","categoryId":7}`,
	}, "")
	ctx := context.Background()

	require.NoError(t, a.Run(ctx, []string{"move", "4", "7"}))
	assert.JSONEq(t, `{"categoryId":7}`, f.bodies["PUT /api/tasks/4"])
	assert.Contains(t, out.String(), "Task 4 moved to category 7")

	for _, args := range [][]string{{"move", "4"}, {"move", "4", "x"}, {"move", "0", "7"}} {
		err := a.Run(ctx, args)
		require.Error(t, err)
		assert.Equal(t, "usage: taskctl move <taskId> <categoryId>", err.Error())
	}
	assert.Len(t, f.requests, 1)
}

func TestCategoryCommands(t *testing.T) {
	a, f, out := newTestApp(t, map[string]string{
		"GET /api/categories":      `[{"id":1,"name":"Work","color":"blue"}]`,
		"POST /api/categories":     `{"id":2,"name":"Home","color":"green"}`,
		"DELETE /api/categories/2": `{"message":"Category deleted successfully"}`,
	}, "")
	ctx := context.Background()

	require.NoError(t, a.Run(ctx, []string{"categories"}))
	assert.Contains(t, out.String(), "1\tWork\tblue")

	require.NoError(t, a.Run(ctx, []string{"add-category", "Home", "green"}))
	assert.JSONEq(t, `{"name":"Home","color":"green"}`, f.bodies["POST /api/categories"])

	require.NoError(t, a.Run(ctx, []string{"rm-category", "2"}))

	assert.Error(t, a.Run(ctx, []string{"add-category"}))
}

func TestExportImportFiles(t *testing.T) {
	doc := `{"categories":[],"tasks":[],"exportDate":"2024-05-01T00:00:00Z"}`
	a, f, out := newTestApp(t, map[string]string{
		"GET /api/export":  doc,
		"POST /api/import": `{"message":"Data imported successfully","categories":0,"tasks":0}`,
	}, "")
	ctx := context.Background()

	file := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, a.Run(ctx, []string{"export", file}))

	saved, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(saved))

	require.NoError(t, a.Run(ctx, []string{"import", file}))
	assert.JSONEq(t, doc, f.bodies["POST /api/import"])
	assert.Contains(t, out.String(), "Data imported successfully: 0 categories, 0 tasks")

	assert.Error(t, a.Run(ctx, []string{"import", filepath.Join(t.TempDir(), "missing.json")}))
}

func TestSnapshotCommand(t *testing.T) {
	a, f, out := newTestApp(t, map[string]string{
		"POST /api/export/snapshot": "",
		"GET /bucket/snap.json":     `{"categories":[],"tasks":[]}`,
	}, "")
	f.replies["POST /api/export/snapshot"] = `{"key":"snapshots/ann/snap.json","url":"` + a.config.ServerURL + `/bucket/snap.json","exportDate":"2024-05-01T00:00:00Z"}`

	file := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, a.Run(context.Background(), []string{"snapshot", file}))
	assert.Contains(t, out.String(), "Snapshot snapshots/ann/snap.json")

	saved, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":[],"tasks":[]}`, string(saved))
}

func TestHelpAndUnknown(t *testing.T) {
	a, _, out := newTestApp(t, nil, "")

	require.NoError(t, a.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "add-task <categoryId> <title>")

	err := a.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorContains(t, err, "unknown command")
}

func TestShell(t *testing.T) {
	a, f, out := newTestApp(t, map[string]string{
		"GET /api/tasks/stats": `{"total":1,"completed":0,"pending":1}`,
	}, "stats\n\nbogus\nexit\nstats\n")

	require.NoError(t, a.Run(context.Background(), []string{"shell"}))
	assert.Contains(t, out.String(), "total 1, completed 0, pending 1")
	assert.Contains(t, out.String(), `error: unknown command "bogus"`)
	assert.Contains(t, out.String(), "Bye!")
	assert.Len(t, f.requests, 1, "nothing runs after exit")
}
