package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tutor-board/internal/domain/demand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList_FallbackWhenFeedDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := run(t, "list", "--source", srv.URL, "--city", "深圳")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "D-1001"))
	assert.True(t, strings.HasPrefix(lines[1], "D-1002"))
	assert.Contains(t, lines[2], "2 条需求")
	assert.Contains(t, lines[2], demand.HintFallback)
}

func TestList_LiveFeedWithSort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":"A","title":"低","salaryMin":100,"salaryMax":150},
			{"id":"B","title":"高","salaryMin":300,"salaryMax":400}
		]}`))
	}))
	defer srv.Close()

	out, err := run(t, "list", "--source", srv.URL, "--sort", "salaryDesc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "B"))
	assert.Contains(t, lines[0], "¥300-400/h")
	assert.Contains(t, lines[2], "数据来源：/api/tutoring/demands")
}

func TestList_StripsControlSequencesFromFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"X\u001b]0;t\u0007","title":"\u001b[2Jwipe","city":"\u001b[31m深圳","grade":"高一\tA"}]`))
	}))
	defer srv.Close()

	out, err := run(t, "list", "--source", srv.URL)
	require.NoError(t, err)

	assert.NotContains(t, out, "\x1b")
	assert.NotContains(t, out, "\x07")
	assert.Contains(t, out, "[2Jwipe")
	assert.Contains(t, out, "[31m深圳")
	assert.True(t, strings.HasPrefix(out, "X]0;t"))
}

func TestList_TimeZoneOrdersZoneLessTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"local","createdAt":"2026-02-16 10:30"},
			{"id":"utc","createdAt":"2026-02-16T03:00:00Z"}
		]`))
	}))
	defer srv.Close()

	out, err := run(t, "list", "--source", srv.URL, "--tz", "UTC")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "local"))

	_, err = run(t, "list", "--source", srv.URL, "--tz", "Mars/Olympus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --tz")
}

func TestStoreCommandsNeedDatabase(t *testing.T) {
	t.Setenv("APP_NAME", "demandctl")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_HOST", "")

	for _, args := range [][]string{{"migrate"}, {"seed"}, {"import", "https://mp.weixin.qq.com/s/x"}} {
		_, err := run(t, args...)
		require.Error(t, err, args[0])
		assert.Contains(t, err.Error(), "DB_HOST")
	}
}

func TestImportRequiresURL(t *testing.T) {
	_, err := run(t, "import")
	assert.Error(t, err)
}
