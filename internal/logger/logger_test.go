package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainFormatter(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		name    string
		data    logrus.Fields
		message string
		want    string
	}{
		{
			name: "component and sorted fields",
			data: logrus.Fields{
				"component": "cli",
				"caller":    "x.go:1",
				"run_id":    "r1",
				"line":      3,
			},
			message: "skipped input line",
			want:    "x.go:1 [2025-01-02T03:04:05Z] [WARNING] [cli] skipped input line line=3 run_id=r1\n",
		},
		{
			name:    "no component",
			data:    logrus.Fields{"kind": "m.text"},
			message: "rendered",
			want:    "[2025-01-02T03:04:05Z] [WARNING] rendered kind=m.text\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Logger:  logrus.New(),
				Time:    ts,
				Level:   logrus.WarnLevel,
				Message: tc.message,
				Data:    tc.data,
			}
			out, err := (PlainFormatter{}).Format(entry)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
		})
	}
}

func TestShortenFilePath(t *testing.T) {
	cases := map[string]string{
		"/home/u/src/matrix-render/internal/render/render.go": "internal/render/render.go",
		"/home/u/src/matrix-render/cmd/matrix-render/main.go": "cmd/matrix-render/main.go",
		"/tmp/other.go": "other.go",
	}
	for in, want := range cases {
		assert.Equal(t, want, shortenFilePath(in), in)
	}
}

func TestConfigureLevel(t *testing.T) {
	l := logrus.New()
	SetRoot(l)
	t.Cleanup(func() { SetRoot(nil) })

	require.NoError(t, Configure("debug"))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	require.NoError(t, Configure(""))
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	assert.Error(t, Configure("chatty"))
}

func TestSetupFileWritesNamedEntries(t *testing.T) {
	l := logrus.New()
	SetRoot(l)
	t.Cleanup(func() { SetRoot(nil) })
	require.NoError(t, Configure("info"))

	path := filepath.Join(t.TempDir(), "nested", "render.log")
	closer, resolved, err := SetupFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)

	Named("feed").WithField("line", 7).Warn("bad line")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, want := range []string{"[WARNING]", "[feed]", "bad line", "line=7", "logger_test.go:"} {
		assert.Contains(t, string(data), want)
	}
}
