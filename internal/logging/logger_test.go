package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger(Config{Level: "debug"}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger(Config{Level: "verbose"}).GetLevel())

	off := NewLogger(Config{Level: "off"})
	assert.Equal(t, io.Discard, off.Out)
}

func TestNewLogger_WritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "2000-01-01.log")
	require.NoError(t, os.WriteFile(old, []byte("old\n"), 0644))
	past := time.Now().AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(old, past, past))

	l := NewLogger(Config{Level: "info", LogsDir: dir, SavingDays: 7})
	l.Info("Program post-processed")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Program post-processed")

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err))
}
