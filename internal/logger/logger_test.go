package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	defer DisableLogger()

	t.Run("bad level", func(t *testing.T) {
		require.Error(t, InitLogger(Settings{Level: "chatty"}))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mediatype.log")
		require.NoError(t, InitLogger(Settings{FilePath: path, Level: "info", MaxSize: 1}))

		Debug("test", "hidden %d", 1)
		Info("test", "visible %d", 2)
		Warn("test", "also visible")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NotContains(t, string(content), "hidden")
		require.Contains(t, string(content), `"message":"visible 2"`)
		require.Contains(t, string(content), `"sender":"test"`)
		require.Contains(t, string(content), "also visible")
	})
}
