package mediatype

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func collect(t *Table) map[string]MediaType {
	entries := make(map[string]MediaType)
	for suffix, m := range t.Iter() {
		entries[suffix] = m
	}

	return entries
}

func TestTable(t *testing.T) {
	t.Run("unknown suffix", func(t *testing.T) {
		table := NewBuiltin()
		for i := 0; i < 100; i++ {
			suffix := "x" + uniuri.NewLen(12)
			require.Equal(t, DefaultMediaType, table.ForSuffix(suffix))
		}
	})

	t.Run("add", func(t *testing.T) {
		table := New()
		table.Add("png", PNG)
		require.Equal(t, PNG, table.ForSuffix("png"))
		require.Equal(t, DefaultMediaType, table.ForSuffix("PNG"))

		table.Add("PNG", "image/x-png")
		require.Equal(t, "image/x-png", table.ForSuffix("PNG"))
		require.Equal(t, PNG, table.ForSuffix("png"))

		table.Add("png", "image/apng")
		require.Equal(t, "image/apng", table.ForSuffix("png"))
		require.Equal(t, 2, table.Len())
	})

	t.Run("for path", func(t *testing.T) {
		table := New()
		table.Add("gz", GZIP)
		table.Add("tar", TAR)
		require.Equal(t, GZIP, table.ForPath("/a/b/archive.tar.gz"))
		require.Equal(t, TAR, table.ForPath("archive.tar"))
		require.Equal(t, DefaultMediaType, table.ForPath("/a.gz/archive"))
		require.Equal(t, DefaultMediaType, table.ForPath(""))
	})

	t.Run("for file", func(t *testing.T) {
		table := NewBuiltin()
		file, err := os.Create(filepath.Join(t.TempDir(), "index.html"))
		require.NoError(t, err)
		defer file.Close()

		require.Equal(t, HTML, table.ForFile(file))

		info, err := file.Stat()
		require.NoError(t, err)
		require.Equal(t, HTML, table.ForFile(info))
	})

	t.Run("find", func(t *testing.T) {
		table := New()
		table.Add("json", JSON)

		m, found := table.Find("json")
		require.True(t, found)
		require.Equal(t, JSON, m)

		m, found = table.Find("yaml")
		require.False(t, found)
		require.Empty(t, m)
	})

	t.Run("resolve", func(t *testing.T) {
		table := New()
		table.Add("json", JSON)
		table.SetDefault(Plain)

		m, explicit := table.Resolve("json")
		require.True(t, explicit)
		require.Equal(t, JSON, m)

		m, explicit = table.Resolve("yaml")
		require.False(t, explicit)
		require.Equal(t, Plain, m)
	})

	t.Run("default", func(t *testing.T) {
		table := New()
		require.Equal(t, OctetStream, table.Default())

		table.SetDefault(Plain)
		require.Equal(t, Plain, table.Default())
		require.Equal(t, Plain, table.ForSuffix("unknown"))

		_, found := table.Find("unknown")
		require.False(t, found)
	})

	t.Run("clear", func(t *testing.T) {
		table := NewBuiltin()
		table.SetDefault(Plain)
		require.NotZero(t, table.Len())

		table.Clear()
		require.Zero(t, table.Len())
		require.Equal(t, Plain, table.ForSuffix("html"))
		require.Empty(t, collect(table))
	})

	t.Run("iter", func(t *testing.T) {
		table := New()
		table.Add("png", PNG)
		table.Add("css", CSS)
		table.Add("html", HTML)

		var suffixes []string
		for suffix, m := range table.Iter() {
			suffixes = append(suffixes, suffix)
			// the iterator walks a snapshot, so this must neither deadlock nor be visible
			table.Add(suffix+"2", m)
		}

		require.Equal(t, []string{"css", "html", "png"}, suffixes)
		require.Equal(t, 6, table.Len())
	})

	t.Run("iter early break", func(t *testing.T) {
		table := NewBuiltin()
		var n int
		for range table.Iter() {
			n++
			if n == 3 {
				break
			}
		}

		require.Equal(t, 3, n)
	})
}

func TestTableLoad(t *testing.T) {
	t.Run("replaces entries", func(t *testing.T) {
		table := NewBuiltin()
		table.SetDefault(Plain)
		err := table.Load(strings.NewReader("text/html\thtm html\n# comment\nimage/png\tpng"))
		require.NoError(t, err)

		require.Equal(t, map[string]MediaType{
			"htm":  HTML,
			"html": HTML,
			"png":  PNG,
		}, collect(table))
		require.Equal(t, Plain, table.Default())
	})

	t.Run("add from merges", func(t *testing.T) {
		table := New()
		table.Add("png", "image/x-png")
		table.Add("css", CSS)
		require.NoError(t, table.AddFrom(strings.NewReader("image/png\tpng")))

		require.Equal(t, map[string]MediaType{
			"png": PNG,
			"css": CSS,
		}, collect(table))
	})

	t.Run("failing stream keeps parsed entries", func(t *testing.T) {
		boom := errors.New("boom")
		table := New()
		table.Add("css", CSS)
		r := io.MultiReader(strings.NewReader("text/html\thtm html\n"), iotest.ErrReader(boom))

		require.ErrorIs(t, table.Load(r), boom)
		require.Equal(t, map[string]MediaType{
			"htm":  HTML,
			"html": HTML,
		}, collect(table))
	})

	t.Run("missing file leaves table untouched", func(t *testing.T) {
		table := New()
		table.Add("css", CSS)

		err := table.LoadFile(filepath.Join(t.TempDir(), "nonexistent.types"))
		require.ErrorIs(t, err, os.ErrNotExist)
		require.Equal(t, map[string]MediaType{"css": CSS}, collect(table))
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mime.types")
		require.NoError(t, os.WriteFile(path, []byte("application/toml\ttoml\n"), 0o600))

		table, err := NewFromFile(path)
		require.NoError(t, err)
		require.Equal(t, 1, table.Len())
		require.Equal(t, "application/toml", table.ForPath("config.toml"))

		_, err = NewFromFile(path + ".missing")
		require.Error(t, err)
	})
}

func TestTableConcurrency(t *testing.T) {
	const (
		workers = 16
		perEach = 200
	)

	table := New()
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			for i := 0; i < perEach; i++ {
				suffix := strconv.Itoa(w) + "-" + strconv.Itoa(i)
				table.Add(suffix, Plain)
				_ = table.ForSuffix(suffix)
				_ = table.Len()
			}
		}(w)
	}

	wg.Wait()
	require.Equal(t, workers*perEach, table.Len())

	for w := 0; w < workers; w++ {
		for i := 0; i < perEach; i++ {
			_, found := table.Find(strconv.Itoa(w) + "-" + strconv.Itoa(i))
			require.True(t, found)
		}
	}
}

func TestTableReplace(t *testing.T) {
	table := NewBuiltin()
	table.SetDefault(Plain)
	table.Replace(map[string]MediaType{"glsl": "text/x-glsl"})

	require.Equal(t, map[string]MediaType{"glsl": "text/x-glsl"}, collect(table))
	require.Equal(t, Plain, table.ForSuffix("html"))
}
