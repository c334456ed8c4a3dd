package httpd

import (
	"crypto/tls"
	"os"
	"path/filepath"

	"golang.org/x/crypto/acme/autocert"

	"github.com/indigo-web/mediatype/config"
	"github.com/indigo-web/mediatype/internal/logger"
)

func autocertTLS(cfg config.Autocert) *tls.Config {
	m := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.Domains...),
	}

	cache := cfg.CacheDir
	if len(cache) == 0 {
		cache = cacheDir()
	}

	if err := mkdirIfNotExists(cache); err != nil {
		logger.Warn(logSender, "auto HTTPS: not using a cache: %v", err)
	} else {
		m.Cache = autocert.DirCache(cache)
	}

	return m.TLSConfig()
}

func cacheDir() string {
	const base = "mediatype-autocert"

	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, base)
	}

	return filepath.Join(os.TempDir(), base)
}

func mkdirIfNotExists(dir string) error {
	if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
		return nil
	}

	return os.MkdirAll(dir, 0o700)
}
