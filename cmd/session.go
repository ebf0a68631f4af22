package cmd

import (
	"fmt"
	"log/slog"

	"github.com/kamusis/kwfinder/internal/config"
	"github.com/kamusis/kwfinder/internal/identity"
	"github.com/kamusis/kwfinder/internal/keyword"
)

// session is the state every search or update run starts from: an up-to-date
// fingerprint cache and freshly loaded keyword layers.
type session struct {
	cfg      *config.Config
	cache    *identity.Cache
	keywords *keyword.Set
	logger   *slog.Logger
	release  func()
}

// openSession loads the config, reconciles the cache against the model and
// lora directories, saves it if anything changed, and loads the keyword
// stores. The caller must call close.
func openSession() (*session, error) {
	logger := newLogger()
	cfg := loadConfigOrWarn()

	release, err := acquireRunLock(flagCache, flagLockTimeout)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, release: release}

	cache, err := identity.Load(flagCache)
	if err != nil {
		s.close()
		return nil, err
	}
	r := &identity.Reconciler{ModelDir: cfg.ModelPath, LoraDir: cfg.LoraPath, Logger: logger}
	res, err := r.Reconcile(cache)
	if err != nil {
		s.close()
		return nil, err
	}
	for _, key := range res.Removed {
		printMiss("", fmt.Sprintf("%s no longer installed, removed from cache", key))
	}
	if res.Changed() {
		if err := identity.Save(flagCache, cache); err != nil {
			s.close()
			return nil, err
		}
		logger.Debug("cache saved", "path", flagCache, "added", len(res.Added), "removed", len(res.Removed))
	}
	s.cache = cache

	set, err := keyword.Load(cfg.KeywordPath, logger)
	if err != nil {
		s.close()
		return nil, err
	}
	s.keywords = set
	return s, nil
}

func (s *session) close() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// loadConfigOrWarn loads the config file. A missing or broken config is
// reported and the run continues with environment overrides only; directory
// access fails later if nothing supplied the paths.
func loadConfigOrWarn() *config.Config {
	path, err := config.Resolve(flagConfig)
	if err == nil {
		cfg, loadErr := config.Load(path)
		if loadErr == nil {
			return cfg
		}
		err = loadErr
	}
	printWarn("", fmt.Sprintf("failed to load config: %v", err))
	printWarn("", "run 'kwfinder init' and fix the paths for your local setup")

	cfg := &config.Config{}
	if err := cfg.ApplyOverrides(); err != nil {
		printWarn("", err.Error())
	}
	return cfg
}
