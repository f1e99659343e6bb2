package app

import (
	"errors"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/log"
	"github.com/dshills/vimcore/internal/session"
)

// WatchConfig reloads the configuration file whenever it changes. New
// settings reach the engine before the next key.
func (a *Application) WatchConfig() error {
	if a.opts.ConfigPath == "" {
		return nil
	}
	w, err := config.Watch(a.opts.ConfigPath, func(cfg *config.Config, err error) {
		if err != nil {
			log.Warn("config reload failed", "path", a.opts.ConfigPath, "error", err)
			return
		}
		a.offerConfig(cfg)
	})
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()
	log.Info("watching config", "path", a.opts.ConfigPath)
	return nil
}

// offerConfig queues cfg, replacing an older reload not yet applied.
func (a *Application) offerConfig(cfg *config.Config) {
	for {
		select {
		case a.reloads <- cfg:
			return
		default:
		}
		select {
		case <-a.reloads:
		default:
		}
	}
}

// ApplyPendingConfig applies a reloaded configuration, if any.
func (a *Application) ApplyPendingConfig() bool {
	var cfg *config.Config
	select {
	case cfg = <-a.reloads:
	default:
		return false
	}

	a.mu.Lock()
	old := a.config
	a.config = cfg
	a.mu.Unlock()

	applyLogLevel(cfg)
	a.engine.ApplyConfig(cfg.Input)
	if len(cfg.Input.Map) != len(old.Input.Map) || cfg.Input.Remap != old.Input.Remap {
		log.Info("key mapping changes apply after restart")
	}
	log.Info("config reloaded", "escape", cfg.Input.EscapeSequence)
	return true
}

// sessionPath returns the session file, or "" when sessions are off.
func (a *Application) sessionPath() (string, error) {
	cfg := a.Config()
	if !cfg.Session.Enabled {
		return "", nil
	}
	if cfg.Session.Path != "" {
		return cfg.Session.Path, nil
	}
	return session.DefaultPath()
}

func (a *Application) stores() session.Stores {
	st := a.engine.State()
	return session.Stores{Registers: st.Registers, Marks: st.Marks, Macros: st.Macros}
}

// restoreSession loads registers, global marks and macros. Marks are
// saved against file paths and come back against the identifier of the
// open document for that path, or the path itself.
func (a *Application) restoreSession() error {
	path, err := a.sessionPath()
	if err != nil || path == "" {
		return err
	}
	data, err := session.Load(path)
	if err != nil || data == nil {
		return err
	}
	snap, err := session.Decode(data)
	if err != nil {
		return err
	}
	log.Info("session restored", "path", path, "registers", len(snap.Registers), "marks", len(snap.Marks))
	return snap.Restore(a.stores(), func(name string) string {
		if doc, ok := a.documents.ByPath(name); ok {
			return doc.ID
		}
		return name
	})
}

// SaveSession writes the session file when sessions are enabled.
func (a *Application) SaveSession() error {
	path, err := a.sessionPath()
	if err != nil || path == "" {
		return err
	}
	snap := session.Capture(a.stores(), func(id string) string {
		if doc, ok := a.documents.Get(id); ok && doc.Path != "" {
			return doc.Path
		}
		return id
	})
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := session.Save(path, data); err != nil {
		return err
	}
	log.Info("session saved", "path", path)
	return nil
}

// Shutdown saves the session and stops the config watcher. It is safe
// to call more than once.
func (a *Application) Shutdown() error {
	var errs []error
	a.shutdown.Do(func() {
		errs = append(errs, a.SaveSession())
		a.mu.Lock()
		w := a.watcher
		a.watcher = nil
		a.mu.Unlock()
		if w != nil {
			errs = append(errs, w.Close())
		}
		a.requestQuit()
	})
	return errors.Join(errs...)
}
