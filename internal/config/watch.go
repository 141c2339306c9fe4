package config

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes and hands valid reloads
// to onChange. Invalid reloads are logged and skipped; the previous config
// stays active. The returned stop function releases the watcher.
//
// The parent directory is watched rather than the file itself so that
// rename-and-replace editors (and configmap style symlink swaps) still
// trigger a reload.
func Watch(path string, onChange func(*Config)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	base := filepath.Base(path)

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Printf("config reload skipped: %v", err)
					continue
				}
				log.Printf("config reloaded from %s", strings.TrimSpace(path))
				onChange(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("config watch error: %v", err)
			}
		}
	}()

	return func() { _ = w.Close() }, nil
}
