package themefile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

// Source is a charts.StyleSource backed by a theme file. It reloads the
// file when it changes and notifies subscribers. A file that fails to load
// keeps the previous style.
type Source struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu     sync.Mutex
	style  charts.Style
	err    error
	subs   map[int]func()
	nextID int
}

// Watch loads path and reloads it on every write until ctx is done or
// Close is called. The directory is watched rather than the file, so
// editors that replace the file on save are handled.
func Watch(ctx context.Context, path string) (*Source, error) {
	st, err := Load(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("themefile: failed creating file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("themefile: watch %s: %w", path, err)
	}
	s := &Source{
		path:    filepath.Clean(path),
		watcher: watcher,
		done:    make(chan struct{}),
		style:   st,
		subs:    make(map[int]func()),
	}
	go s.loop(ctx)
	return s, nil
}

func (s *Source) loop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			s.watcher.Close()
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			s.reload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			charts.Logger().Warn("theme watch", "path", s.path, "err", err)
		}
	}
}

func (s *Source) reload() {
	st, err := Load(s.path)
	s.mu.Lock()
	s.err = err
	if err != nil {
		s.mu.Unlock()
		charts.Logger().Warn("theme reload", "path", s.path, "err", err)
		return
	}
	s.style = st
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	charts.Logger().Info("theme reloaded", "path", s.path)
	for _, fn := range fns {
		fn()
	}
}

// Style implements charts.StyleSource.
func (s *Source) Style() charts.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// Subscribe implements charts.StyleSource.
func (s *Source) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Err returns the error of the last reload, or nil if it succeeded.
func (s *Source) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops watching and waits for the watch loop to exit.
func (s *Source) Close() error {
	err := s.watcher.Close()
	<-s.done
	return err
}
