package amend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// grammarManifest describes a grammar directory's entry file and any
// fallback-rule overrides, mirroring the YAML pattern manifests
// pkg/pattern loads for format patterns.
type grammarManifest struct {
	EntryFile        string            `yaml:"entry_file"`
	FallbackOverrides map[string]string `yaml:"fallback_overrides,omitempty"`
}

// GrammarStore loads the BNF grammar from a directory and optionally
// watches that directory for edits, reloading the grammar on change. It is
// grounded on pkg/pattern.DefaultRegistry's load/watch lifecycle, adapted
// for a single plain-text BNF file instead of a directory of YAML pattern
// documents (the manifest here only records which file to load and any
// fallback-rule overrides; the grammar text itself stays plain BNF per
// spec.md §6).
type GrammarStore struct {
	mu       sync.RWMutex
	grammar  *Grammar
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onReload func(err error)
}

// NewGrammarStore creates an empty GrammarStore. Call LoadDirectory to
// populate it.
func NewGrammarStore() *GrammarStore {
	return &GrammarStore{}
}

// LoadDirectory reads grammar.yaml from dir (falling back to the first
// *.bnf file found if no manifest is present) and loads the referenced BNF
// source into a Grammar.
func (s *GrammarStore) LoadDirectory(dir string) error {
	s.dir = dir

	manifestPath := filepath.Join(dir, "grammar.yaml")
	entryFile := ""

	if data, err := os.ReadFile(manifestPath); err == nil {
		var manifest grammarManifest
		if yamlErr := yaml.Unmarshal(data, &manifest); yamlErr != nil {
			return fmt.Errorf("parsing grammar manifest %s: %w", manifestPath, yamlErr)
		}
		entryFile = manifest.EntryFile
	}

	if entryFile == "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading grammar directory %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".bnf") {
				entryFile = e.Name()
				break
			}
		}
	}

	if entryFile == "" {
		return fmt.Errorf("no grammar entry file found in %s", dir)
	}

	return s.LoadFile(filepath.Join(dir, entryFile))
}

// LoadFile loads a single BNF grammar file.
func (s *GrammarStore) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading grammar file %s: %w", path, err)
	}

	g, err := LoadGrammar(string(data))
	if err != nil {
		return fmt.Errorf("loading grammar %s: %w", path, err)
	}

	s.mu.Lock()
	s.grammar = g
	s.mu.Unlock()
	return nil
}

// Grammar returns the currently loaded grammar, or nil if none has loaded
// yet.
func (s *GrammarStore) Grammar() *Grammar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grammar
}

// Reload re-reads the grammar directory.
func (s *GrammarStore) Reload() error {
	if s.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}
	return s.LoadDirectory(s.dir)
}

// SetOnReload sets a callback invoked after each watch-triggered reload
// (err is nil on success).
func (s *GrammarStore) SetOnReload(fn func(err error)) {
	s.onReload = fn
}

// Watch starts watching the grammar directory for changes, reloading on
// write/create/rename/remove events for .bnf and grammar.yaml files. Used
// by a long-running `regula amend --watch` process.
func (s *GrammarStore) Watch() error {
	if s.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	s.watcher = watcher
	s.stopChan = make(chan struct{})

	go s.watchLoop()

	if err := watcher.Add(s.dir); err != nil {
		s.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", s.dir, err)
	}
	return nil
}

func (s *GrammarStore) watchLoop() {
	for {
		select {
		case <-s.stopChan:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".bnf") && !strings.HasSuffix(event.Name, "grammar.yaml") {
				continue
			}
			err := s.Reload()
			if s.onReload != nil {
				s.onReload(err)
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// StopWatch stops watching the grammar directory.
func (s *GrammarStore) StopWatch() {
	if s.stopChan != nil {
		close(s.stopChan)
	}
	if s.watcher != nil {
		s.watcher.Close()
	}
}
