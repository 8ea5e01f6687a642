// registry.go: plugin discovery, selection and manifest hot-reload
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// ManifestFileName is the file name plugin discovery looks for in each
// subdirectory of a plugin path.
const ManifestFileName = "manifest.yaml"

// SelectAll is the selection predicate that accepts every plugin.
func SelectAll(*Plugin) bool { return true }

// SelectByName builds a selection predicate matching any of the given
// plugin names.
func SelectByName(names ...string) func(*Plugin) bool {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	return func(p *Plugin) bool {
		_, ok := wanted[p.Name()]
		return ok
	}
}

// Registry holds the plugins discovered under a plugin path and keeps them
// current while a manifest watcher is running.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
	builder *PluginBuilder
	logger  Logger

	watcher *argus.Watcher
}

// NewRegistry creates an empty registry. A nil builder gets the default
// codec set, a nil logger disables logging.
func NewRegistry(builder *PluginBuilder, logger Logger) *Registry {
	if builder == nil {
		builder = NewPluginBuilder(nil, logger)
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	return &Registry{
		plugins: make(map[string]*Plugin),
		builder: builder,
		logger:  logger,
	}
}

// LoadDirectory walks the plugin path, loading every manifest file found.
// Manifests that fail to load are logged and skipped so one broken plugin
// never hides the rest; two loadable plugins sharing a name is an error.
func (r *Registry) LoadDirectory(pluginPath string) error {
	manifests := []string{}
	err := filepath.WalkDir(pluginPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == ManifestFileName {
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		return NewPluginDiscoveryError(pluginPath, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, manifestPath := range manifests {
		plugin, err := r.builder.Load(manifestPath)
		if err != nil {
			r.logger.Warn("Skipping unloadable plugin manifest", "path", manifestPath, "error", err)
			continue
		}
		if _, exists := r.plugins[plugin.Name()]; exists {
			return NewDuplicatePluginError(plugin.Name())
		}
		r.plugins[plugin.Name()] = plugin
		r.logger.Debug("Loaded plugin", "name", plugin.Name(), "version", plugin.Version())
	}
	return nil
}

// Plugins returns all registered plugins sorted by name.
func (r *Registry) Plugins() []*Plugin {
	return r.Select(SelectAll)
}

// Select returns the registered plugins accepted by the predicate, sorted
// by name.
func (r *Registry) Select(predicate func(*Plugin) bool) []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	selected := make([]*Plugin, 0, len(r.plugins))
	for _, plugin := range r.plugins {
		if predicate(plugin) {
			selected = append(selected, plugin)
		}
	}
	sortPluginsByName(selected)
	return selected
}

// Get looks up a plugin by name.
func (r *Registry) Get(name string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// WatchOptions configures the manifest hot-reload watcher.
type WatchOptions struct {
	// PollInterval is how often watched manifests are checked for changes.
	PollInterval time.Duration

	// CacheTTL bounds how long a manifest stat result may be served from
	// cache. Must not exceed PollInterval.
	CacheTTL time.Duration
}

// DefaultWatchOptions returns the production watcher intervals.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval: 2 * time.Second,
		CacheTTL:     time.Second,
	}
}

// Watch starts an Argus watcher over the already-loaded manifest files and
// reloads a plugin whenever its manifest changes on disk. A manifest that
// becomes invalid keeps its last good plugin; a deleted manifest removes
// the plugin. Stop releases the watcher.
func (r *Registry) Watch(options WatchOptions) error {
	if options.PollInterval <= 0 {
		options = DefaultWatchOptions()
	}
	if options.CacheTTL <= 0 {
		options.CacheTTL = options.PollInterval / 2
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher != nil {
		return nil
	}
	watcher := argus.New(argus.Config{
		PollInterval:         options.PollInterval,
		CacheTTL:             options.CacheTTL,
		MaxWatchedFiles:      len(r.plugins) + 16,
		OptimizationStrategy: argus.OptimizationSingleEvent,
		ErrorHandler: func(err error, path string) {
			r.logger.Error("Manifest watcher error", "path", path, "error", err)
		},
	})
	for name, plugin := range r.plugins {
		pluginName := name
		if err := watcher.Watch(plugin.ManifestPath(), func(event argus.ChangeEvent) {
			r.handleManifestChange(pluginName, event)
		}); err != nil {
			return err
		}
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	r.watcher = watcher
	return nil
}

// Stop halts the manifest watcher if one is running. The registry lock is
// released before the watcher shuts down so an in-flight reload callback
// can still finish.
func (r *Registry) Stop() error {
	r.mu.Lock()
	watcher := r.watcher
	r.watcher = nil
	r.mu.Unlock()
	if watcher == nil {
		return nil
	}
	return watcher.Stop()
}

func (r *Registry) handleManifestChange(name string, event argus.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.IsDelete {
		delete(r.plugins, name)
		r.logger.Warn("Plugin manifest removed", "name", name, "path", event.Path)
		return
	}
	plugin, err := r.builder.Load(event.Path)
	if err != nil {
		r.logger.Warn("Keeping previous plugin, reload failed", "name", name, "path", event.Path, "error", err)
		return
	}
	r.plugins[name] = plugin
	r.logger.Info("Reloaded plugin manifest", "name", name, "version", plugin.Version())
}

func sortPluginsByName(plugins []*Plugin) {
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name() < plugins[j].Name()
	})
}
