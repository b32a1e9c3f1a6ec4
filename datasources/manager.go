/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/rivulet/core/tables"
)

// Source describes one named data source: which loader to use and its
// configuration.
type Source struct {
	Name       string
	SourceType string
	Config     map[string]string
}

// Manager holds source definitions and loads their tables lazily on
// first access.
type Manager struct {
	mu sync.RWMutex

	sources map[string]*Source
	loaders map[string]Loader

	// cached tables indexed by source name, populated lazily
	tables map[string]*tables.DataTable

	// base directory for resolving relative paths in source configs
	baseDir string
}

// NewManager creates a new data source manager.
func NewManager() *Manager {
	return &Manager{
		sources: make(map[string]*Source),
		loaders: make(map[string]Loader),
		tables:  make(map[string]*tables.DataTable),
	}
}

// RegisterLoader registers a loader for its source type, replacing any
// previous loader for that type.
func (m *Manager) RegisterLoader(loader Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// AddSource registers a source definition. Data is loaded on first
// LoadData call.
func (m *Manager) AddSource(source *Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.Name] = source
}

// SetBaseDir sets the directory against which relative file paths in
// source configs are resolved.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// GetSource returns the definition for a source, or nil if unknown.
func (m *Manager) GetSource(name string) *Source {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sources[name]
}

// GetSourceNames returns all registered source names, sorted.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadData returns the table for a source, loading it on first access.
//
// The loading process:
//  1. the loader discovers the table spec (column names and types)
//  2. the loader builds the table with that spec
func (m *Manager) LoadData(sourceName string) (*tables.DataTable, error) {
	m.mu.RLock()
	if table, ok := m.tables[sourceName]; ok {
		m.mu.RUnlock()
		return table, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	loader, hasLoader := m.loaders[source.SourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", source.SourceType)
	}

	config := resolveConfigPaths(source.Config, baseDir)

	spec, err := loader.DiscoverSpec(config)
	if err != nil {
		return nil, fmt.Errorf("failed to discover spec for source %q: %w", sourceName, err)
	}

	table, err := loader.Load(config, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}

	m.mu.Lock()
	m.tables[sourceName] = table
	m.mu.Unlock()

	return table, nil
}

// resolveConfigPaths resolves relative file paths in config to baseDir.
func resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	if baseDir == "" {
		return config
	}

	pathKeys := map[string]bool{
		"file_path":      true,
		"proto_file":     true,
		"descriptor_set": true,
	}

	resolved := make(map[string]string, len(config))
	for k, v := range config {
		if pathKeys[k] && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache drops a cached table, forcing a reload on next access.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, sourceName)
}

// InvalidateAllCaches drops all cached tables.
func (m *Manager) InvalidateAllCaches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]*tables.DataTable)
}

// IsLoaded reports whether a source's table is currently cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[sourceName]
	return ok
}
