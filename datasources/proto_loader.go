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
	"os"
	"strings"
	"sync"

	"github.com/google/rivulet/core/protoloader"
	"github.com/google/rivulet/core/tables"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// ProtoLoader implements Loader for protobuf files.
//
// Required config keys:
//   - proto_file: path to the data file (.textproto or .binpb)
//   - message_type: fully qualified proto message name
//
// Optional config keys:
//   - descriptor_set: path to a .pb descriptor set file
//   - format: "textproto" or "binary" (inferred from the extension if
//     not specified)
type ProtoLoader struct {
	mu     sync.Mutex
	loader *protoloader.Loader

	// descriptor set paths already registered
	loadedDescriptors map[string]bool
}

// NewProtoLoader creates a new proto loader with an empty registry.
func NewProtoLoader() *ProtoLoader {
	return &ProtoLoader{
		loader:            protoloader.NewLoader(new(protoregistry.Files)),
		loadedDescriptors: make(map[string]bool),
	}
}

// SourceType returns "proto".
func (l *ProtoLoader) SourceType() string {
	return "proto"
}

// DiscoverSpec discovers the table spec from the proto descriptor.
func (l *ProtoLoader) DiscoverSpec(config map[string]string) (*TableSpec, error) {
	messageType := config["message_type"]
	if messageType == "" {
		return nil, fmt.Errorf("message_type is required")
	}

	if ds := config["descriptor_set"]; ds != "" {
		if err := l.LoadDescriptorSet(ds); err != nil {
			return nil, fmt.Errorf("failed to load descriptor set: %w", err)
		}
	}

	fields, err := l.loader.DiscoverSchema(messageType)
	if err != nil {
		return nil, err
	}

	spec := &TableSpec{Columns: make([]ColumnSpec, len(fields))}
	for i, f := range fields {
		spec.Columns[i] = ColumnSpec{Name: f.Name, Type: f.Type}
	}
	return spec, nil
}

// Load parses a protobuf file and returns a DataTable. The column spec
// comes from the message descriptor itself, so the spec argument is not
// consulted.
func (l *ProtoLoader) Load(config map[string]string, _ *TableSpec) (*tables.DataTable, error) {
	protoFile := config["proto_file"]
	if protoFile == "" {
		return nil, fmt.Errorf("proto_file is required")
	}
	messageType := config["message_type"]
	if messageType == "" {
		return nil, fmt.Errorf("message_type is required")
	}

	if ds := config["descriptor_set"]; ds != "" {
		if err := l.LoadDescriptorSet(ds); err != nil {
			return nil, fmt.Errorf("failed to load descriptor set: %w", err)
		}
	}

	format := config["format"]
	if format == "" {
		if strings.HasSuffix(protoFile, ".textproto") {
			format = "textproto"
		} else {
			format = "binary"
		}
	}

	data, err := os.ReadFile(protoFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read proto file: %w", err)
	}

	var msg protoreflect.Message
	switch format {
	case "textproto":
		msg, err = l.loader.ParseTextproto(data, messageType)
	case "binary":
		msg, err = l.loader.ParseBinary(data, messageType)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'textproto' or 'binary')", format)
	}
	if err != nil {
		return nil, err
	}

	return l.loader.BuildTable(msg)
}

// LoadDescriptorSet registers a .pb descriptor set file. Paths already
// loaded are skipped.
func (l *ProtoLoader) LoadDescriptorSet(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loadedDescriptors[path] {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read descriptor set: %w", err)
	}
	if err := l.loader.RegisterDescriptorSet(data); err != nil {
		return err
	}

	l.loadedDescriptors[path] = true
	return nil
}

// RegisterDescriptorSet registers a descriptor set from raw bytes.
func (l *ProtoLoader) RegisterDescriptorSet(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loader.RegisterDescriptorSet(data)
}

// RegisteredMessages returns all message names in the loader's registry.
func (l *ProtoLoader) RegisteredMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loader.RegisteredMessages()
}
