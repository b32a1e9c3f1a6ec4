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

// Package protoloader loads textproto files into DataTables with dynamic
// schema discovery. Message descriptors come from a pre-populated proto
// registry; no generated Go types are required.
//
// The expected message shape is a container with exactly one repeated
// message field. Each element of that field becomes a row, and the row
// message's scalar fields become columns. proto3 fields declared
// `optional` become optional columns, with unset fields loaded as
// absent values.
package protoloader

import (
	"fmt"
	"strings"

	"github.com/google/rivulet/core/columns"
	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/tables"
	"github.com/google/rivulet/core/values"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Loader parses textproto data into DataTables using a proto registry.
type Loader struct {
	registry *protoregistry.Files
}

// NewLoader creates a Loader backed by the given registry. Descriptors
// can be added later with RegisterDescriptorSet.
func NewLoader(registry *protoregistry.Files) *Loader {
	return &Loader{registry: registry}
}

// RegisterDescriptorSet adds all file descriptors from a serialized
// FileDescriptorSet (the output of protoc --descriptor_set_out) to the
// registry. Files already present are skipped.
func (l *Loader) RegisterDescriptorSet(data []byte) error {
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return fmt.Errorf("failed to unmarshal descriptor set: %w", err)
	}

	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return fmt.Errorf("failed to create file descriptors: %w", err)
	}

	var registerErr error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		if _, err := l.registry.FindFileByPath(fd.Path()); err == nil {
			return true
		}
		if err := l.registry.RegisterFile(fd); err != nil {
			registerErr = err
			return false
		}
		return true
	})
	return registerErr
}

// ParseTextproto parses textproto data into a dynamic message of the
// named type. The message type must be registered.
func (l *Loader) ParseTextproto(data []byte, messageName string) (protoreflect.Message, error) {
	msgDesc, err := l.findMessageDescriptor(messageName)
	if err != nil {
		return nil, err
	}

	msg := dynamicpb.NewMessage(msgDesc)
	opts := prototext.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse textproto: %w", err)
	}
	return msg, nil
}

// ParseBinary parses wire-format data into a dynamic message of the
// named type.
func (l *Loader) ParseBinary(data []byte, messageName string) (protoreflect.Message, error) {
	msgDesc, err := l.findMessageDescriptor(messageName)
	if err != nil {
		return nil, err
	}

	msg := dynamicpb.NewMessage(msgDesc)
	opts := proto.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse binary proto: %w", err)
	}
	return msg, nil
}

func (l *Loader) findMessageDescriptor(messageName string) (protoreflect.MessageDescriptor, error) {
	desc, err := l.registry.FindDescriptorByName(protoreflect.FullName(messageName))
	if err != nil {
		return nil, fmt.Errorf("message %q not found in registry: %w", messageName, err)
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", messageName)
	}
	return msgDesc, nil
}

// FindMessageByName implements protoregistry.MessageTypeResolver.
func (l *Loader) FindMessageByName(name protoreflect.FullName) (protoreflect.MessageType, error) {
	desc, err := l.registry.FindDescriptorByName(name)
	if err != nil {
		return nil, err
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", name)
	}
	return dynamicpb.NewMessageType(msgDesc), nil
}

// FindMessageByURL implements protoregistry.MessageTypeResolver.
func (l *Loader) FindMessageByURL(url string) (protoreflect.MessageType, error) {
	name := protoreflect.FullName(strings.TrimPrefix(url, "type.googleapis.com/"))
	return l.FindMessageByName(name)
}

// FindExtensionByName implements protoregistry.ExtensionTypeResolver.
func (l *Loader) FindExtensionByName(name protoreflect.FullName) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// FindExtensionByNumber implements protoregistry.ExtensionTypeResolver.
func (l *Loader) FindExtensionByNumber(message protoreflect.FullName, field protoreflect.FieldNumber) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// Field describes one column discovered from a row message descriptor.
type Field struct {
	Name string
	Type dtype.Type
	desc protoreflect.FieldDescriptor
}

// DiscoverSchema returns the columns that rows of the named container
// message will produce.
func (l *Loader) DiscoverSchema(messageName string) ([]Field, error) {
	msgDesc, err := l.findMessageDescriptor(messageName)
	if err != nil {
		return nil, err
	}
	rowField, err := rowFieldOf(msgDesc)
	if err != nil {
		return nil, err
	}
	return rowFields(rowField.Message()), nil
}

// rowFieldOf locates the single repeated message field that holds the rows.
func rowFieldOf(msgDesc protoreflect.MessageDescriptor) (protoreflect.FieldDescriptor, error) {
	var rowField protoreflect.FieldDescriptor
	fields := msgDesc.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if fd.Kind() == protoreflect.MessageKind && fd.Cardinality() == protoreflect.Repeated {
			if rowField != nil {
				return nil, fmt.Errorf("message %q has more than one repeated message field", msgDesc.FullName())
			}
			rowField = fd
		}
	}
	if rowField == nil {
		return nil, fmt.Errorf("message %q has no repeated message field", msgDesc.FullName())
	}
	return rowField, nil
}

// rowFields lists the scalar fields of the row message, in declaration order.
func rowFields(rowDesc protoreflect.MessageDescriptor) []Field {
	var result []Field
	fields := rowDesc.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if fd.Kind() == protoreflect.MessageKind || fd.IsList() || fd.IsMap() {
			continue
		}
		result = append(result, Field{
			Name: string(fd.Name()),
			Type: fieldType(fd),
			desc: fd,
		})
	}
	return result
}

// fieldType maps a proto field kind to a column type. Fields with
// explicit presence become optional columns.
func fieldType(fd protoreflect.FieldDescriptor) dtype.Type {
	var t dtype.Type
	switch fd.Kind() {
	case protoreflect.BoolKind:
		t = dtype.Bool()
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		t = dtype.Int()
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		t = dtype.Float()
	default:
		// string, bytes and enums load as strings
		t = dtype.String()
	}
	if fd.HasPresence() {
		t = dtype.Optional(t)
	}
	return t
}

// fieldValue converts a set proto field to a column value.
func fieldValue(val protoreflect.Value, fd protoreflect.FieldDescriptor) values.Value {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return values.NewBool(val.Bool())
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return values.NewInt(val.Int())
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return values.NewInt(int64(val.Uint()))
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return values.NewFloat(val.Float())
	case protoreflect.BytesKind:
		return values.NewString(string(val.Bytes()))
	case protoreflect.EnumKind:
		if ev := fd.Enum().Values().ByNumber(val.Enum()); ev != nil {
			return values.NewString(string(ev.Name()))
		}
		return values.NewString(fmt.Sprintf("%d", val.Enum()))
	default:
		return values.NewString(val.String())
	}
}

// BuildTable converts a parsed container message into a DataTable.
func (l *Loader) BuildTable(msg protoreflect.Message) (*tables.DataTable, error) {
	rowField, err := rowFieldOf(msg.Descriptor())
	if err != nil {
		return nil, err
	}
	fields := rowFields(rowField.Message())
	rows := msg.Get(rowField).List()

	table := tables.NewDataTable()
	for _, f := range fields {
		col, err := buildColumn(f, rows)
		if err != nil {
			return nil, err
		}
		if err := table.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func buildColumn(f Field, rows protoreflect.List) (columns.Column, error) {
	col, err := columns.NewColumn(columns.NewColumnDef(f.Name, f.Name), f.Type)
	if err != nil {
		return nil, err
	}

	for i := 0; i < rows.Len(); i++ {
		row := rows.Get(i).Message()
		v := values.None()
		if !f.Type.IsOptional() || row.Has(f.desc) {
			v = fieldValue(row.Get(f.desc), f.desc)
		}
		if err := col.AppendValue(v); err != nil {
			return nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
	}
	return col, nil
}

// LoadTextprotoTable parses textproto data and builds the table in one step.
func (l *Loader) LoadTextprotoTable(data []byte, messageName string) (*tables.DataTable, error) {
	msg, err := l.ParseTextproto(data, messageName)
	if err != nil {
		return nil, err
	}
	return l.BuildTable(msg)
}

// RegisteredMessages returns the full names of all registered messages.
func (l *Loader) RegisteredMessages() []string {
	var messages []string
	l.registry.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		msgs := fd.Messages()
		for i := 0; i < msgs.Len(); i++ {
			messages = append(messages, string(msgs.Get(i).FullName()))
		}
		return true
	})
	return messages
}
