/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package protoloader

import (
	"testing"

	"github.com/google/rivulet/core/dtype"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// testDescriptorSet builds a serialized FileDescriptorSet for:
//
//	message People { repeated Person people = 1; }
//	message Person {
//	  string name = 1;
//	  optional int64 age = 2;
//	  double score = 3;
//	}
func testDescriptorSet(t *testing.T) []byte {
	t.Helper()

	person := &descriptorpb.DescriptorProto{
		Name: proto.String("Person"),
		Field: []*descriptorpb.FieldDescriptorProto{
			{
				Name:   proto.String("name"),
				Number: proto.Int32(1),
				Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
			},
			{
				Name:           proto.String("age"),
				Number:         proto.Int32(2),
				Label:          descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				Type:           descriptorpb.FieldDescriptorProto_TYPE_INT64.Enum(),
				Proto3Optional: proto.Bool(true),
				OneofIndex:     proto.Int32(0),
			},
			{
				Name:   proto.String("score"),
				Number: proto.Int32(3),
				Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				Type:   descriptorpb.FieldDescriptorProto_TYPE_DOUBLE.Enum(),
			},
		},
		OneofDecl: []*descriptorpb.OneofDescriptorProto{
			{Name: proto.String("_age")},
		},
	}

	people := &descriptorpb.DescriptorProto{
		Name: proto.String("People"),
		Field: []*descriptorpb.FieldDescriptorProto{
			{
				Name:     proto.String("people"),
				Number:   proto.Int32(1),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
				TypeName: proto.String(".rivulet.test.Person"),
			},
		},
	}

	fds := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{
				Name:        proto.String("people.proto"),
				Package:     proto.String("rivulet.test"),
				Syntax:      proto.String("proto3"),
				MessageType: []*descriptorpb.DescriptorProto{people, person},
			},
		},
	}

	data, err := proto.Marshal(fds)
	if err != nil {
		t.Fatalf("failed to marshal descriptor set: %v", err)
	}
	return data
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	loader := NewLoader(new(protoregistry.Files))
	if err := loader.RegisterDescriptorSet(testDescriptorSet(t)); err != nil {
		t.Fatalf("failed to register descriptor set: %v", err)
	}
	return loader
}

func TestDiscoverSchema(t *testing.T) {
	loader := newTestLoader(t)

	fields, err := loader.DiscoverSchema("rivulet.test.People")
	if err != nil {
		t.Fatalf("failed to discover schema: %v", err)
	}

	want := []struct {
		name string
		typ  dtype.Type
	}{
		{"name", dtype.String()},
		{"age", dtype.Optional(dtype.Int())},
		{"score", dtype.Float()},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, w := range want {
		if fields[i].Name != w.name {
			t.Errorf("field %d: expected name %q, got %q", i, w.name, fields[i].Name)
		}
		if !fields[i].Type.Equal(w.typ) {
			t.Errorf("field %q: expected type %s, got %s", w.name, w.typ, fields[i].Type)
		}
	}
}

func TestLoadTextprotoTable(t *testing.T) {
	loader := newTestLoader(t)

	data := []byte(`
people { name: "Alice" age: 30 score: 1.5 }
people { name: "Bob" score: 2.5 }
`)
	table, err := loader.LoadTextprotoTable(data, "rivulet.test.People")
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}

	if got := table.NumRows(); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}

	name := table.GetColumn("name")
	if name == nil {
		t.Fatal("name column not found")
	}
	s, err := name.GetString(0)
	if err != nil {
		t.Fatalf("failed to read name[0]: %v", err)
	}
	if s != "Alice" {
		t.Errorf("expected name[0] = Alice, got %q", s)
	}

	age := table.GetColumn("age")
	if age == nil {
		t.Fatal("age column not found")
	}
	v, err := age.Value(0)
	if err != nil {
		t.Fatalf("failed to read age[0]: %v", err)
	}
	if !v.IsInt() || v.AsInt() != 30 {
		t.Errorf("expected age[0] = 30, got %v", v.AsString())
	}
	v, err = age.Value(1)
	if err != nil {
		t.Fatalf("failed to read age[1]: %v", err)
	}
	if !v.IsNone() {
		t.Errorf("expected age[1] absent, got %v", v.AsString())
	}
}

func TestParseTextprotoMissingMessage(t *testing.T) {
	loader := NewLoader(new(protoregistry.Files))

	_, err := loader.ParseTextproto([]byte(`name: "test"`), "unknown.Message")
	if err == nil {
		t.Error("expected error for unknown message type, got nil")
	}
}

func TestDiscoverSchemaNoRowField(t *testing.T) {
	loader := newTestLoader(t)

	// Person has no repeated message field, so it cannot serve as a
	// table container.
	if _, err := loader.DiscoverSchema("rivulet.test.Person"); err == nil {
		t.Error("expected error for message without repeated message field, got nil")
	}
}
