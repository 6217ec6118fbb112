package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempProto(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileBuildsMessageAndEnumDescriptors(t *testing.T) {
	dir := t.TempDir()
	writeTempProto(t, dir, "person.proto", `
syntax = "proto2";
package test;

enum PhoneType {
  MOBILE = 0;
  HOME = 1;
}

message Person {
  required string name = 1;
  optional int32 id = 2;
  repeated string tags = 3 [packed = true];
  optional PhoneType type = 4;
}
`)

	r := New(dir)
	require.NoError(t, r.LoadFile(filepath.Join(dir, "person.proto")))

	person := r.FindMessageByName("test.Person")
	require.NotNil(t, person)
	require.Equal(t, "name", person.FindFieldByNumber(1).Name())
	require.True(t, person.FindFieldByNumber(1).IsRequired())
	require.True(t, person.FindFieldByNumber(3).IsPacked())
	require.True(t, person.FindFieldByNumber(3).IsRepeated())

	phoneField := person.FindFieldByNumber(4)
	require.NotNil(t, phoneField.EnumType())
	require.Equal(t, "test.PhoneType", phoneField.EnumType().FullName())

	phoneType := r.FindEnumByName("test.PhoneType")
	require.NotNil(t, phoneType)
	require.Equal(t, "HOME", phoneType.FindValueByNumber(1).Name())
}

func TestLoadFileResolvesImportedMessageType(t *testing.T) {
	dir := t.TempDir()
	writeTempProto(t, dir, "address.proto", `
syntax = "proto3";
package test;

message Address {
  string city = 1;
}
`)
	writeTempProto(t, dir, "person.proto", `
syntax = "proto3";
package test;

import "address.proto";

message Person {
  string name = 1;
  Address address = 2;
}
`)

	r := New(dir)
	require.NoError(t, r.LoadFile(filepath.Join(dir, "person.proto")))

	person := r.FindMessageByName("test.Person")
	require.NotNil(t, person)
	addrField := person.FindFieldByNumber(2)
	require.NotNil(t, addrField.MessageType())
	require.Equal(t, "test.Address", addrField.MessageType().FullName())
}

func TestLoadFileBuildsExtensionRegistry(t *testing.T) {
	dir := t.TempDir()
	writeTempProto(t, dir, "ext.proto", `
syntax = "proto2";
package test;

message Base {
  extensions 100 to 199;
}

extend Base {
  optional int32 widget_count = 100;
}
`)

	r := New(dir)
	require.NoError(t, r.LoadFile(filepath.Join(dir, "ext.proto")))

	base := r.FindMessageByName("test.Base")
	require.NotNil(t, base)
	require.True(t, base.IsExtensionNumber(100))

	ext := r.FindExtensionByNumber(base, 100)
	require.NotNil(t, ext)
	require.Equal(t, "widget_count", ext.Name())
	require.True(t, ext.IsExtension())
}

func TestLoadFileSkipsUnresolvedFieldTypeRatherThanFailing(t *testing.T) {
	dir := t.TempDir()
	writeTempProto(t, dir, "partial.proto", `
syntax = "proto3";
package test;

message Wrapper {
  google.protobuf.Timestamp created_at = 1;
  string name = 2;
}
`)

	r := New(dir)
	require.NoError(t, r.LoadFile(filepath.Join(dir, "partial.proto")))

	wrapper := r.FindMessageByName("test.Wrapper")
	require.NotNil(t, wrapper)
	require.Nil(t, wrapper.FindFieldByNumber(1))
	require.NotNil(t, wrapper.FindFieldByNumber(2))
}
