package protolite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modulexcite/protofield/fieldset"
	"github.com/modulexcite/protofield/protomessage"
	"github.com/stretchr/testify/require"
)

func protomessageEqual(t *testing.T, a, b protomessage.Message) bool {
	t.Helper()
	return protomessage.Equal(a, b)
}

func writeTempProto(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProtoliteLoadParseMarshalRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeTempProto(t, dir, "user.proto", `
syntax = "proto2";
package demo;

message User {
  required string name = 1;
  optional int32 id = 2;
}
`)

	p := New(dir)
	require.NoError(t, p.LoadFile(path))

	b, err := p.NewBuilder("demo.User")
	require.NoError(t, err)
	desc := b.Descriptor()
	require.NoError(t, b.SetField(desc.FindFieldByNumber(1), fieldset.StringValue("Ada")))
	require.NoError(t, b.SetField(desc.FindFieldByNumber(2), fieldset.Int32Value(7)))
	msg, err := b.Build()
	require.NoError(t, err)

	data, err := p.Marshal(msg)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	roundTrip, err := p.Parse(data, "demo.User")
	require.NoError(t, err)
	require.True(t, protomessageEqual(t, msg, roundTrip))
}

func TestProtoliteNewBuilderUnknownTypeErrors(t *testing.T) {
	p := New(t.TempDir())
	_, err := p.NewBuilder("demo.Nonexistent")
	require.Error(t, err)
}
