package protolite

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/modulexcite/protofield/fieldset"
)

// Example demonstrates loading a `.proto` file, building a message by
// field number, and round-tripping it through the wire format without any
// generated code.
func Example() {
	dir, err := os.MkdirTemp("", "protolite-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	protoPath := filepath.Join(dir, "user.proto")
	if err := os.WriteFile(protoPath, []byte(`
syntax = "proto2";
package demo;

message User {
  required string name = 1;
  optional int32 id = 2;
}
`), 0o644); err != nil {
		log.Fatal(err)
	}

	p := New(dir)
	if err := p.LoadFile(protoPath); err != nil {
		log.Fatal(err)
	}

	b, err := p.NewBuilder("demo.User")
	if err != nil {
		log.Fatal(err)
	}
	desc := b.Descriptor()
	if err := b.SetField(desc.FindFieldByNumber(1), fieldset.StringValue("Ada Lovelace")); err != nil {
		log.Fatal(err)
	}
	if err := b.SetField(desc.FindFieldByNumber(2), fieldset.Int32Value(1)); err != nil {
		log.Fatal(err)
	}
	msg, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	data, err := p.Marshal(msg)
	if err != nil {
		log.Fatal(err)
	}

	roundTrip, err := p.Parse(data, "demo.User")
	if err != nil {
		log.Fatal(err)
	}

	name, _ := roundTrip.AllFields().Get(desc.FindFieldByNumber(1))
	id, _ := roundTrip.AllFields().Get(desc.FindFieldByNumber(2))
	fmt.Printf("%s (id %d), %d bytes on the wire\n", name.String(), id.Int32(), len(data))

	// Output:
	// Ada Lovelace (id 1), 16 bytes on the wire
}
