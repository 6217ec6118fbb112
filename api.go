// Package protolite is the top-level convenience surface over registry,
// dynamic, and protomessage: load `.proto` files, look up a message type by
// name, and get a Builder/Message pair without writing three import lines
// every time.
package protolite

import (
	"fmt"

	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/dynamic"
	"github.com/modulexcite/protofield/protomessage"
	"github.com/modulexcite/protofield/registry"
)

// Protolite bundles a Registry with the search directories it was built
// from, so callers work with message-type names instead of descriptors.
type Protolite struct {
	registry *registry.Registry
}

// New returns a Protolite that resolves `.proto` imports against
// searchDirs, in order.
func New(searchDirs ...string) *Protolite {
	return &Protolite{registry: registry.New(searchDirs...)}
}

// LoadFile loads a `.proto` file (and everything it imports) into the
// underlying registry.
func (p *Protolite) LoadFile(path string) error {
	return p.registry.LoadFile(path)
}

// Registry exposes the underlying registry.Registry for callers that need
// descriptor-level access.
func (p *Protolite) Registry() *registry.Registry { return p.registry }

// NewBuilder returns a fresh dynamic.Builder for a message type previously
// loaded by LoadFile.
func (p *Protolite) NewBuilder(messageType string) (*dynamic.Builder, error) {
	desc := p.registry.FindMessageByName(messageType)
	if desc == nil {
		return nil, fmt.Errorf("protolite: unknown message type %q", messageType)
	}
	return dynamic.NewBuilder(desc), nil
}

// Parse decodes data as an instance of messageType, resolving extensions
// against the loaded registry.
func (p *Protolite) Parse(data []byte, messageType string) (protomessage.Message, error) {
	b, err := p.NewBuilder(messageType)
	if err != nil {
		return nil, err
	}
	if err := b.MergeFromBytes(data, p.registry); err != nil {
		return nil, err
	}
	return b.Build()
}

// Marshal serializes msg to its canonical wire bytes.
func (p *Protolite) Marshal(msg protomessage.Message) ([]byte, error) {
	return msg.ToByteArray()
}

var _ descriptor.ExtensionRegistry = (*registry.Registry)(nil)
