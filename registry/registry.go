// Package registry loads `.proto` sources into descriptor.MessageDescriptor
// and descriptor.EnumDescriptor values and answers the lookups a parse or
// serialize of a dynamic.Message needs: message/enum by name, and
// extension field by (containing type, field number).
//
// This is not a descriptor compiler. It understands enough of a `.proto`
// file's surface — package, message and enum declarations, scalar and
// already-declared-type fields, field numbers, repeated/packed — to build
// working descriptors for the common case; it does not resolve imports'
// semantics beyond following them for more type declarations, and it does
// not implement oneof, proto3 optional presence tracking, reserved ranges,
// or options beyond `packed` and `message_set_wire_format`. A `.proto` file using those constructs will
// have those specific declarations skipped rather than the whole file
// rejected — the full compiler is an external collaborator, not this
// module's job.
package registry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	protoparser "github.com/yoheimuta/go-protoparser/v4"

	"github.com/modulexcite/protofield/descriptor"
)

// Registry is a populated symbol table: every message and enum declared
// across a set of `.proto` files, keyed by fully-qualified name.
type Registry struct {
	dirs       []string
	messages   map[string]*descriptor.MessageDescriptor
	enums      map[string]*descriptor.EnumDescriptor
	extensions map[extensionKey]*descriptor.FieldDescriptor
}

type extensionKey struct {
	messageType string
	number      int32
}

// New returns an empty Registry. searchDirs are consulted, in order, when
// resolving an `import "x.proto"` statement to a file on disk.
func New(searchDirs ...string) *Registry {
	return &Registry{
		dirs:       searchDirs,
		messages:   make(map[string]*descriptor.MessageDescriptor),
		enums:      make(map[string]*descriptor.EnumDescriptor),
		extensions: make(map[extensionKey]*descriptor.FieldDescriptor),
	}
}

// FindMessageByName returns the MessageDescriptor for a fully-qualified
// message name, or nil.
func (r *Registry) FindMessageByName(fullName string) *descriptor.MessageDescriptor {
	return r.messages[fullName]
}

// FindEnumByName returns the EnumDescriptor for a fully-qualified enum
// name, or nil.
func (r *Registry) FindEnumByName(fullName string) *descriptor.EnumDescriptor {
	return r.enums[fullName]
}

// FindExtensionByNumber implements descriptor.ExtensionRegistry.
func (r *Registry) FindExtensionByNumber(messageType *descriptor.MessageDescriptor, fieldNumber int32) *descriptor.FieldDescriptor {
	if messageType == nil {
		return nil
	}
	return r.extensions[extensionKey{messageType: messageType.FullName(), number: fieldNumber}]
}

// LoadFile parses path and every `.proto` file it (transitively) imports
// from the registry's search directories, registering every message and
// enum it can make sense of.
func (r *Registry) LoadFile(path string) error {
	files, err := r.discoverImportGraph(path)
	if err != nil {
		return errors.Wrapf(err, "registry: discovering imports of %s", path)
	}

	parsed := make(map[string]*protoFile, len(files))
	for _, f := range files {
		pf, err := parseProtoFile(f)
		if err != nil {
			return errors.Wrapf(err, "registry: parsing %s", f)
		}
		parsed[f] = pf
	}

	// Pass 1: register every message/enum name so same-file and
	// cross-file forward references resolve in pass 2.
	for _, pf := range parsed {
		for _, md := range pf.messages {
			r.registerShell(pf.pkg, md)
		}
		for _, ed := range pf.enums {
			r.registerEnum(pf.pkg, ed)
		}
	}

	// Pass 2: fill in fields now that every referenced type has a shell.
	for _, pf := range parsed {
		for _, md := range pf.messages {
			if err := r.finalizeMessage(pf.pkg, md); err != nil {
				return errors.Wrapf(err, "registry: building %s", md.name)
			}
		}
	}

	// Pass 3: resolve top-level `extend X { ... }` blocks against the
	// messages they extend, now that every message has its full field set.
	for _, pf := range parsed {
		for _, rf := range pf.extensions {
			if err := r.registerExtension(pf.pkg, rf); err != nil {
				return errors.Wrapf(err, "registry: building extension %s", rf.name)
			}
		}
	}

	return nil
}

func (r *Registry) registerExtension(pkg string, rf *rawField) error {
	extendee := rf.extendee
	if _, ok := r.messages[extendee]; !ok {
		extendee = qualify(pkg, rf.extendee)
	}
	owner := r.messages[extendee]
	if owner == nil {
		return fmt.Errorf("registry: extend target %q not found", rf.extendee)
	}
	fd, err := r.buildField(extendee, rf)
	if err != nil {
		return err
	}
	if fd == nil {
		return nil // unsupported construct, skipped per this package's scope
	}
	fd.BindExtension(owner)
	r.extensions[extensionKey{messageType: extendee, number: rf.number}] = fd
	return nil
}

func (r *Registry) registerShell(pkg string, md *rawMessage) {
	full := qualify(pkg, md.name)
	r.messages[full] = descriptor.NewIncompleteMessageDescriptor(full)
	for _, nested := range md.nested {
		r.registerShell(full, nested)
	}
	for _, ne := range md.nestedEnums {
		r.registerEnum(full, ne)
	}
}

func (r *Registry) registerEnum(pkg string, re *rawEnum) {
	full := qualify(pkg, re.name)
	members := make([]struct {
		Name   string
		Number int32
	}, len(re.values))
	for i, v := range re.values {
		members[i] = struct {
			Name   string
			Number int32
		}{Name: v.name, Number: v.number}
	}
	r.enums[full] = descriptor.NewEnumDescriptor(full, members)
}

func (r *Registry) finalizeMessage(pkg string, md *rawMessage) error {
	full := qualify(pkg, md.name)
	desc := r.messages[full]
	fields := make([]*descriptor.FieldDescriptor, 0, len(md.fields))
	for _, rf := range md.fields {
		fd, err := r.buildField(full, rf)
		if err != nil {
			return err
		}
		if fd == nil {
			continue // unsupported construct, skipped per this package's scope
		}
		fields = append(fields, fd)
		if rf.extendee != "" {
			r.extensions[extensionKey{messageType: rf.extendee, number: rf.number}] = fd
		}
	}
	opts := descriptor.MessageOptions{MessageSetWireFormat: md.messageSetWireFormat}
	ranges := make([]descriptor.ExtensionRange, len(md.extensionRanges))
	for i, r := range md.extensionRanges {
		ranges[i] = descriptor.ExtensionRange{Start: r.start, End: r.end}
	}
	desc.Finalize(fields, opts, ranges...)

	for _, nested := range md.nested {
		if err := r.finalizeMessage(full, nested); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) buildField(ownerFullName string, rf *rawField) (*descriptor.FieldDescriptor, error) {
	var opts []descriptor.FieldOption
	if rf.repeated {
		opts = append(opts, descriptor.Repeated())
	}
	if rf.packed {
		opts = append(opts, descriptor.Packed())
	}
	if rf.required {
		opts = append(opts, descriptor.Required())
	}
	if rf.extendee != "" {
		opts = append(opts, descriptor.Extension())
	}

	if t, ok := scalarFieldTypes[rf.typeName]; ok {
		return descriptor.NewScalarField(rf.number, rf.name, t, opts...), nil
	}

	resolved := r.resolveTypeName(ownerFullName, rf.typeName)
	if ed := r.enums[resolved]; ed != nil {
		return descriptor.NewEnumField(rf.number, rf.name, ed, opts...), nil
	}
	if md := r.messages[resolved]; md != nil {
		return descriptor.NewMessageField(rf.number, rf.name, md, opts...), nil
	}
	// Type name didn't resolve to anything this package has seen — most
	// often a well-known type or an import this scan didn't follow.
	return nil, nil
}

// resolveTypeName returns typeName as is when it is already a registered
// full name; otherwise it tries ownerFullName's own scope first, then walks
// out through the enclosing scopes, so the innermost matching scope wins.
func (r *Registry) resolveTypeName(ownerFullName, typeName string) string {
	typeName = strings.TrimPrefix(typeName, ".")
	if _, ok := r.messages[typeName]; ok {
		return typeName
	}
	if _, ok := r.enums[typeName]; ok {
		return typeName
	}
	scope := ownerFullName
	for {
		candidate := scope + "." + typeName
		if _, ok := r.messages[candidate]; ok {
			return candidate
		}
		if _, ok := r.enums[candidate]; ok {
			return candidate
		}
		idx := strings.LastIndex(scope, ".")
		if idx < 0 {
			return typeName
		}
		scope = scope[:idx]
	}
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

var scalarFieldTypes = map[string]descriptor.FieldType{
	"int32":    descriptor.Int32,
	"int64":    descriptor.Int64,
	"uint32":   descriptor.Uint32,
	"uint64":   descriptor.Uint64,
	"sint32":   descriptor.Sint32,
	"sint64":   descriptor.Sint64,
	"fixed32":  descriptor.Fixed32,
	"fixed64":  descriptor.Fixed64,
	"sfixed32": descriptor.Sfixed32,
	"sfixed64": descriptor.Sfixed64,
	"float":    descriptor.FloatType,
	"double":   descriptor.DoubleType,
	"bool":     descriptor.BoolType,
	"string":   descriptor.StringType,
	"bytes":    descriptor.BytesType,
}

// discoverImportGraph walks import statements depth-first starting from
// root, resolving each import against r.dirs, the way a protoc-style
// compiler's -I flags work.
func (r *Registry) discoverImportGraph(root string) ([]string, error) {
	visited := map[string]bool{}
	var order []string

	var visit func(path string) error
	visit = func(path string) error {
		resolved, err := r.resolveImportPath(path)
		if err != nil {
			return err
		}
		if visited[resolved] {
			return nil
		}
		visited[resolved] = true
		order = append(order, resolved)

		data, err := os.ReadFile(resolved)
		if err != nil {
			return errors.Wrapf(err, "reading %s", resolved)
		}
		got, err := protoparser.Parse(bytes.NewReader(data))
		if err != nil {
			return errors.Wrapf(err, "parsing %s", resolved)
		}
		for _, imp := range scanImports(got) {
			if strings.Contains(imp, "google/protobuf/") {
				continue // well-known types, not user `.proto` files to load
			}
			if err := visit(imp); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Registry) resolveImportPath(p string) (string, error) {
	p = strings.Trim(p, `"`)
	if filepath.IsAbs(p) {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, p)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("registry: cannot find %q in search directories %v", p, r.dirs)
}

var _ descriptor.ExtensionRegistry = (*Registry)(nil)
