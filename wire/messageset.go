package wire

// Message-set wire format: a legacy extension encoding used when a
// message's options declare message_set_wire_format = true. Each
// extension is wrapped as:
//
//	tag(1, StartGroup)
//	  tag(2, Varint)   type_id varint
//	  tag(3, Bytes)    nested message, length-delimited
//	tag(1, EndGroup)
const (
	messageSetItemNumber    Number = 1
	messageSetTypeIDNumber  Number = 2
	messageSetMessageNumber Number = 3
)

// WriteMessageSetExtension appends typeID and the already-serialized
// nested message payload in message-set group form.
func (b *Buffer) WriteMessageSetExtension(typeID int32, payload []byte) {
	b.WriteTag(messageSetItemNumber, StartGroup)
	b.WriteTag(messageSetTypeIDNumber, Varint)
	b.WriteVarint(uint64(typeID))
	b.WriteTag(messageSetMessageNumber, Bytes)
	b.WriteBytes(payload)
	b.WriteTag(messageSetItemNumber, EndGroup)
}

// SizeMessageSetExtension returns the number of bytes
// WriteMessageSetExtension(typeID, payload) would emit.
func SizeMessageSetExtension(typeID int32, payload []byte) int {
	return SizeTag(messageSetItemNumber) + // start group
		SizeTag(messageSetTypeIDNumber) + SizeVarint(uint64(typeID)) +
		SizeTag(messageSetMessageNumber) + SizeBytes(payload) +
		SizeTag(messageSetItemNumber) // end group
}

// ReadMessageSetExtension reads one message-set group (the caller has
// already consumed the opening tag(1, StartGroup)) and returns the
// extension's type id and raw nested-message bytes.
func (b *Buffer) ReadMessageSetExtension() (typeID int32, payload []byte, err error) {
	for {
		n, wt, terr := b.ReadTag()
		if terr != nil {
			return 0, nil, terr
		}
		switch {
		case n == messageSetItemNumber && wt == EndGroup:
			return typeID, payload, nil
		case n == messageSetTypeIDNumber && wt == Varint:
			v, verr := b.ReadVarint()
			if verr != nil {
				return 0, nil, verr
			}
			typeID = int32(v)
		case n == messageSetMessageNumber && wt == Bytes:
			raw, berr := b.ReadBytes()
			if berr != nil {
				return 0, nil, berr
			}
			payload = raw
		default:
			if serr := b.SkipField(wt); serr != nil {
				return 0, nil, serr
			}
		}
	}
}

// SkipField advances past one field's value given its wire type, without
// decoding it — used both for unrecognized message-set entries and,
// higher up, for tags with no matching descriptor.
func (b *Buffer) SkipField(t Type) error {
	switch t {
	case Varint:
		return b.SkipVarint()
	case Fixed64:
		_, err := b.readN(sizeFixed64)
		return err
	case Bytes:
		return b.SkipBytes()
	case Fixed32:
		_, err := b.readN(sizeFixed32)
		return err
	case StartGroup:
		return b.skipGroup()
	default:
		return malformed("unknown wire type %d", t)
	}
}

// skipGroup skips a legacy group body up to and including its matching
// EndGroup tag, tolerating nested groups.
func (b *Buffer) skipGroup() error {
	depth := 1
	for depth > 0 {
		_, wt, err := b.ReadTag()
		if err != nil {
			return err
		}
		switch wt {
		case StartGroup:
			depth++
		case EndGroup:
			depth--
		default:
			if err := b.SkipField(wt); err != nil {
				return err
			}
		}
	}
	return nil
}
