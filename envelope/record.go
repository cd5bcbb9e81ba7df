// Package envelope decodes the structured message carried inside an opaque
// kernel call payload.
//
// The message schema is owned by the compiler toolchain that produces the
// payloads; this package consumes its wire form directly and only projects
// the two fields the host runtime needs: the kernel name and the serialized
// launch metadata. Everything else in the message, including fields added by
// newer producers, is skipped without error.
package envelope

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/arloliu/kernelcall/errs"
)

// Field numbers of the kernel call message consumed by this package.
const (
	nameField     protowire.Number = 3
	metadataField protowire.Number = 4
)

// Record is the decoded view of a kernel call message.
type Record struct {
	// Name is the kernel function name.
	Name string

	// Metadata is the serialized launch metadata, opaque to this package.
	// It may alias the buffer passed to Decode.
	Metadata []byte
}

// Decode parses data as a kernel call message and projects the name and
// metadata fields into a Record.
//
// Decoding follows canonical proto semantics: unknown fields are skipped,
// a known field number carrying an unexpected wire type is skipped like any
// unknown field, and when a field occurs more than once the last occurrence
// wins. An empty input is a valid, empty record.
//
// Structurally invalid wire data fails with an error wrapping
// errs.ErrMalformedRecord.
func Decode(data []byte) (Record, error) {
	var rec Record

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Record{}, fmt.Errorf("%w: %v", errs.ErrMalformedRecord, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == nameField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Record{}, fmt.Errorf("%w: field %d: %v", errs.ErrMalformedRecord, num, protowire.ParseError(n))
			}
			rec.Name = string(v)
			data = data[n:]
		case num == metadataField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Record{}, fmt.Errorf("%w: field %d: %v", errs.ErrMalformedRecord, num, protowire.ParseError(n))
			}
			rec.Metadata = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Record{}, fmt.Errorf("%w: field %d: %v", errs.ErrMalformedRecord, num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	return rec, nil
}

// Marshal encodes the record in the kernel call wire form, producing the
// bytes Decode consumes. Zero-valued fields are omitted, matching proto
// semantics for scalar fields.
func (r Record) Marshal() []byte {
	var buf []byte

	if r.Name != "" {
		buf = protowire.AppendTag(buf, nameField, protowire.BytesType)
		buf = protowire.AppendString(buf, r.Name)
	}
	if len(r.Metadata) > 0 {
		buf = protowire.AppendTag(buf, metadataField, protowire.BytesType)
		buf = protowire.AppendBytes(buf, r.Metadata)
	}

	return buf
}
