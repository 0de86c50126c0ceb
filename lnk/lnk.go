// Package lnk decodes Windows shell link (.lnk) files.
//
// Decoding is best effort. Only a missing or invalid header stops it; every
// other problem is contained to the structure it was found in, recorded in
// Info.Errors and decoding carries on with the next section.
package lnk

import (
	"io"

	"go.uber.org/zap"

	"github.com/andrewstucki/shortcut/internal"
)

// Info is a decoded shell link.
type Info struct {
	Header     Header             `json:"header"`
	LinkFlags  LinkFlags          `json:"linkFlags"`
	FileFlags  FileAttributeFlags `json:"fileFlags"`
	Targets    *TargetIDList      `json:"targets,omitempty"`
	LinkInfo   *LinkInfo          `json:"linkInfo,omitempty"`
	StringData StringData         `json:"stringData"`
	Extra      []Block            `json:"extra,omitempty"`
	Errors     []*FieldError      `json:"errors,omitempty"`
}

// Command is the effective command line: the relative path followed by the
// arguments, separated by a space when both are present.
func (i *Info) Command() string {
	var path, args string
	if i.StringData.RelativePath != nil {
		path = *i.StringData.RelativePath
	}
	if i.StringData.Arguments != nil {
		args = *i.StringData.Arguments
	}
	switch {
	case path == "":
		return args
	case args == "":
		return path
	}
	return path + " " + args
}

// Block returns the first extra data block with the given signature.
func (i *Info) Block(signature uint32) Block {
	for _, block := range i.Extra {
		if block.Signature() == signature {
			return block
		}
	}
	return nil
}

type decoder struct {
	c    internal.Cursor
	log  *zap.Logger
	errs []*FieldError
}

func (d *decoder) fail(section, field string, offset int, err error) {
	d.errs = append(d.errs, &FieldError{
		Section: section,
		Field:   field,
		Offset:  offset,
		Err:     err,
	})
	d.log.Debug("contained decoding error",
		zap.String("section", section),
		zap.String("field", field),
		zap.Int("offset", offset),
		zap.Error(err),
	)
}

// within resolves an offset relative to a structure of the given size. A zero
// offset means the field is absent.
func (d *decoder) within(section, field string, base int, size, relative uint32) (int, bool) {
	if relative == 0 {
		return 0, false
	}
	if relative >= size {
		d.fail(section, field, base, malformed("offset 0x%x outside structure of size 0x%x", relative, size))
		return 0, false
	}
	return base + int(relative), true
}

func (d *decoder) ansi(section, field string, offset int) string {
	s, _, err := d.c.ANSIString(offset)
	if err != nil {
		d.fail(section, field, offset, err)
	}
	return s
}

func (d *decoder) unicode(section, field string, offset int) string {
	s, _, err := d.c.UnicodeString(offset)
	if err != nil {
		d.fail(section, field, offset, err)
	}
	return s
}

func (d *decoder) timestamps(h Header) {
	for _, t := range []struct {
		field  string
		offset int
		value  FileTime
	}{
		{"creationTime", offsetCreationTime, h.CreationTime},
		{"accessTime", offsetAccessTime, h.AccessTime},
		{"writeTime", offsetWriteTime, h.WriteTime},
	} {
		if err := t.value.Valid(); err != nil {
			d.fail("header", t.field, t.offset, err)
		}
	}
}

// Decode decodes a complete shell link held in memory. The returned Info is
// never nil. The only error returned is one wrapping ErrInvalidHeader, in
// which case Info is empty.
func Decode(data []byte, opts ...Option) (*Info, error) {
	o := newOptions(opts)
	d := &decoder{
		c:   internal.NewCursor(data, o.text),
		log: o.logger,
	}

	header, err := decodeHeader(d.c)
	if err != nil {
		o.logger.Debug("invalid header", zap.Int("size", len(data)), zap.Error(err))
		return &Info{}, err
	}
	info := &Info{Header: header}
	info.LinkFlags, info.FileFlags = DecodeFlags(header.RawLinkFlags, header.RawFileFlags)
	if !header.HasShellLinkCLSID() {
		o.logger.Debug("unexpected header CLSID", zap.Stringer("clsid", header.CLSID))
	}
	d.timestamps(header)

	offset := HeaderSize
	if info.LinkFlags.Has(HasTargetIDList) {
		info.Targets, offset = d.targetIDList(offset)
	}
	switch {
	case !info.LinkFlags.Has(HasLinkInfo):
	case info.LinkFlags.Has(ForceNoLinkInfo):
		offset = d.skipLinkInfo(offset)
	default:
		info.LinkInfo, offset = d.linkInfo(offset)
	}
	info.StringData, offset = d.stringData(offset, info.LinkFlags)
	info.Extra = d.extraData(offset)
	info.Errors = d.errs
	return info, nil
}

// Parse reads r to the end and decodes it. Read failures are returned as is.
func Parse(r io.Reader, opts ...Option) (*Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Info{}, err
	}
	return Decode(data, opts...)
}
