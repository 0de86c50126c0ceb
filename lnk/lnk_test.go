package lnk

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func str(s string) *string { return &s }

func TestDecodeMinimalHeader(t *testing.T) {
	info, err := Decode(newLink().bytes())
	require.NoError(t, err)

	require.True(t, info.Header.HasShellLinkCLSID())
	require.Equal(t, "SW_NORMAL", info.Header.ShowCommand.String())
	require.EqualValues(t, 0, info.Header.FileSize)
	require.EqualValues(t, 0, info.Header.IconIndex)
	require.Empty(t, info.LinkFlags.Names())
	require.Empty(t, info.FileFlags.Names())
	require.Nil(t, info.Targets)
	require.Nil(t, info.LinkInfo)
	require.Empty(t, cmp.Diff(StringData{}, info.StringData))
	require.Empty(t, info.Extra)
	require.Empty(t, info.Errors)
	require.Equal(t, "", info.Command())
	require.Equal(t, TimeAbsent, info.Header.CreationTime.String())
}

func TestDecodeInvalidHeader(t *testing.T) {
	valid := newLink().flags(HasName).raw(ansiField("description")).bytes()
	wrongSize := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(wrongSize, 0x4D)

	for name, data := range map[string][]byte{
		"empty":          nil,
		"truncated":      valid[:40],
		"one short":      valid[:HeaderSize-1],
		"wrong size":     wrongSize,
		"size field off": append(u32(0), valid[4:]...),
	} {
		t.Run(name, func(t *testing.T) {
			info, err := Decode(data)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidHeader))
			require.NotNil(t, info)
			require.Equal(t, &Info{}, info)
		})
	}
}

func TestParseReader(t *testing.T) {
	data := newLink().flags(HasRelativePath).raw(ansiField(`C:\Windows\notepad.exe`)).bytes()
	info, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, `C:\Windows\notepad.exe`, info.Command())
}

func TestCommand(t *testing.T) {
	for _, tt := range []struct {
		name     string
		link     *linkBuilder
		expected string
	}{
		{
			name:     "ansi",
			link:     newLink().flags(HasRelativePath, HasArguments).raw(ansiField(`C:\target.exe`), ansiField("/silent")),
			expected: `C:\target.exe /silent`,
		},
		{
			name:     "unicode",
			link:     newLink().flags(HasRelativePath, HasArguments, IsUnicode).raw(unicodeField(`C:\target.exe`), unicodeField("/silent")),
			expected: `C:\target.exe /silent`,
		},
		{
			name:     "path only",
			link:     newLink().flags(HasRelativePath).raw(ansiField(`..\tool.exe`)),
			expected: `..\tool.exe`,
		},
		{
			name:     "arguments only",
			link:     newLink().flags(HasArguments).raw(ansiField("-e JABzAD0A")),
			expected: "-e JABzAD0A",
		},
		{
			name:     "working directory is not part of it",
			link:     newLink().flags(HasRelativePath, HasWorkingDir).raw(ansiField(`a.exe`), ansiField(`C:\work`)),
			expected: "a.exe",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Decode(tt.link.bytes())
			require.NoError(t, err)
			require.Empty(t, info.Errors)
			require.Equal(t, tt.expected, info.Command())
		})
	}
}

func TestStringDataOrder(t *testing.T) {
	for _, unicode := range []bool{false, true} {
		field, flags := ansiField, []LinkFlags{HasName, HasRelativePath, HasWorkingDir, HasArguments, HasIconLocation}
		if unicode {
			field, flags = unicodeField, append(flags, IsUnicode)
		}
		link := newLink().flags(flags...).raw(
			field("a shortcut"),
			field(`..\..\bin\app.exe`),
			field(`C:\bin`),
			field("--verbose"),
			field(`%SystemRoot%\system32\shell32.dll`),
		)
		info, err := Decode(link.bytes())
		require.NoError(t, err)
		require.Empty(t, info.Errors)

		expected := StringData{
			Description:  str("a shortcut"),
			RelativePath: str(`..\..\bin\app.exe`),
			WorkingDir:   str(`C:\bin`),
			Arguments:    str("--verbose"),
			IconLocation: str(`%SystemRoot%\system32\shell32.dll`),
		}
		if diff := cmp.Diff(expected, info.StringData); diff != "" {
			t.Fatalf("unicode=%v: string data mismatch (-want +got):\n%s", unicode, diff)
		}
	}
}

func TestStringDataPresentButEmpty(t *testing.T) {
	info, err := Decode(newLink().flags(HasName, HasArguments).raw(ansiField(""), ansiField("x")).bytes())
	require.NoError(t, err)
	require.NotNil(t, info.StringData.Description)
	require.Equal(t, "", *info.StringData.Description)
	require.Nil(t, info.StringData.RelativePath)
	require.Equal(t, "x", *info.StringData.Arguments)
}

func TestStringDataTruncated(t *testing.T) {
	link := newLink().flags(HasName, HasArguments).raw(u16(10), []byte("abc"))
	info, err := Decode(link.bytes())
	require.NoError(t, err)
	require.Nil(t, info.StringData.Description)
	require.Nil(t, info.StringData.Arguments)
	require.Len(t, info.Errors, 1)
	require.True(t, errors.Is(info.Errors[0], ErrTruncated))
	require.Equal(t, sectionStringData, info.Errors[0].Section)
	require.Equal(t, "description", info.Errors[0].Field)
	require.Equal(t, HeaderSize, info.Errors[0].Offset)
}

func TestStringNormalization(t *testing.T) {
	unicode := newLink().flags(HasName, IsUnicode).raw(unicodeField("Ünïcödé")).bytes()

	info, err := Decode(unicode)
	require.NoError(t, err)
	require.Equal(t, "ncd", *info.StringData.Description)

	info, err = Decode(unicode, WithRawStrings())
	require.NoError(t, err)
	require.Equal(t, "Ünïcödé", *info.StringData.Description)

	latin := newLink().flags(HasName).raw(ansiField("caf\xe9")).bytes()
	info, err = Decode(latin, WithRawStrings())
	require.NoError(t, err)
	require.Equal(t, "café", *info.StringData.Description)

	shiftJIS := newLink().flags(HasName).raw(ansiField("\x83\x65")).bytes()
	info, err = Decode(shiftJIS, WithRawStrings(), WithCodePage(932))
	require.NoError(t, err)
	require.Equal(t, "テ", *info.StringData.Description)
}

func TestTargetIDList(t *testing.T) {
	var documents [16]byte
	for i := range documents {
		documents[i] = byte(i + 1)
	}
	root := shellItem(join([]byte{0x1f, 0x50}, documents[:]))
	file := shellItem(join(
		[]byte{0x32, 0x00},
		u32(1024),
		u16(0x5a21), u16(0x6000),
		u16(0x20),
		cstring("a.txt"),
	))
	volume := shellItem(join([]byte{0x2f}, cstring(`C:\`)))

	link := newLink().flags(HasTargetIDList, HasName).raw(idList(root, volume, file), ansiField("after"))
	info, err := Decode(link.bytes())
	require.NoError(t, err)
	require.Empty(t, info.Errors)
	require.NotNil(t, info.Targets)
	require.Len(t, info.Targets.Items, 3)

	require.Equal(t, ClassRootFolder, info.Targets.Items[0].Class)
	require.NotNil(t, info.Targets.Items[0].FolderID)
	require.Equal(t, GUID(documents), *info.Targets.Items[0].FolderID)

	require.Equal(t, ClassVolume, info.Targets.Items[1].Class)
	require.Equal(t, `C:\`, info.Targets.Items[1].Name)

	entry := info.Targets.Items[2]
	require.Equal(t, ClassFileEntry, entry.Class)
	require.Equal(t, "0x32", entry.TypeName())
	require.Equal(t, "a.txt", entry.Name)
	require.NotNil(t, entry.ModificationTime)
	require.Equal(t, "2025-01-01T12:00:00Z", entry.ModificationTime.String())
	require.Equal(t, int(entry.Size), len(entry.Data))

	require.Equal(t, "after", *info.StringData.Description)
}

func TestTargetIDListItemOverflow(t *testing.T) {
	// the item claims more bytes than the list holds
	list := join(u16(6), u16(0x40), []byte{0x31, 0, 0, 0})
	link := newLink().flags(HasTargetIDList, HasName).raw(list, ansiField("after"))
	info, err := Decode(link.bytes())
	require.NoError(t, err)
	require.Empty(t, info.Targets.Items)
	require.Len(t, info.Errors, 1)
	require.True(t, errors.Is(info.Errors[0], ErrMalformedOffset))
	require.Equal(t, "after", *info.StringData.Description)
}

func TestClassOf(t *testing.T) {
	for indicator, class := range map[byte]ShellItemClass{
		0x00: ClassUnknown,
		0x1f: ClassRootFolder,
		0x23: ClassVolume,
		0x31: ClassFileEntry,
		0x36: ClassFileEntry,
		0x41: ClassNetworkLocation,
		0x52: ClassCompressedFolder,
		0x61: ClassURI,
		0x71: ClassControlPanel,
		0x72: ClassPrinters,
		0x73: ClassCommonPlacesFolder,
		0x74: ClassUsersFilesFolder,
		0xff: ClassUnknown,
	} {
		require.Equal(t, class, ClassOf(indicator), "0x%02x", indicator)
	}
}

func TestDecodeLogsContainedErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	link := newLink().flags(HasName).raw(u16(10), []byte("abc"))

	info, err := Decode(link.bytes(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Len(t, info.Errors, 1)

	entries := logs.FilterMessage("contained decoding error").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, sectionStringData, fields["section"])
	require.Equal(t, "description", fields["field"])
	require.EqualValues(t, HeaderSize, fields["offset"])
}

func TestDecodeInvalidTimestamp(t *testing.T) {
	link := newLink()
	link.write = 1 << 63
	link.creation = 116444736000000000
	info, err := Decode(link.bytes())
	require.NoError(t, err)
	require.Equal(t, "1970-01-01T00:00:00Z", info.Header.CreationTime.String())
	require.Equal(t, TimeInvalid, info.Header.WriteTime.String())
	require.Len(t, info.Errors, 1)
	require.True(t, errors.Is(info.Errors[0], ErrInvalidTimestamp))
	require.Equal(t, "writeTime", info.Errors[0].Field)
}

// richLink exercises every section of the format.
func richLink() []byte {
	return newLink().
		flags(HasTargetIDList, HasLinkInfo, HasName, HasRelativePath, HasArguments, IsUnicode).
		raw(
			idList(shellItem(join([]byte{0x32, 0}, u32(1), u16(0x5a21), u16(0x6000), u16(0), cstring("b.exe")))),
			localLinkInfo("OS", `C:\b.exe`, "", 3, 0xdeadbeef),
			unicodeField("desc"),
			unicodeField(`.\b.exe`),
			unicodeField("-x"),
			block(SignatureEnvironment, join(fixed(cstring(`%TEMP%\b.exe`), 260), fixed(wstring(`%TEMP%\b.exe`), 520))),
			block(SignatureCodePage, u32(1252)),
			block(SignatureKnownFolder, join(make([]byte, 16), u32(0))),
			u32(0),
		).
		bytes()
}

func TestDecodeNeverPanics(t *testing.T) {
	data := richLink()
	full, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, full.Errors)
	require.Len(t, full.Extra, 3)

	for n := 0; n <= len(data); n++ {
		var (
			info *Info
			err  error
		)
		require.NotPanics(t, func() { info, err = Decode(data[:n]) }, "prefix of %d bytes", n)
		require.NotNil(t, info)
		if n < HeaderSize {
			require.True(t, errors.Is(err, ErrInvalidHeader))
		} else {
			require.NoError(t, err)
		}
	}
}

func TestInfoMarshalJSON(t *testing.T) {
	info, err := Decode(richLink())
	require.NoError(t, err)

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, []interface{}{"HasTargetIDList", "HasLinkInfo", "HasName", "HasRelativePath", "HasArguments", "IsUnicode"}, decoded["linkFlags"])
	require.Len(t, decoded["extra"], 3)
}

func TestSniff(t *testing.T) {
	data := newLink().bytes()
	require.True(t, Sniff(data))
	require.True(t, Sniff(data[:4]))

	copy(data[offsetCLSID:], make([]byte, 16))
	require.True(t, Sniff(data))

	require.False(t, Sniff(data[:3]))
	require.False(t, Sniff(nil))
	require.False(t, Sniff([]byte{0x4d, 0, 0, 0}))
}
