package shortcut

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"io"

	"github.com/go-errors/errors"
	"github.com/h2non/filetype"
	sha256 "github.com/minio/sha256-simd"

	"github.com/andrewstucki/shortcut/lnk"
)

// MIME is registered with filetype for shell links.
const MIME = "application/x-ms-shortcut"

// only the fixed header is needed to recognize a shell link
const sniffSize = lnk.HeaderSize

func init() {
	filetype.AddMatcher(filetype.NewType("lnk", MIME), lnk.Sniff)
}

// Info contains the fingerprint of a file and, for shell links, the decoded
// link.
type Info struct {
	MIME   string    `json:"mime"`
	MD5    string    `json:"md5"`
	SHA1   string    `json:"sha1"`
	SHA256 string    `json:"sha256"`
	Size   int       `json:"size"`
	LNK    *lnk.Info `json:"lnk,omitempty"`
}

// IsShortcut reports whether the file was recognized and decoded as a shell
// link.
func (i *Info) IsShortcut() bool {
	return i.LNK != nil
}

// Report renders the fingerprint with the link report nested under "lnk".
func (i *Info) Report(f lnk.Fidelity) map[string]interface{} {
	report := map[string]interface{}{
		"mime":   i.MIME,
		"md5":    i.MD5,
		"sha1":   i.SHA1,
		"sha256": i.SHA256,
		"size":   i.Size,
	}
	if i.LNK != nil {
		report["lnk"] = i.LNK.Report(f)
	}
	return report
}

// Reader is the interface that must be satisfied for parsing a stream of data.
type Reader interface {
	io.ReadSeeker
	io.ReaderAt
}

// Parse hashes the data and, when it is a shell link, decodes it. Files that
// are not shell links are fingerprinted only. When the link header cannot be
// decoded the fingerprint is returned along with an error wrapping
// lnk.ErrInvalidHeader.
func Parse(r Reader, size int, opts ...lnk.Option) (*Info, error) {
	header := make([]byte, sniffSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.Wrap(err, 0)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, 0)
	}

	mime := "application/octet-stream"
	if n > 0 {
		kind, err := filetype.Match(header[:n])
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
		if kind.MIME.Value != "" {
			mime = kind.MIME.Value
		}
	}

	md5hash := md5.New()
	sha1hash := sha1.New()
	sha256hash := sha256.New()
	hasher := io.MultiWriter(md5hash, sha1hash, sha256hash)
	if _, err := io.Copy(hasher, r); err != nil {
		return nil, errors.Wrap(err, 0)
	}

	info := &Info{
		MIME:   mime,
		Size:   size,
		MD5:    hex.EncodeToString(md5hash.Sum(nil)),
		SHA1:   hex.EncodeToString(sha1hash.Sum(nil)),
		SHA256: hex.EncodeToString(sha256hash.Sum(nil)),
	}
	if mime != MIME {
		return info, nil
	}

	lnkInfo, err := lnk.Parse(io.NewSectionReader(r, 0, int64(size)), opts...)
	if err != nil {
		return info, errors.Wrap(err, 0)
	}
	info.LNK = lnkInfo
	return info, nil
}
