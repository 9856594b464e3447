package library

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// File is an audio file handed to the library for import: the original
// filename, the MIME type reported by the source (may be empty), and
// the raw bytes.
type File struct {
	Name string
	Type string
	Data []byte
}

// baseName strips the extension from a filename. "song.mp3" -> "song".
func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// readMetadata extracts title and artist from the audio payload.
// Either value may come back empty; callers fall back to the filename.
func readMetadata(data []byte) (title, artist string) {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err == nil {
		return m.Title(), m.Artist()
	}

	// dhowden/tag chokes on some files a format-specific parser still
	// handles, mirroring the fallback chain used for on-disk imports.
	switch {
	case bytes.HasPrefix(data, []byte("ID3")):
		return readID3v2Metadata(data)
	case bytes.HasPrefix(data, []byte("fLaC")):
		return readFLACMetadata(data)
	}
	return "", ""
}

func readID3v2Metadata(data []byte) (title, artist string) {
	t, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return "", ""
	}
	defer t.Close()
	return t.Title(), t.Artist()
}

func readFLACMetadata(data []byte) (title, artist string) {
	f, err := flac.ParseBytes(bytes.NewReader(data))
	if err != nil {
		return "", ""
	}
	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		if vals, err := cmt.Get(flacvorbis.FIELD_TITLE); err == nil && len(vals) > 0 {
			title = vals[0]
		}
		if vals, err := cmt.Get(flacvorbis.FIELD_ARTIST); err == nil && len(vals) > 0 {
			artist = vals[0]
		}
		return title, artist
	}
	return "", ""
}
