package player

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// byteStream adapts an in-memory payload to the reader shapes the
// decoders want. Close is a no-op; the bytes belong to the track.
type byteStream struct {
	*bytes.Reader
}

func (byteStream) Close() error { return nil }

func newByteStream(data []byte) byteStream {
	return byteStream{bytes.NewReader(data)}
}

// skipID3v2 strips a leading ID3v2 block so format sniffing sees the
// real stream start. The tag size is syncsafe, 7 bits per byte.
func skipID3v2(data []byte) []byte {
	if len(data) < 10 || !bytes.HasPrefix(data, []byte("ID3")) {
		return data
	}
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	if 10+size > len(data) {
		return data
	}
	return data[10+size:]
}

// sniffFormat guesses the container from magic bytes.
func sniffFormat(data []byte) string {
	body := skipID3v2(data)
	switch {
	case bytes.HasPrefix(body, []byte("fLaC")):
		return "flac"
	case bytes.HasPrefix(body, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(body, []byte("RIFF")):
		return "wav"
	default:
		return "mp3"
	}
}

// formatFromMIME maps a MIME type to a decoder key, falling back to
// byte sniffing for types the source reported loosely.
func formatFromMIME(mime string, data []byte) string {
	mime = strings.ToLower(mime)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	case "audio/flac", "audio/x-flac":
		return "flac"
	case "audio/ogg", "audio/vorbis", "application/ogg":
		return "ogg"
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return "wav"
	default:
		return sniffFormat(data)
	}
}

// decode opens a streamer over the track payload.
func decode(mime string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	switch format := formatFromMIME(mime, data); format {
	case "mp3":
		return decodeMP3(newByteStream(data))
	case "flac":
		return flac.Decode(newByteStream(skipID3v2(data)))
	case "ogg":
		return vorbis.Decode(newByteStream(data))
	case "wav":
		return wav.Decode(newByteStream(data))
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", format)
	}
}
