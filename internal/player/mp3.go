package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Stream wraps llehouerou/go-mp3 as a beep.StreamSeekCloser.
// The decoder outputs interleaved stereo 16-bit little-endian PCM.
type mp3Stream struct {
	decoder *mp3.Decoder
	closer  io.Closer
	err     error
	buf     []byte
}

func decodeMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	s := &mp3Stream{
		decoder: decoder,
		closer:  rc,
		buf:     make([]byte, 8192),
	}
	return s, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	// 4 bytes per frame: two 16-bit channels.
	needed := len(samples) * 4
	if len(s.buf) < needed {
		s.buf = make([]byte, needed)
	}

	read, err := io.ReadFull(s.decoder, s.buf[:needed])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	frames := read / 4
	if frames == 0 {
		return 0, false
	}

	for i := 0; i < frames && i < len(samples); i++ {
		off := i * 4
		left := int16(binary.LittleEndian.Uint16(s.buf[off:]))
		right := int16(binary.LittleEndian.Uint16(s.buf[off+2:]))
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
		n++
	}
	return n, true
}

func (s *mp3Stream) Err() error {
	return s.err
}

func (s *mp3Stream) Len() int {
	count := s.decoder.SampleCount()
	if count < 0 {
		return 0
	}
	return int(count)
}

func (s *mp3Stream) Position() int {
	return int(s.decoder.SamplePosition())
}

func (s *mp3Stream) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if l := s.Len(); p > l {
		p = l
	}
	if err := s.decoder.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error {
	return s.closer.Close()
}
