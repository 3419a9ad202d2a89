package clean

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"

	"metawipe/internal/fileutil"
)

// audioStrategy strips tag layers per container: ID3 frames for MP3, the
// vorbis comment and picture blocks for FLAC, LIST/id3 chunks for WAV. Other
// containers are probed; a file that carries no tags is an idempotent
// success, tags we cannot strip are a failure.
type audioStrategy struct {
	logger *slog.Logger
}

func newAudioStrategy(logger *slog.Logger) *audioStrategy {
	return &audioStrategy{logger: logger}
}

func (s *audioStrategy) Method() Method { return MethodAudio }

func (s *audioStrategy) Attempt(_ context.Context, path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return s.stripMP3(path)
	case ".flac":
		return s.stripFLAC(path)
	case ".wav":
		return s.stripWAV(path)
	default:
		return s.probeOther(path)
	}
}

func (s *audioStrategy) stripMP3(path string) bool {
	tags, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		s.logger.Debug("could not open mp3 tags", "path", path, "error", err)
		return false
	}
	defer tags.Close()

	tags.DeleteAllFrames()
	if err := tags.Save(); err != nil {
		s.logger.Error("could not save stripped mp3", "path", path, "error", err)
		return false
	}
	return true
}

func (s *audioStrategy) stripFLAC(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("could not read flac", "path", path, "error", err)
		return false
	}

	blocks, audioStart, err := parseFLACBlocks(data)
	if err != nil {
		s.logger.Debug("flac parse failed", "path", path, "error", err)
		return false
	}

	kept := blocks[:0]
	for _, block := range blocks {
		switch block.kind {
		case flacVorbisComment:
			block.body = emptyVorbisComment()
		case flacPicture:
			continue
		}
		kept = append(kept, block)
	}

	err = fileutil.ReplaceAtomic(path, func(w io.Writer) error {
		return writeFLAC(w, kept, data[audioStart:])
	})
	if err != nil {
		s.logger.Error("flac rewrite failed", "path", path, "error", err)
		return false
	}
	return true
}

func (s *audioStrategy) stripWAV(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("could not read wav", "path", path, "error", err)
		return false
	}
	body, err := dropWAVMetadataChunks(data)
	if err != nil {
		s.logger.Debug("wav parse failed", "path", path, "error", err)
		return false
	}

	err = fileutil.ReplaceAtomic(path, func(w io.Writer) error {
		_, werr := w.Write(body)
		return werr
	})
	if err != nil {
		s.logger.Error("wav rewrite failed", "path", path, "error", err)
		return false
	}
	return true
}

// probeOther checks containers this strategy cannot rewrite (m4a, ogg,
// opus, wma, aac). No readable tags means nothing to strip.
func (s *audioStrategy) probeOther(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Debug("could not open audio file", "path", path, "error", err)
		return false
	}
	defer f.Close()

	_, err = tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return true
	}
	if err != nil {
		s.logger.Debug("audio probe failed", "path", path, "error", err)
		return false
	}
	s.logger.Debug("audio container has tags this build cannot strip", "path", path)
	return false
}

// FLAC metadata block types.
const (
	flacVorbisComment = 4
	flacPicture       = 6
)

type flacBlock struct {
	kind byte
	body []byte
}

func parseFLACBlocks(data []byte) ([]flacBlock, int, error) {
	if len(data) < 4 || !bytes.Equal(data[:4], []byte("fLaC")) {
		return nil, 0, fmt.Errorf("missing fLaC marker")
	}
	var blocks []flacBlock
	i := 4
	for i+4 <= len(data) {
		header := binary.BigEndian.Uint32(data[i : i+4])
		last := header>>31 == 1
		kind := byte(header >> 24 & 0x7F)
		length := int(header & 0xFFFFFF)
		i += 4
		if i+length > len(data) {
			return nil, 0, fmt.Errorf("truncated block type %d", kind)
		}
		blocks = append(blocks, flacBlock{kind: kind, body: append([]byte{}, data[i:i+length]...)})
		i += length
		if last {
			break
		}
	}
	if len(blocks) == 0 {
		return nil, 0, fmt.Errorf("no metadata blocks")
	}
	return blocks, i, nil
}

// emptyVorbisComment builds a valid comment block with an empty vendor
// string and zero comments.
func emptyVorbisComment() []byte {
	return make([]byte, 8)
}

func writeFLAC(w io.Writer, blocks []flacBlock, audio []byte) error {
	if _, err := w.Write([]byte("fLaC")); err != nil {
		return err
	}
	header := make([]byte, 4)
	for i, block := range blocks {
		value := uint32(block.kind)<<24 | uint32(len(block.body))
		if i == len(blocks)-1 {
			value |= 1 << 31
		}
		binary.BigEndian.PutUint32(header, value)
		if _, err := w.Write(header); err != nil {
			return err
		}
		if _, err := w.Write(block.body); err != nil {
			return err
		}
	}
	_, err := w.Write(audio)
	return err
}

// dropWAVMetadataChunks rebuilds the RIFF container without LIST and id3
// chunks.
func dropWAVMetadataChunks(data []byte) ([]byte, error) {
	if len(data) < 12 || !bytes.Equal(data[:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, fmt.Errorf("not a riff/wave container")
	}

	var body bytes.Buffer
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8
		if offset+chunkSize > len(data) {
			break
		}

		switch chunkID {
		case "LIST", "id3 ", "ID3 ":
		default:
			body.Write(data[offset-8 : offset+chunkSize])
			if chunkSize%2 != 0 {
				// Preserve the RIFF word-alignment pad byte.
				body.WriteByte(0)
			}
		}

		offset += chunkSize
		if chunkSize%2 != 0 {
			offset++
		}
	}

	var out bytes.Buffer
	out.Grow(body.Len() + 12)
	out.WriteString("RIFF")
	size := make([]byte, 4)
	binary.LittleEndian.PutUint32(size, uint32(body.Len()+4))
	out.Write(size)
	out.WriteString("WAVE")
	out.Write(body.Bytes())
	return out.Bytes(), nil
}
