package rtpio

import (
	"bytes"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// FileDescriptor identifies a raw H.264 Annex-B elementary stream on disk.
// Grounded on original_source/_LEGACY_oddity-rtsp-server/src/media/
// source/reader.rs's Descriptor::File concept; container demuxing (MP4,
// Matroska, ...) is explicitly out of scope, so FileReader only understands
// the Annex-B start-code framing, which is the simplest "demuxer" that can
// exist without building a real one.
type FileDescriptor struct {
	Path string
	// FPS paces packet emission to mimic a live source (spec §4.3: "the
	// reader sleeps for each packet's nominal duration before enqueuing
	// it"). Defaults to 25 if zero.
	FPS int
}

// Kind reports DescriptorFile.
func (d FileDescriptor) Kind() DescriptorKind { return DescriptorFile }

// String identifies the descriptor for logging.
func (d FileDescriptor) String() string { return "file:" + d.Path }

// Open reads the whole file and splits it into NAL units, ready to be
// replayed as Packets.
func (d FileDescriptor) Open() (Reader, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, err
	}
	nals := splitAnnexB(data)

	fps := d.FPS
	if fps <= 0 {
		fps = 25
	}

	frameDur := time.Second / time.Duration(fps)

	return &FileReader{
		nals:     nals,
		frameDur: frameDur,
		limiter:  rate.NewLimiter(rate.Every(frameDur), 1),
		mediaInfo: MediaInfo{Streams: []StreamInfo{{
			Index:     0,
			Codec:     "h264",
			ClockRate: 90000,
		}}},
	}, nil
}

// FileReader replays a fixed set of NAL units in a loop, seeking back to the
// start on exhaustion (spec §4.3: "If the underlying demuxer reports 'read
// exhausted' and the descriptor is File, seek back to 0 and continue").
// Grounded on reader.rs/source.rs's read-exhausted-then-seek shape.
type FileReader struct {
	nals      [][]byte
	pos       int
	pts       int64
	frameDur  time.Duration
	limiter   *rate.Limiter
	mediaInfo MediaInfo
}

// BestVideoStreamIndex implements Reader.
func (r *FileReader) BestVideoStreamIndex() int { return r.mediaInfo.BestVideoStreamIndex() }

// StreamInfo implements Reader.
func (r *FileReader) StreamInfo(index int) StreamInfo {
	for _, s := range r.mediaInfo.Streams {
		if s.Index == index {
			return s
		}
	}
	return StreamInfo{}
}

// MediaInfo implements Reader.
func (r *FileReader) MediaInfo() MediaInfo { return r.mediaInfo }

// Read returns the next NAL unit as a Packet, or ErrReadExhausted once every
// NAL has been returned once; the caller is expected to Seek(0) and keep
// reading, which is exactly what the Source reader loop does.
func (r *FileReader) Read() (Packet, error) {
	if r.pos >= len(r.nals) {
		return Packet{}, ErrReadExhausted
	}
	nal := r.nals[r.pos]
	r.pos++

	clockRate := int64(r.mediaInfo.Streams[0].ClockRate)
	ticks := int64(r.frameDur) * clockRate / int64(time.Second)
	if ticks < 1 {
		ticks = 1
	}

	p := Packet{
		StreamIndex: 0,
		Data:        nal,
		PTS:         r.pts,
		Duration:    r.frameDur,
		KeyFrame:    isKeyFrameNAL(nal),
	}
	r.pts += ticks

	time.Sleep(r.limiter.Reserve().Delay())
	return p, nil
}

// Seek implements Reader. Only pos==0 is meaningful here (spec §4.3/§9
// only ever seeks a File source back to the start; no guarantee is made
// about timestamp continuity across the loop boundary).
func (r *FileReader) Seek(pos int64) error {
	if pos == 0 {
		r.pos = 0
	}
	return nil
}

// Close implements Reader.
func (r *FileReader) Close() error { return nil }

// splitAnnexB splits an Annex-B byte stream on 3- and 4-byte start codes.
func splitAnnexB(data []byte) [][]byte {
	var nals [][]byte
	starts := findStartCodes(data)
	for i, start := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1].offset
		}
		nal := data[start.offset+start.length : end]
		if len(nal) > 0 {
			nals = append(nals, nal)
		}
	}
	return nals
}

type startCode struct {
	offset int
	length int
}

func findStartCodes(data []byte) []startCode {
	var out []startCode
	four := []byte{0, 0, 0, 1}
	three := []byte{0, 0, 1}
	for i := 0; i < len(data); {
		if bytes.HasPrefix(data[i:], four) {
			out = append(out, startCode{offset: i, length: 4})
			i += 4
			continue
		}
		if bytes.HasPrefix(data[i:], three) {
			out = append(out, startCode{offset: i, length: 3})
			i += 3
			continue
		}
		i++
	}
	return out
}

func isKeyFrameNAL(nal []byte) bool {
	if len(nal) == 0 {
		return false
	}
	const nalTypeIDR = 5
	return int(nal[0]&0x1f) == nalTypeIDR
}
