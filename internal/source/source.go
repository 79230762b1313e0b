// Package source implements Source and SourceManager: the registry of live
// media origins this server can DESCRIBE and SETUP against. Grounded on
// original_source/_LEGACY_oddity-rtsp-server/src/media/source/{source.rs,
// reader.rs}, re-expressed with gortsplib's session/stream bookkeeping
// idiom (mutex-guarded map, fan-out via a dedicated broadcaster type).
package source

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/oddity-ai/oddity-rtsp/internal/metrics"
	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
	sdpsynth "github.com/oddity-ai/oddity-rtsp/internal/sdp"
	"github.com/oddity-ai/oddity-rtsp/pkg/base"
	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// packetBroadcastCap is the Source packet broadcast channel's per-subscriber
// buffer (spec §4.3: "a broadcast channel of media packets (capacity
// 1024)"). The media-info side of that same design (a capacity-16 broadcast
// channel the reader posts onto in response to control requests) collapses
// here into a direct request/reply over controlCh: with no delegate ever
// subscribing to a standing media-info stream (SourceDelegate only exposes
// a point-in-time QueryMediaInfo), a second broadcaster would have no
// reachable subscriber.
const packetBroadcastCap = 1024

type mediaInfoRequest struct {
	reply chan rtpio.MediaInfo
}

// Source is a live per-path media origin. Grounded on spec §4.3: created on
// registration, its reader task starts lazily (on first subscriber or
// DESCRIBE) and stops when the Source is torn down.
type Source struct {
	path       string
	descriptor rtpio.Descriptor
	metrics    *metrics.Metrics

	mu      sync.Mutex
	started bool

	controlCh chan mediaInfoRequest
	packets   *runtime.Broadcaster[rtpio.Packet]

	stopCh chan struct{}
	done   chan struct{}
}

func newSource(path string, descriptor rtpio.Descriptor, m *metrics.Metrics) *Source {
	return &Source{
		path:       path,
		descriptor: descriptor,
		metrics:    m,
		controlCh:  make(chan mediaInfoRequest),
		packets:    runtime.NewBroadcaster[rtpio.Packet](packetBroadcastCap),
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// ensureStarted lazily spawns the reader task the first time a caller
// (Subscribe or Describe) needs live data from this Source.
func (s *Source) ensureStarted(rt *runtime.Runtime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	rt.Spawn(s.run)
}

// queryMediaInfo performs the control-channel request/reply round-trip: the
// reader task answers with its cached MediaInfo directly on the request's
// reply channel (there is no media-info broadcast; see packetBroadcastCap).
func (s *Source) queryMediaInfo() (rtpio.MediaInfo, error) {
	reply := make(chan rtpio.MediaInfo, 1)
	select {
	case s.controlCh <- mediaInfoRequest{reply: reply}:
	case <-s.done:
		return rtpio.MediaInfo{}, liberrors.ErrControlBroken{}
	}
	select {
	case info := <-reply:
		return info, nil
	case <-s.done:
		return rtpio.MediaInfo{}, liberrors.ErrControlBroken{}
	}
}

// run is the Source's reader task: it selects on the next demuxed packet,
// a control request, or the stop signal, per spec §4.3's three-event loop.
func (s *Source) run(tc *runtime.TaskContext) {
	defer close(s.done)

	reader, err := s.descriptor.Open()
	if err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("source: failed to open reader")
		return
	}
	defer reader.Close()

	info := reader.MediaInfo()

	pktCh := make(chan rtpio.Packet)
	errCh := make(chan error, 1)
	readerStop := make(chan struct{})
	go func() {
		for {
			select {
			case <-readerStop:
				return
			default:
			}
			pkt, rerr := reader.Read()
			if rerr != nil {
				if errors.Is(rerr, rtpio.ErrReadExhausted) && s.descriptor.Kind() == rtpio.DescriptorFile {
					if serr := reader.Seek(0); serr != nil {
						errCh <- serr
						return
					}
					continue
				}
				errCh <- rerr
				return
			}
			select {
			case pktCh <- pkt:
			case <-readerStop:
				return
			}
		}
	}()
	defer close(readerStop)

	for {
		select {
		case <-s.stopCh:
			return
		case <-tc.Done():
			return
		case req := <-s.controlCh:
			req.reply <- info
		case pkt := <-pktCh:
			_, evicted := s.packets.Broadcast(pkt)
			if evicted > 0 {
				log.Warn().Str("path", s.path).Int("evicted", evicted).Msg("source: broadcast overflow")
				if s.metrics != nil {
					s.metrics.SourceOverflow.WithLabelValues(s.path).Add(float64(evicted))
				}
			}
		case rerr := <-errCh:
			log.Error().Err(rerr).Str("path", s.path).Msg("source: reader stopped")
			return
		}
	}
}

// stop signals the reader task to exit and waits for it to do so.
func (s *Source) stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	close(s.stopCh)
	if started {
		<-s.done
	}
}

// SourceManager owns every registered Source (spec §4.3).
type SourceManager struct {
	rt      *runtime.Runtime
	metrics *metrics.Metrics

	mu      sync.Mutex
	sources map[string]*Source
}

// NewManager returns an empty SourceManager bound to rt. m may be nil, in
// which case no metrics are recorded.
func NewManager(rt *runtime.Runtime, m *metrics.Metrics) *SourceManager {
	return &SourceManager{rt: rt, metrics: m, sources: make(map[string]*Source)}
}

// Register adds a Source at path. Re-registering an already-known
// normalized path is rejected (spec §4.3: "idempotent overwrite is not
// allowed").
func (m *SourceManager) Register(path string, descriptor rtpio.Descriptor) error {
	norm := base.NormalizedPath(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sources[norm]; exists {
		return liberrors.ErrSourcePathAlreadyRegistered{Path: norm}
	}
	m.sources[norm] = newSource(norm, descriptor, m.metrics)
	if m.metrics != nil {
		m.metrics.SourcesActive.Inc()
	}
	return nil
}

// Describe synthesizes SDP for path. ok is false if the path is unknown;
// err is non-nil if SDP synthesis failed for a known path (spec §4.3:
// "unsupported codec").
func (m *SourceManager) Describe(path string) (sdpText []byte, ok bool, err error) {
	norm := base.NormalizedPath(path)
	m.mu.Lock()
	src, exists := m.sources[norm]
	m.mu.Unlock()
	if !exists {
		return nil, false, nil
	}

	src.ensureStarted(m.rt)
	info, qerr := src.queryMediaInfo()
	if qerr != nil {
		return nil, true, qerr
	}

	sdpText, serr := sdpsynth.Synthesize(norm, info, nil, nil)
	if serr != nil {
		return nil, true, serr
	}
	return sdpText, true, nil
}

// Subscribe returns a SourceDelegate for path, starting the Source's reader
// task if this is its first subscriber. ok is false if path is unknown.
func (m *SourceManager) Subscribe(path string) (*SourceDelegate, bool) {
	norm := base.NormalizedPath(path)
	m.mu.Lock()
	src, exists := m.sources[norm]
	m.mu.Unlock()
	if !exists {
		return nil, false
	}

	src.ensureStarted(m.rt)
	packetCh := src.packets.Subscribe()
	return &SourceDelegate{source: src, packetCh: packetCh}, true
}

// Stop tears down every Source, awaiting each (spec §4.3).
func (m *SourceManager) Stop() {
	m.mu.Lock()
	sources := make([]*Source, 0, len(m.sources))
	for _, s := range m.sources {
		sources = append(sources, s)
	}
	m.mu.Unlock()

	for _, s := range sources {
		s.stop()
		if m.metrics != nil {
			m.metrics.SourcesActive.Dec()
		}
	}
}

// SourceDelegate is the handle a Session holds on a Source, per spec §4.3.
type SourceDelegate struct {
	source   *Source
	packetCh <-chan rtpio.Packet
}

// QueryMediaInfo requests the Source's cached MediaInfo over its control
// channel.
func (d *SourceDelegate) QueryMediaInfo() (rtpio.MediaInfo, error) {
	return d.source.queryMediaInfo()
}

// RecvPacket returns the channel a Session reads demuxed packets from.
func (d *SourceDelegate) RecvPacket() <-chan rtpio.Packet {
	return d.packetCh
}

// Close unsubscribes from the Source's packet broadcast.
func (d *SourceDelegate) Close() {
	d.source.packets.Unsubscribe(d.packetCh)
}
