package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oddity-ai/oddity-rtsp/internal/metrics"
	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
	"github.com/oddity-ai/oddity-rtsp/internal/source"
	"github.com/oddity-ai/oddity-rtsp/pkg/base"
	"github.com/oddity-ai/oddity-rtsp/pkg/headers"
)

// fakeReader emits a steady stream of keyframes for session tests, never
// exhausting.
type fakeReader struct {
	info rtpio.MediaInfo
}

func (r *fakeReader) BestVideoStreamIndex() int        { return r.info.BestVideoStreamIndex() }
func (r *fakeReader) StreamInfo(i int) rtpio.StreamInfo { return r.info.Streams[0] }
func (r *fakeReader) MediaInfo() rtpio.MediaInfo        { return r.info }
func (r *fakeReader) Seek(int64) error                  { return nil }
func (r *fakeReader) Close() error                      { return nil }
func (r *fakeReader) Read() (rtpio.Packet, error) {
	time.Sleep(time.Millisecond)
	return rtpio.Packet{StreamIndex: 0, Data: []byte{0x65, 1, 2}, KeyFrame: true}, nil
}

type fakeDescriptor struct{}

func (fakeDescriptor) Kind() rtpio.DescriptorKind { return rtpio.DescriptorOther }
func (fakeDescriptor) String() string             { return "fake" }
func (fakeDescriptor) Open() (rtpio.Reader, error) {
	return &fakeReader{info: rtpio.MediaInfo{Streams: []rtpio.StreamInfo{{Index: 0, Codec: "h264", ClockRate: 90000}}}}, nil
}

// newTestSetup negotiates a TCP-interleaved Setup against a subscribed
// delegate, the easiest target to observe in-process (no real UDP socket
// read required).
func newTestSetup(t *testing.T, delegate *source.SourceDelegate, writer chan *base.ResponseOrInterleaved) *Setup {
	t.Helper()
	info, err := delegate.QueryMediaInfo()
	require.NoError(t, err)

	cand := &headers.Transport{Lower: headers.TransportLowerTCP, Unicast: true, Interleaved: &[2]int{0, 1}}
	setup, err := NegotiateTransport([]*headers.Transport{cand}, info, writer)
	require.NoError(t, err)
	return setup
}

func TestSessionPlayDeliversInterleavedFrames(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()

	srcMgr := source.NewManager(rt, nil)
	require.NoError(t, srcMgr.Register("/cam", fakeDescriptor{}))
	delegate, ok := srcMgr.Subscribe("/cam")
	require.True(t, ok)

	writer := make(chan *base.ResponseOrInterleaved, 16)
	setup := newTestSetup(t, delegate, writer)

	mgr := NewManager(rt, nil)
	id, err := mgr.Setup(delegate, setup)
	require.NoError(t, err)

	rng := &headers.Range{From: &headers.NptTime{Now: true}}
	_, err, found := mgr.Play(id, rng)
	require.True(t, found)
	require.NoError(t, err)

	select {
	case msg := <-writer:
		require.NotNil(t, msg.Interleaved)
		require.Equal(t, uint8(0), msg.Interleaved.Channel)
	case <-time.After(time.Second):
		t.Fatal("no interleaved frame delivered after Play")
	}

	require.True(t, mgr.Teardown(id))
}

func TestSessionNoDeliveryBeforePlay(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()

	srcMgr := source.NewManager(rt, nil)
	require.NoError(t, srcMgr.Register("/cam", fakeDescriptor{}))
	delegate, ok := srcMgr.Subscribe("/cam")
	require.True(t, ok)

	writer := make(chan *base.ResponseOrInterleaved, 16)
	setup := newTestSetup(t, delegate, writer)

	mgr := NewManager(rt, nil)
	id, err := mgr.Setup(delegate, setup)
	require.NoError(t, err)
	defer mgr.Teardown(id)

	select {
	case <-writer:
		t.Fatal("frame delivered before PLAY")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSessionPlayUnknownIDNotFound(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	mgr := NewManager(rt, nil)

	rng := &headers.Range{From: &headers.NptTime{Now: true}}
	_, err, found := mgr.Play("00000000", rng)
	require.False(t, found)
	require.NoError(t, err)
}

func TestSessionPlayRejectsUnsupportedRange(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()

	srcMgr := source.NewManager(rt, nil)
	require.NoError(t, srcMgr.Register("/cam", fakeDescriptor{}))
	delegate, ok := srcMgr.Subscribe("/cam")
	require.True(t, ok)

	writer := make(chan *base.ResponseOrInterleaved, 16)
	setup := newTestSetup(t, delegate, writer)

	mgr := NewManager(rt, nil)
	id, err := mgr.Setup(delegate, setup)
	require.NoError(t, err)
	defer mgr.Teardown(id)

	closedEnd := &headers.NptTime{Seconds: 10}
	rng := &headers.Range{From: &headers.NptTime{Now: true}, To: closedEnd}
	_, err, found := mgr.Play(id, rng)
	require.True(t, found)
	require.Error(t, err)
}

func TestSessionTeardownUnknownIDReturnsFalse(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	mgr := NewManager(rt, nil)
	require.False(t, mgr.Teardown("00000000"))
}

func TestSessionTeardownThenPlayNotFound(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()

	srcMgr := source.NewManager(rt, nil)
	require.NoError(t, srcMgr.Register("/cam", fakeDescriptor{}))
	delegate, ok := srcMgr.Subscribe("/cam")
	require.True(t, ok)

	writer := make(chan *base.ResponseOrInterleaved, 16)
	setup := newTestSetup(t, delegate, writer)

	mgr := NewManager(rt, nil)
	id, err := mgr.Setup(delegate, setup)
	require.NoError(t, err)
	require.True(t, mgr.Teardown(id))

	rng := &headers.Range{From: &headers.NptTime{Now: true}}
	_, err, found := mgr.Play(id, rng)
	require.False(t, found)
	require.NoError(t, err)
}

func TestManagerStopTearsDownAllSessions(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()

	srcMgr := source.NewManager(rt, nil)
	require.NoError(t, srcMgr.Register("/cam", fakeDescriptor{}))

	mgr := NewManager(rt, nil)
	for i := 0; i < 3; i++ {
		delegate, ok := srcMgr.Subscribe("/cam")
		require.True(t, ok)
		writer := make(chan *base.ResponseOrInterleaved, 16)
		setup := newTestSetup(t, delegate, writer)
		_, err := mgr.Setup(delegate, setup)
		require.NoError(t, err)
	}

	mgr.Stop()
}

func TestSessionMetricsTrackPacketsSent(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	mx := metrics.NewUnregistered()

	srcMgr := source.NewManager(rt, mx)
	require.NoError(t, srcMgr.Register("/cam", fakeDescriptor{}))
	delegate, ok := srcMgr.Subscribe("/cam")
	require.True(t, ok)

	writer := make(chan *base.ResponseOrInterleaved, 16)
	setup := newTestSetup(t, delegate, writer)

	mgr := NewManager(rt, mx)
	id, err := mgr.Setup(delegate, setup)
	require.NoError(t, err)
	defer mgr.Teardown(id)

	rng := &headers.Range{From: &headers.NptTime{Now: true}}
	_, err, found := mgr.Play(id, rng)
	require.True(t, found)
	require.NoError(t, err)

	select {
	case <-writer:
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}
}
