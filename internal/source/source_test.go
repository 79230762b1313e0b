package source

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oddity-ai/oddity-rtsp/internal/metrics"
	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
)

// fakeReader emits one fixed packet forever, never exhausting, so tests
// don't depend on the file-looping behavior covered in internal/rtpio.
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
	return rtpio.Packet{StreamIndex: 0, Data: []byte{0x65}}, nil
}

type fakeDescriptor struct{}

func (fakeDescriptor) Kind() rtpio.DescriptorKind { return rtpio.DescriptorOther }
func (fakeDescriptor) String() string             { return "fake" }
func (fakeDescriptor) Open() (rtpio.Reader, error) {
	return &fakeReader{info: rtpio.MediaInfo{Streams: []rtpio.StreamInfo{{Index: 0, Codec: "h264", ClockRate: 90000}}}}, nil
}

func TestRegisterRejectsDuplicatePath(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	m := NewManager(rt, nil)

	require.NoError(t, m.Register("/stream", fakeDescriptor{}))
	err := m.Register("/stream", fakeDescriptor{})
	require.Error(t, err)
}

func TestRegisterNormalizesPath(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	m := NewManager(rt, nil)

	require.NoError(t, m.Register("stream/", fakeDescriptor{}))
	_, ok, err := m.Describe("/stream")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDescribeUnknownPath(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	m := NewManager(rt, nil)

	_, ok, err := m.Describe("/nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDescribeReturnsSDP(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	m := NewManager(rt, nil)
	require.NoError(t, m.Register("/stream", fakeDescriptor{}))

	sdpText, ok, err := m.Describe("/stream")
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, string(sdpText), "m=video")
}

func TestSubscribeReceivesPackets(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	m := NewManager(rt, nil)
	require.NoError(t, m.Register("/stream", fakeDescriptor{}))

	delegate, ok := m.Subscribe("/stream")
	require.True(t, ok)
	defer delegate.Close()

	select {
	case pkt := <-delegate.RecvPacket():
		require.Equal(t, []byte{0x65}, pkt.Data)
	case <-time.After(time.Second):
		t.Fatal("no packet received")
	}
}

func TestSubscribeUnknownPath(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	m := NewManager(rt, nil)

	_, ok := m.Subscribe("/nope")
	require.False(t, ok)
}

func TestStopTearsDownSources(t *testing.T) {
	rt := runtime.New()
	m := NewManager(rt, nil)
	require.NoError(t, m.Register("/stream", fakeDescriptor{}))

	delegate, ok := m.Subscribe("/stream")
	require.True(t, ok)
	defer delegate.Close()

	m.Stop()
	rt.Stop()
}

func TestMetricsIncrementOnRegisterAndStop(t *testing.T) {
	rt := runtime.New()
	defer rt.Stop()
	mx := metrics.NewUnregistered()
	m := NewManager(rt, mx)

	require.NoError(t, m.Register("/stream", fakeDescriptor{}))
	require.Equal(t, float64(1), testutil.ToFloat64(mx.SourcesActive))

	m.Stop()
	require.Equal(t, float64(0), testutil.ToFloat64(mx.SourcesActive))
}
