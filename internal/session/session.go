// Package session implements Session and SessionManager: the per-SETUP
// state machine, transport negotiation, and RTP delivery loop. Grounded on
// original_source/_LEGACY_oddity-rtsp-server/src/media/session/session.rs
// and original_source/oddity-rtsp-server/src/app/handler.rs for the
// setup/play/teardown flow, re-expressed with gortsplib's session
// bookkeeping idiom (server_session.go's id-generation-with-retry,
// server_stream.go's fan-out-to-subscribers shape).
package session

import (
	"net"

	"github.com/rs/zerolog/log"

	"github.com/oddity-ai/oddity-rtsp/internal/metrics"
	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
	"github.com/oddity-ai/oddity-rtsp/internal/source"
	"github.com/oddity-ai/oddity-rtsp/pkg/base"
	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// State is a Session's position in its state machine (spec §3): Ready after
// SETUP, Playing after PLAY, TornDown is terminal.
type State int

const (
	StateReady State = iota
	StatePlaying
	StateTornDown
)

// StreamState is captured at the moment PLAY is applied so the handler can
// fill RTP-Info (spec §4.4).
type StreamState struct {
	RtpSeq       uint16
	RtpTimestamp uint32
}

type playRequest struct {
	reply chan StreamState
}

// Session is a per-SETUP entity owning one RTP muxer, one destination
// descriptor, and a subscription to its Source (spec §3).
type Session struct {
	id       ID
	delegate *source.SourceDelegate
	setup    *Setup
	metrics  *metrics.Metrics

	state State

	playCh chan playRequest
	stopCh chan struct{}
	done   chan struct{}
}

func newSession(id ID, delegate *source.SourceDelegate, setup *Setup, m *metrics.Metrics) *Session {
	return &Session{
		id:       id,
		delegate: delegate,
		setup:    setup,
		metrics:  m,
		state:    StateReady,
		playCh:   make(chan playRequest),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// run is the Session's delivery loop (spec §4.4): mux every packet as it
// arrives, deliver it only once Playing, and apply Play control messages.
func (s *Session) run(tc *runtime.TaskContext) {
	defer close(s.done)
	defer s.finish()

	pktCh := s.delegate.RecvPacket()
	for {
		select {
		case <-s.stopCh:
			return
		case <-tc.Done():
			return

		case req, ok := <-s.playCh:
			if !ok {
				continue
			}
			s.state = StatePlaying
			seq, ts := s.setup.Muxer.LastRTPState()
			req.reply <- StreamState{RtpSeq: seq, RtpTimestamp: ts}

		case pkt, ok := <-pktCh:
			if !ok {
				return
			}
			buf, err := s.setup.Muxer.Mux(pkt)
			if err != nil {
				log.Error().Err(err).Str("session", string(s.id)).Msg("session: mux error, stopping")
				return
			}
			if s.state != StatePlaying {
				continue
			}
			if err := s.deliver(buf); err != nil {
				if s.setup.Target.Kind == RtpTargetInterleaved {
					log.Info().Str("session", string(s.id)).Msg("session: interleaved write failed, connection gone")
					return
				}
				log.Debug().Err(err).Str("session", string(s.id)).Msg("session: UDP send failed, continuing")
			}
			if sr, ok := s.setup.Muxer.MaybeSenderReport(); ok {
				if err := s.deliver(sr); err != nil {
					log.Debug().Err(err).Str("session", string(s.id)).Msg("session: sender report send failed, continuing")
				}
			}
		}
	}
}

// deliver sends one muxed buffer to this Session's target.
func (s *Session) deliver(buf rtpio.RtpBuf) error {
	switch s.setup.Target.Kind {
	case RtpTargetUDP:
		rtpConn, rtcpConn := s.setup.Muxer.UDPConns()
		var conn *net.UDPConn
		var addr *net.UDPAddr
		if buf.Kind == rtpio.RtpBufRTCP {
			conn, addr = rtcpConn, s.setup.Target.RTCPRemote
		} else {
			conn, addr = rtpConn, s.setup.Target.RTPRemote
		}
		_, err := conn.WriteToUDP(buf.Data, addr)
		if err == nil && s.metrics != nil {
			s.metrics.PacketsSentTotal.WithLabelValues("udp").Inc()
		}
		return err

	case RtpTargetInterleaved:
		channel := s.setup.Target.RTPChannel
		if buf.Kind == rtpio.RtpBufRTCP {
			channel = s.setup.Target.RTCPChannel
		}
		frame := &base.InterleavedFrame{Channel: channel, Payload: buf.Data}
		select {
		case s.setup.Target.Writer <- &base.ResponseOrInterleaved{Interleaved: frame}:
			if s.metrics != nil {
				s.metrics.PacketsSentTotal.WithLabelValues("tcp").Inc()
			}
			return nil
		case <-s.stopCh:
			return liberrors.ErrControlBroken{}
		}
	}
	return nil
}

// finish runs the muxer's finish step and discards any trailing buffer,
// per spec §4.4: "After loop exit: run muxer.finish(), discard any trailing
// RTP buffer".
func (s *Session) finish() {
	_, _ = s.setup.Muxer.Finish()
	s.setup.Muxer.Close()
	s.delegate.Close()
}

// play sends a Play control message and waits for the Session to report the
// StreamState it captured.
func (s *Session) play() (StreamState, error) {
	reply := make(chan StreamState, 1)
	select {
	case s.playCh <- playRequest{reply: reply}:
	case <-s.done:
		return StreamState{}, liberrors.ErrControlBroken{}
	}
	select {
	case st := <-reply:
		return st, nil
	case <-s.done:
		return StreamState{}, liberrors.ErrControlBroken{}
	}
}

// teardown stops the Session's delivery loop and waits for it to exit.
func (s *Session) teardown() {
	close(s.stopCh)
	<-s.done
}
