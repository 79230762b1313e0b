// Package rtspserver implements Connection and the request Handler: the
// per-client TCP socket and the pure request-to-response dispatch spec §4.5
// describes. Grounded on gortsplib's server_conn.go/server_conn_reader.go
// for the reader/writer goroutine split and original_source/
// oddity-rtsp-server/src/app/handler.rs for the per-method status table.
package rtspserver

import (
	"strings"

	"github.com/oddity-ai/oddity-rtsp/internal/session"
	"github.com/oddity-ai/oddity-rtsp/internal/source"
	"github.com/oddity-ai/oddity-rtsp/pkg/base"
	"github.com/oddity-ai/oddity-rtsp/pkg/headers"
	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// SharedContext is what every Connection's Handler dispatches against: the
// two managers plus the string this server identifies itself with in the
// Server response header.
type SharedContext struct {
	Sources  *source.SourceManager
	Sessions *session.Manager
	Server   string
}

// publicMethods is the value of the Public header OPTIONS advertises (spec
// §4.5): exactly the methods this handler implements a non-405 response
// for.
const publicMethods = "OPTIONS, DESCRIBE, SETUP, PLAY, TEARDOWN"

// HandleRequest dispatches req against ctx and returns the Response to
// write back. writer is the Connection's output channel, threaded through
// only so SETUP can hand it to transport negotiation for the Interleaved
// target case; Handler never reads from it itself.
//
// HandleRequest is otherwise a pure function of (req, ctx): it is safe to
// call concurrently for different Connections sharing the same ctx.
func HandleRequest(req *base.Request, ctx *SharedContext, writer chan<- *base.ResponseOrInterleaved) *base.Response {
	if req.Header.Has("Require") {
		return base.NewResponse(base.StatusOptionNotSupported, req, ctx.Server)
	}

	switch req.Method {
	case base.Options:
		return handleOptions(req, ctx)
	case base.Describe:
		return handleDescribe(req, ctx)
	case base.Setup:
		return handleSetup(req, ctx, writer)
	case base.Play:
		return handlePlay(req, ctx)
	case base.Teardown:
		return handleTeardown(req, ctx)
	case base.Redirect:
		return base.NewResponse(base.StatusMethodNotValidInThisState, req, ctx.Server)
	default:
		return base.NewResponse(base.StatusMethodNotAllowed, req, ctx.Server)
	}
}

func handleOptions(req *base.Request, ctx *SharedContext) *base.Response {
	res := base.NewResponse(base.StatusOK, req, ctx.Server)
	res.Header.Set("Public", publicMethods)
	return res
}

func handleDescribe(req *base.Request, ctx *SharedContext) *base.Response {
	accept, _ := req.Header.Get("Accept")
	if accept != "" && !strings.Contains(accept, "application/sdp") {
		return base.NewResponse(base.StatusNotAcceptable, req, ctx.Server)
	}

	sdpText, ok, err := ctx.Sources.Describe(req.URL.Path)
	if !ok {
		return base.NewResponse(base.StatusNotFound, req, ctx.Server)
	}
	if err != nil {
		return base.NewResponse(base.StatusInternalServerError, req, ctx.Server)
	}

	res := base.NewResponse(base.StatusOK, req, ctx.Server)
	res.Header.Set("Content-Type", "application/sdp")
	res.Body = sdpText
	return res
}

func handleSetup(req *base.Request, ctx *SharedContext, writer chan<- *base.ResponseOrInterleaved) *base.Response {
	if req.Header.Has("Session") {
		return base.NewResponse(base.StatusAggregateOperationNotAllowed, req, ctx.Server)
	}

	transportHeader, ok := req.Header.Get("Transport")
	if !ok {
		return base.NewResponse(base.StatusUnsupportedTransport, req, ctx.Server)
	}
	candidates, err := headers.ReadTransportCandidates(transportHeader)
	if err != nil {
		return base.NewResponse(base.StatusUnsupportedTransport, req, ctx.Server)
	}

	delegate, ok := ctx.Sources.Subscribe(req.URL.Path)
	if !ok {
		return base.NewResponse(base.StatusNotFound, req, ctx.Server)
	}

	info, err := delegate.QueryMediaInfo()
	if err != nil {
		delegate.Close()
		return base.NewResponse(base.StatusInternalServerError, req, ctx.Server)
	}

	setup, err := session.NegotiateTransport(candidates, info, writer)
	if err != nil {
		delegate.Close()
		switch err.(type) {
		case liberrors.ErrTransportNotSupported, liberrors.ErrDestinationInvalid:
			return base.NewResponse(base.StatusUnsupportedTransport, req, ctx.Server)
		default:
			return base.NewResponse(base.StatusInternalServerError, req, ctx.Server)
		}
	}

	id, err := ctx.Sessions.Setup(delegate, setup)
	if err != nil {
		delegate.Close()
		setup.Muxer.Close()
		return base.NewResponse(base.StatusInternalServerError, req, ctx.Server)
	}

	res := base.NewResponse(base.StatusOK, req, ctx.Server)
	res.Header.Set("Session", headers.Session{Session: string(id)}.Write())
	res.Header.Set("Transport", setup.Transport.Write())
	return res
}

func handlePlay(req *base.Request, ctx *SharedContext) *base.Response {
	var rng *headers.Range
	if rngHeader, ok := req.Header.Get("Range"); ok {
		parsed, err := headers.ReadRange(rngHeader)
		if err != nil {
			switch err.(type) {
			case liberrors.ErrRangeUnitNotSupported, liberrors.ErrRangeTimeNotSupported:
				return base.NewResponse(base.StatusNotImplemented, req, ctx.Server)
			default:
				return base.NewResponse(base.StatusBadRequest, req, ctx.Server)
			}
		}
		rng = parsed
	}

	sessionHeader, ok := req.Header.Get("Session")
	if !ok {
		return base.NewResponse(base.StatusSessionNotFound, req, ctx.Server)
	}
	id := session.ID(headers.ReadSession(sessionHeader).Session)

	state, err, found := ctx.Sessions.Play(id, rng)
	if !found {
		return base.NewResponse(base.StatusSessionNotFound, req, ctx.Server)
	}
	if err != nil {
		switch err.(type) {
		case liberrors.ErrRangeNotSupported:
			return base.NewResponse(base.StatusHeaderFieldNotValidForResource, req, ctx.Server)
		default:
			return base.NewResponse(base.StatusInternalServerError, req, ctx.Server)
		}
	}

	res := base.NewResponse(base.StatusOK, req, ctx.Server)
	res.Header.Set("Range", "npt=now-")
	res.Header.Set("RTP-Info", headers.RTPInfoEntry{
		URL:      req.URL.String(),
		Sequence: state.RtpSeq,
		RTPTime:  state.RtpTimestamp,
	}.Write())
	return res
}

func handleTeardown(req *base.Request, ctx *SharedContext) *base.Response {
	sessionHeader, ok := req.Header.Get("Session")
	if !ok {
		return base.NewResponse(base.StatusSessionNotFound, req, ctx.Server)
	}
	id := session.ID(headers.ReadSession(sessionHeader).Session)

	if !ctx.Sessions.Teardown(id) {
		return base.NewResponse(base.StatusSessionNotFound, req, ctx.Server)
	}
	return base.NewResponse(base.StatusOK, req, ctx.Server)
}
