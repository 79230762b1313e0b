package base

// StatusCode is the numeric status code of an RTSP response. It is not a
// closed Go type (any int is a valid StatusCode on the wire, per spec §3:
// "may be outside the known enum") but the constants below cover the
// codes this server emits plus most of the RFC 2326 table used by
// StatusMessages (201, 250, 300 and 452 are not defined here).
type StatusCode int

// Status codes used by this server's handler (spec §4.5) plus most of the
// rest of the RFC 2326 enumeration, across classes 1xx-5xx plus 551.
const (
	StatusContinue StatusCode = 100

	StatusOK StatusCode = 200

	StatusMovedPermanently StatusCode = 301
	StatusFound            StatusCode = 302
	StatusSeeOther         StatusCode = 303
	StatusNotModified      StatusCode = 304
	StatusUseProxy         StatusCode = 305

	StatusBadRequest                      StatusCode = 400
	StatusUnauthorized                    StatusCode = 401
	StatusPaymentRequired                 StatusCode = 402
	StatusForbidden                       StatusCode = 403
	StatusNotFound                        StatusCode = 404
	StatusMethodNotAllowed                StatusCode = 405
	StatusNotAcceptable                   StatusCode = 406
	StatusProxyAuthRequired                StatusCode = 407
	StatusRequestTimeout                  StatusCode = 408
	StatusGone                            StatusCode = 410
	StatusLengthRequired                  StatusCode = 411
	StatusPreconditionFailed              StatusCode = 412
	StatusRequestEntityTooLarge           StatusCode = 413
	StatusRequestURITooLong               StatusCode = 414
	StatusUnsupportedMediaType            StatusCode = 415
	StatusParameterNotUnderstood          StatusCode = 451
	StatusNotEnoughBandwidth              StatusCode = 453
	StatusSessionNotFound                 StatusCode = 454
	StatusMethodNotValidInThisState       StatusCode = 455
	StatusHeaderFieldNotValidForResource  StatusCode = 456
	StatusInvalidRange                    StatusCode = 457
	StatusParameterIsReadOnly             StatusCode = 458
	StatusAggregateOperationNotAllowed    StatusCode = 459
	StatusOnlyAggregateOperationAllowed   StatusCode = 460
	StatusUnsupportedTransport            StatusCode = 461
	StatusDestinationUnreachable          StatusCode = 462

	StatusInternalServerError     StatusCode = 500
	StatusNotImplemented          StatusCode = 501
	StatusBadGateway              StatusCode = 502
	StatusServiceUnavailable      StatusCode = 503
	StatusGatewayTimeout          StatusCode = 504
	StatusRTSPVersionNotSupported StatusCode = 505
	StatusOptionNotSupported      StatusCode = 551
)

// StatusMessages maps each known status code to its canonical reason
// phrase. Parsing tolerates a mismatching reason phrase (spec §3) but this
// table is what Response.Marshal falls back to when Reason is empty.
var StatusMessages = map[StatusCode]string{
	StatusContinue: "Continue",

	StatusOK: "OK",

	StatusMovedPermanently: "Moved Permanently",
	StatusFound:            "Found",
	StatusSeeOther:         "See Other",
	StatusNotModified:      "Not Modified",
	StatusUseProxy:         "Use Proxy",

	StatusBadRequest:                     "Bad Request",
	StatusUnauthorized:                   "Unauthorized",
	StatusPaymentRequired:                "Payment Required",
	StatusForbidden:                      "Forbidden",
	StatusNotFound:                       "Not Found",
	StatusMethodNotAllowed:               "Method Not Allowed",
	StatusNotAcceptable:                  "Not Acceptable",
	StatusProxyAuthRequired:              "Proxy Auth Required",
	StatusRequestTimeout:                 "Request Timeout",
	StatusGone:                           "Gone",
	StatusLengthRequired:                 "Length Required",
	StatusPreconditionFailed:             "Precondition Failed",
	StatusRequestEntityTooLarge:          "Request Entity Too Large",
	StatusRequestURITooLong:              "Request URI Too Long",
	StatusUnsupportedMediaType:           "Unsupported Media Type",
	StatusParameterNotUnderstood:         "Parameter Not Understood",
	StatusNotEnoughBandwidth:             "Not Enough Bandwidth",
	StatusSessionNotFound:                "Session Not Found",
	StatusMethodNotValidInThisState:      "Method Not Valid In This State",
	StatusHeaderFieldNotValidForResource: "Header Field Not Valid for Resource",
	StatusInvalidRange:                   "Invalid Range",
	StatusParameterIsReadOnly:            "Parameter Is Read-Only",
	StatusAggregateOperationNotAllowed:   "Aggregate Operation Not Allowed",
	StatusOnlyAggregateOperationAllowed:  "Only Aggregate Operation Allowed",
	StatusUnsupportedTransport:           "Unsupported Transport",
	StatusDestinationUnreachable:         "Destination Unreachable",

	StatusInternalServerError:     "Internal Server Error",
	StatusNotImplemented:          "Not Implemented",
	StatusBadGateway:              "Bad Gateway",
	StatusServiceUnavailable:      "Service Unavailable",
	StatusGatewayTimeout:          "Gateway Timeout",
	StatusRTSPVersionNotSupported: "RTSP Version Not Supported",
	StatusOptionNotSupported:      "Option Not Supported",
}
