package http

// Generic HTTP / JSON strings
const (
	HTTPErrorInvalidJSONText  = "invalid JSON"
	HTTPErrorForbiddenText    = "forbidden"
	HTTPErrorForbiddenHost    = "forbidden host"
	HTTPErrorUnknownTxText    = "transaction not tracked"
	HTTPErrorInvalidTxHash    = "invalid transaction hash"
	HTTPErrorMissingFileText  = "missing multipart field \"file\""
	HTTPErrorNotPDFText       = "only PDF documents are accepted"
	HTTPErrorTooLargeText     = "document exceeds 10 MiB"
	HTTPErrorMissingChainText = "missing chainId"
)

// Common JSON keys
const (
	JSONKeyError = "error"
	JSONKeyField = "field"
	JSONKeyCode  = "code"
)

// Request id propagation
const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
)

// Document upload limits
const (
	MaxDocumentBytes = 10 << 20

	// multipart framing allowance on top of the document itself
	maxUploadOverheadBytes = 1 << 20

	MimePDF = "application/pdf"
)
