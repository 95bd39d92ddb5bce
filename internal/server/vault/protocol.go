package vault

// Wire shapes of the Transform secrets engine. Unknown fields in responses
// are ignored.

// encodeRequest is the body of POST /v1/transform/encode/{role}.
type encodeRequest struct {
	Value string `json:"value"`
}

// encodeResponse is the success body of the encode endpoint.
type encodeResponse struct {
	Data *encodeResponseData `json:"data"`
}

type encodeResponseData struct {
	EncodedValue string `json:"encoded_value"`
}

const (
	encodePathFormat = "/v1/transform/encode/%s"
	healthPath       = "/v1/sys/health"

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 1 << 20
)
