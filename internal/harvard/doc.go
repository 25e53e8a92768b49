// Package harvard provides an HTTP client for the Harvard Art Museums API.
//
// # Overview
//
// The package has two halves:
//
//   - types.go, decode.go: the response model and its strict decoder
//   - client.go, endpoint.go, errors.go: request construction, transport and
//     the error taxonomy
//
// # Client Usage
//
//	client, err := harvard.NewClient(harvard.DefaultBaseURL, os.Getenv("API_KEY"))
//	if err != nil {
//		return err
//	}
//	page, err := client.FetchPage(ctx, 1)
//
// # Requests
//
// Every page request is a GET against /object with a fixed query
// (fields=*, sort=random, size=25, q=*:*, hasimage=1, apikey) plus the page
// number. Endpoints are registered per ResponseKind when the client is built,
// so a request for a kind nobody registered fails with ErrUnsupportedResponse
// before any network traffic.
//
// Each in-flight request gets a UUID that lives in a mutex-guarded set until
// the call returns. The set is diagnostic only: concurrent calls for the same
// page are neither blocked nor merged.
//
// A gobreaker circuit breaker wraps the transport. Network failures and 5xx
// responses count against it; 4xx responses and decoding failures do not.
//
// # Decoding
//
// DecodeObjectPage decodes into wire structs whose required fields are
// pointers, then validates and copies into the domain types. The only field
// renamed on the way is the person "prefix", exposed as PersonPrefix.
//
// # Errors
//
// FetchPage failures are *RequestError values wrapping exactly one of
// ErrUnsupportedResponse, *TransportError, *ServerError or *DecodingError.
// Use errors.As (or IsTransport/IsServer/IsDecoding) to branch on the kind.
package harvard
