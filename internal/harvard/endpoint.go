package harvard

import (
	"net/url"
	"strconv"
)

// ResponseKind identifies the shape of payload an endpoint returns.
type ResponseKind int

const (
	// KindObjectPage is a paginated /object listing decoded into ObjectPage.
	KindObjectPage ResponseKind = iota + 1
)

func (k ResponseKind) String() string {
	switch k {
	case KindObjectPage:
		return "object-page"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

const (
	// PageSize is the fixed number of records requested per page.
	PageSize = 25

	objectPath = "/object"
)

// Endpoint describes one GET route and the query parameters sent with every
// request to it.
type Endpoint struct {
	Kind  ResponseKind
	Path  string
	Query url.Values
}

// ObjectEndpoint returns the /object endpoint with the fixed browse query:
// every field, random order, pages of 25, match-all, images only.
func ObjectEndpoint(apiKey string) Endpoint {
	q := url.Values{}
	q.Set("fields", "*")
	q.Set("sort", "random")
	q.Set("size", strconv.Itoa(PageSize))
	q.Set("q", "*:*")
	q.Set("hasimage", "1")
	q.Set("apikey", apiKey)
	return Endpoint{Kind: KindObjectPage, Path: objectPath, Query: q}
}

// registry resolves endpoints by response kind. It is filled once when the
// client is built and only read afterwards.
type registry map[ResponseKind]Endpoint

func newRegistry(endpoints []Endpoint) registry {
	reg := make(registry, len(endpoints))
	for _, ep := range endpoints {
		if _, exists := reg[ep.Kind]; exists {
			continue // first registration wins
		}
		reg[ep.Kind] = ep
	}
	return reg
}

func (r registry) lookup(kind ResponseKind) (Endpoint, error) {
	ep, ok := r[kind]
	if !ok {
		return Endpoint{}, ErrUnsupportedResponse
	}
	return ep, nil
}
