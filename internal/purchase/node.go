package purchase

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	eos "github.com/eoscanada/eos-go"
)

// NodeClient is an eos-go API client that also keeps the raw body of the last
// failed node response. eos-go only surfaces what fits eos.APIError.
type NodeClient struct {
	*eos.API
	recorder *bodyRecorder
}

func NewNodeClient(endpoint string) *NodeClient {
	api := eos.New(endpoint)

	next := http.RoundTripper(http.DefaultTransport)
	if api.HttpClient.Transport != nil {
		next = api.HttpClient.Transport
	}
	recorder := &bodyRecorder{next: next}
	api.HttpClient.Transport = recorder

	return &NodeClient{API: api, recorder: recorder}
}

// ErrorBody returns the body of the last non-2xx response and forgets it.
func (c *NodeClient) ErrorBody() []byte {
	return c.recorder.take()
}

type bodyRecorder struct {
	next http.RoundTripper

	mu   sync.Mutex
	last []byte
}

func (r *bodyRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if err != nil || resp.StatusCode < 300 {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	r.mu.Lock()
	r.last = body
	r.mu.Unlock()
	return resp, nil
}

func (r *bodyRecorder) take() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	body := r.last
	r.last = nil
	return body
}
