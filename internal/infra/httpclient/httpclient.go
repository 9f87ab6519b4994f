// httpclient builds the http.Client shared by the fetcher and the
// resolver adapters.
package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// UserAgent is sent with every outbound request.
const UserAgent = "mkfeed/" + model.Version

// MaxRedirects is the longest redirect chain followed before the last
// response is returned as is.
const MaxRedirects = 10

var transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 60 * time.Second,
	}).DialContext,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 32,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// New returns a client with an overall per-request timeout. A zero
// timeout leaves requests bounded by their context only.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// SetHeaders sets the headers common to every request.
func SetHeaders(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
}
