// Package earthdata handles NASA Earthdata Login (URS) authentication for
// requests to Earthdata-protected hosts such as the NSIDC data pool.
package earthdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/bgentry/go-netrc/netrc"
)

// DefaultHost is the NASA Earthdata Login (URS) hostname.
const DefaultHost = "urs.earthdata.nasa.gov"

// Credentials are a NASA Earthdata Login username/password pair.
type Credentials struct {
	Username string
	Password string
}

// ResolveCredentials resolves Earthdata credentials in order of precedence:
// explicit values, the EARTHDATA_USERNAME/EARTHDATA_PASSWORD environment
// variables, then the machine entry for host in the given .netrc file.
func ResolveCredentials(username, password, netrcPath, host string) (Credentials, error) {
	if host == "" {
		host = DefaultHost
	}
	if username == "" {
		username = os.Getenv("EARTHDATA_USERNAME")
	}
	if password == "" {
		password = os.Getenv("EARTHDATA_PASSWORD")
	}

	if (username == "" || password == "") && netrcPath != "" {
		if _, err := os.Stat(netrcPath); err == nil {
			rc, err := netrc.ParseFile(netrcPath)
			if err != nil {
				return Credentials{}, fmt.Errorf("parse %s: %w", netrcPath, err)
			}
			if m := rc.FindMachine(host); m != nil {
				if username == "" {
					username = m.Login
				}
				if password == "" {
					password = m.Password
				}
			}
		}
	}

	if username == "" || password == "" {
		return Credentials{}, fmt.Errorf("no Earthdata credentials for %s: set --user/--password, "+
			"EARTHDATA_USERNAME/EARTHDATA_PASSWORD, or a machine entry in .netrc", host)
	}
	return Credentials{Username: username, Password: password}, nil
}

// ursTransport injects Basic auth into requests bound for the URS host.
// Earthdata-protected servers redirect to URS for authentication and back;
// the credentials must only ever be presented to URS itself.
type ursTransport struct {
	base  http.RoundTripper
	creds Credentials
	host  string
}

func (t *ursTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host == t.host {
		req = req.Clone(req.Context())
		req.SetBasicAuth(t.creds.Username, t.creds.Password)
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient builds an HTTP client that follows the Earthdata login
// redirect dance: a cookie jar retains the URS session cookie so later
// requests skip the login round trip, and Basic auth is attached only when a
// redirect lands on the URS host.
func NewHTTPClient(creds Credentials, host string, timeout time.Duration) (*http.Client, error) {
	if host == "" {
		host = DefaultHost
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
		Transport: &ursTransport{
			base: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
			creds: creds,
			host:  host,
		},
	}, nil
}

// CheckConnection verifies that the remote host is reachable before a run.
func CheckConnection(ctx context.Context, client *http.Client, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("check internet connection to %s: %w", rawURL, err)
	}
	resp.Body.Close()
	return nil
}
