package clock

import (
	"log"
	"time"

	"github.com/beevik/ntp"

	"github.com/sweeney/moisture-node/internal/logic"
)

// DefaultServer is queried when no NTP server is configured.
const DefaultServer = "pool.ntp.org"

// NTPSource queries an NTP server once per call with a bounded timeout.
type NTPSource struct {
	Server  string
	Timeout time.Duration
}

// NewNTPSource creates a source for the given server. Empty server or zero
// timeout fall back to sensible values.
func NewNTPSource(server string, timeout time.Duration) *NTPSource {
	if server == "" {
		server = DefaultServer
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NTPSource{Server: server, Timeout: timeout}
}

// Now performs a single bounded NTP query. Failures and implausible results
// are logged and reported as unavailable; the caller falls back.
func (s *NTPSource) Now() (int64, bool) {
	resp, err := ntp.QueryWithOptions(s.Server, ntp.QueryOptions{Timeout: s.Timeout})
	if err != nil {
		log.Printf("ntp: query %s: %v", s.Server, err)
		return 0, false
	}
	if err := resp.Validate(); err != nil {
		log.Printf("ntp: invalid response from %s: %v", s.Server, err)
		return 0, false
	}

	epoch := resp.Time.Unix()
	if epoch < logic.EpochSanityMin {
		log.Printf("ntp: implausible time %d from %s", epoch, s.Server)
		return 0, false
	}
	return epoch, true
}
