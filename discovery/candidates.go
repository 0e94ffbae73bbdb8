package discovery

import "fmt"

const (
	// DefaultPort is the port the control host listens on
	DefaultPort = 8080

	firstHost = 1
	lastHost  = 254
)

// DefaultPrefixes are the /24 networks searched, most common first
var DefaultPrefixes = []string{"192.168.1", "192.168.0", "10.0.0"}

// CandidateCount is the length of the sequence returned by Generate
var CandidateCount = len(DefaultPrefixes) * (lastHost - firstHost + 1)

// Generate returns the candidate sequence: every host 1..254 of each prefix
// in DefaultPrefixes order, ascending within a prefix. Each call returns a
// fresh slice.
func Generate() []Candidate {
	candidates := make([]Candidate, 0, CandidateCount)
	for _, prefix := range DefaultPrefixes {
		for host := firstHost; host <= lastHost; host++ {
			ip := fmt.Sprintf("%s.%d", prefix, host)
			candidates = append(candidates, Candidate{
				Index:   len(candidates),
				Host:    ip,
				Address: fmt.Sprintf("http://%s:%d", ip, DefaultPort),
			})
		}
	}
	return candidates
}
