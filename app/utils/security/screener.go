package security

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
)

// ThreatLevel grades how aggressively an IP has been probing the service.
type ThreatLevel int

const (
	ThreatLevelLow ThreatLevel = iota
	ThreatLevelMedium
	ThreatLevelHigh
	ThreatLevelCritical
)

// Screener tracks suspicious request patterns per client IP and blocks
// sources that keep probing. It inspects paths and payloads for injection
// attempts and counts credential failures reported by the login flow.
type Screener struct {
	logger         *slog.Logger
	alertThreshold int

	mu      sync.RWMutex
	sources map[string]*sourceActivity
}

type sourceActivity struct {
	attempts    int
	lastAttempt time.Time
	patterns    []string
	threatLevel ThreatLevel
}

var (
	sqlInjectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)union\s+select`),
		regexp.MustCompile(`(?i)or\s+1\s*=\s*1`),
		regexp.MustCompile(`(?i)drop\s+table`),
		regexp.MustCompile(`(?i)'.*or.*'.*'`),
	}
	xssPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script[^>]*>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)<iframe[^>]*>`),
	}
	traversalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\.\./`),
		regexp.MustCompile(`\.\.\\`),
		regexp.MustCompile(`%2e%2e%2f`),
	}
	scannerUserAgents = []*regexp.Regexp{
		regexp.MustCompile(`(?i)sqlmap`),
		regexp.MustCompile(`(?i)nikto`),
		regexp.MustCompile(`(?i)nmap`),
	}
)

func NewScreener(logger *slog.Logger) *Screener {
	s := &Screener{
		logger:         logger.With("component", "screener"),
		alertThreshold: 10,
		sources:        make(map[string]*sourceActivity),
	}

	go s.cleanupLoop()
	return s
}

// Inspect decides whether a request should proceed. It returns false when
// the request body or path matches a known attack signature, or when the
// source has already been escalated to a blocking threat level.
func (s *Screener) Inspect(ip, userAgent, path, body string) bool {
	if s.IsBlocked(ip) {
		return false
	}

	var patterns []string
	if matchesAny(sqlInjectionPatterns, body) {
		patterns = append(patterns, "sql_injection")
	}
	if matchesAny(xssPatterns, body) {
		patterns = append(patterns, "xss")
	}
	if matchesAny(traversalPatterns, path) {
		patterns = append(patterns, "path_traversal")
	}
	if matchesAny(scannerUserAgents, userAgent) {
		patterns = append(patterns, "scanner_ua")
	}

	if len(patterns) == 0 {
		return true
	}

	s.record(ip, patterns)
	return false
}

// RecordFailure counts a failed credential check against the source IP.
// Enough failures in a short window escalate the threat level until
// Inspect starts rejecting the source outright.
func (s *Screener) RecordFailure(ip string) {
	s.record(ip, []string{"credential_failure"})
}

func (s *Screener) record(ip string, patterns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.sources[ip]
	if !ok {
		activity = &sourceActivity{}
		s.sources[ip] = activity
	}

	activity.attempts++
	activity.lastAttempt = time.Now()
	activity.patterns = append(activity.patterns, patterns...)

	switch {
	case activity.attempts > 50:
		activity.threatLevel = ThreatLevelCritical
	case activity.attempts > 20:
		activity.threatLevel = ThreatLevelHigh
	case activity.attempts > s.alertThreshold:
		activity.threatLevel = ThreatLevelMedium
	}

	if activity.threatLevel >= ThreatLevelMedium {
		s.logger.Error("suspicious source escalated",
			"ip", ip,
			"attempts", activity.attempts,
			"threat_level", activity.threatLevel,
			"patterns", strings.Join(activity.patterns, ","))
	}
}

// ThreatLevelFor reports the current grade for an IP.
func (s *Screener) ThreatLevelFor(ip string) ThreatLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activity, ok := s.sources[ip]
	if !ok {
		return ThreatLevelLow
	}
	return activity.threatLevel
}

// IsBlocked reports whether the IP has crossed the blocking threshold.
func (s *Screener) IsBlocked(ip string) bool {
	return s.ThreatLevelFor(ip) >= ThreatLevelHigh
}

func (s *Screener) cleanupLoop() {
	for {
		time.Sleep(30 * time.Minute)

		s.mu.Lock()
		for ip, activity := range s.sources {
			if time.Since(activity.lastAttempt) > time.Hour {
				delete(s.sources, ip)
			}
		}
		s.mu.Unlock()
	}
}

func matchesAny(patterns []*regexp.Regexp, input string) bool {
	for _, p := range patterns {
		if p.MatchString(input) {
			return true
		}
	}
	return false
}
