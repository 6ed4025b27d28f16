package gateway

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"session-service/app/domain"
)

// ProfileMapper manages claim mapping between provider userinfo payloads
// and normalized profiles. Providers disagree on claim names; the mapper
// keeps those differences out of the rest of the service.
type ProfileMapper struct {
	mappingRules map[string]ClaimMapping
	logger       *slog.Logger
	mutex        sync.RWMutex
}

// ClaimMapping defines which userinfo claims feed each profile field.
// Later entries in a list are fallbacks.
type ClaimMapping struct {
	SubjectClaims  []string `json:"subject_claims"`
	EmailClaims    []string `json:"email_claims"`
	NameClaims     []string `json:"name_claims"`
	VerifiedClaims []string `json:"verified_claims"`
}

// NewProfileMapper creates a new profile mapper
func NewProfileMapper(logger *slog.Logger) *ProfileMapper {
	mapper := &ProfileMapper{
		mappingRules: make(map[string]ClaimMapping),
		logger:       logger.With("component", "profile_mapper"),
	}

	mapper.initializeDefaultMappings()
	return mapper
}

// initializeDefaultMappings sets up claim mappings for known providers
func (m *ProfileMapper) initializeDefaultMappings() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.mappingRules["google"] = ClaimMapping{
		SubjectClaims:  []string{"sub", "id"},
		EmailClaims:    []string{"email"},
		NameClaims:     []string{"name"},
		VerifiedClaims: []string{"email_verified", "verified_email"},
	}

	m.mappingRules["github"] = ClaimMapping{
		SubjectClaims: []string{"id", "node_id"},
		EmailClaims:   []string{"email"},
		NameClaims:    []string{"name", "login"},
	}

	m.mappingRules["microsoft"] = ClaimMapping{
		SubjectClaims: []string{"sub", "oid"},
		EmailClaims:   []string{"email", "preferred_username"},
		NameClaims:    []string{"name"},
	}
}

// RegisterMapping adds or replaces the claim mapping for a provider.
func (m *ProfileMapper) RegisterMapping(provider string, mapping ClaimMapping) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.mappingRules[provider] = mapping
}

// MapProfile normalizes a raw userinfo payload into a ProviderProfile.
// Subject and email are mandatory; a payload missing either is rejected
// so a half-resolved identity can never reach the identity store.
func (m *ProfileMapper) MapProfile(provider string, claims map[string]interface{}) (*domain.ProviderProfile, error) {
	m.mutex.RLock()
	mapping, ok := m.mappingRules[provider]
	m.mutex.RUnlock()

	if !ok {
		// unknown provider: fall back to OIDC standard claims
		mapping = ClaimMapping{
			SubjectClaims:  []string{"sub"},
			EmailClaims:    []string{"email"},
			NameClaims:     []string{"name"},
			VerifiedClaims: []string{"email_verified"},
		}
		m.logger.Warn("no claim mapping registered, using OIDC defaults", "provider", provider)
	}

	subject := firstStringClaim(claims, mapping.SubjectClaims)
	if subject == "" {
		return nil, fmt.Errorf("userinfo missing subject claim (tried %s)", strings.Join(mapping.SubjectClaims, ", "))
	}

	email := strings.ToLower(strings.TrimSpace(firstStringClaim(claims, mapping.EmailClaims)))
	if email == "" {
		return nil, fmt.Errorf("userinfo missing email claim (tried %s)", strings.Join(mapping.EmailClaims, ", "))
	}

	name := strings.TrimSpace(firstStringClaim(claims, mapping.NameClaims))
	if name == "" {
		// fall back to the mailbox part of the email
		name = email[:strings.Index(email, "@")]
	}

	return &domain.ProviderProfile{
		Provider:       provider,
		ProviderUserID: subject,
		Email:          email,
		Name:           name,
		EmailVerified:  firstBoolClaim(claims, mapping.VerifiedClaims),
	}, nil
}

// firstStringClaim returns the first non-empty claim from the candidate
// list. Numeric claims (GitHub sends numeric ids) are rendered as
// decimal strings.
func firstStringClaim(claims map[string]interface{}, candidates []string) string {
	for _, key := range candidates {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strings.TrimSuffix(fmt.Sprintf("%.0f", v), ".0")
		}
	}
	return ""
}

func firstBoolClaim(claims map[string]interface{}, candidates []string) bool {
	for _, key := range candidates {
		if v, ok := claims[key].(bool); ok {
			return v
		}
	}
	return false
}
