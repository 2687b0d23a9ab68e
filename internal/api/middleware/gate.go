package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leadsite/marketing-api/internal/api/metrics"
	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
	"github.com/leadsite/marketing-api/internal/pkg/token"
)

// IdentityKey is the echo context key holding the *domain.TokenPayload of a
// token-authenticated request.
const IdentityKey = "identity"

// APIKeyHeader carries the pre-shared operational key.
const APIKeyHeader = "x-api-key"

// Outcome is the result of a gate decision.
type Outcome int

const (
	Allow Outcome = iota
	Unauthenticated
	InvalidToken
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case InvalidToken:
		return "invalid_token"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Request is what the gate sees of an inbound request.
type Request struct {
	Method string
	Path   string
	Header http.Header
}

// Decision is the gate's verdict. Identity is set when a token was verified.
type Decision struct {
	Outcome  Outcome
	Rule     string
	Identity *domain.TokenPayload
}

// Rule pairs a predicate with the policy applied when it matches.
type Rule struct {
	Name   string
	Match  func(Request) bool
	Policy func(Request) Decision
}

// Gate evaluates its rules top to bottom; the first match decides.
// It never touches the store: the role comes from the token.
type Gate struct {
	rules []Rule
}

// NewGate builds the access rules. An empty apiKey disables the bypass.
func NewGate(tokens ports.TokenIssuer, apiKey string) *Gate {
	allow := func(Request) Decision { return Decision{Outcome: Allow} }

	return &Gate{rules: []Rule{
		{Name: "public", Match: isPublic, Policy: allow},
		{Name: "api_key", Match: apiKeyMatches(apiKey), Policy: allow},
		{Name: "admin_surface", Match: isAdminSurface, Policy: requireToken(tokens, domain.RoleAdmin)},
		{Name: "authenticated", Match: func(Request) bool { return true }, Policy: requireToken(tokens, "")},
	}}
}

// Decide runs the rules against r.
func (g *Gate) Decide(r Request) Decision {
	for _, rule := range g.rules {
		if !rule.Match(r) {
			continue
		}
		d := rule.Policy(r)
		d.Rule = rule.Name
		return d
	}
	return Decision{Outcome: Unauthenticated}
}

// Middleware rejects requests the gate does not allow and stores the
// verified identity under IdentityKey.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			d := g.Decide(Request{Method: req.Method, Path: req.URL.Path, Header: req.Header})
			metrics.GateDecisionsTotal.WithLabelValues(d.Rule, d.Outcome.String()).Inc()

			switch d.Outcome {
			case Allow:
				if d.Identity != nil {
					c.Set(IdentityKey, d.Identity)
				}
				return next(c)
			case InvalidToken:
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			case Forbidden:
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
		}
	}
}

// Identity returns the verified token payload stored by the gate, if any.
func Identity(c echo.Context) (*domain.TokenPayload, bool) {
	p, ok := c.Get(IdentityKey).(*domain.TokenPayload)
	return p, ok
}

func isPublic(r Request) bool {
	switch {
	case r.Path == "/api/health", r.Path == "/api/health/ready":
		return true
	case strings.HasPrefix(r.Path, "/api/auth"):
		return true
	case r.Path == "/api/contacts" && r.Method == http.MethodPost:
		return true
	}
	return false
}

func isAdminSurface(r Request) bool {
	return strings.HasPrefix(r.Path, "/api/contacts") || strings.HasPrefix(r.Path, "/dashboard")
}

func apiKeyMatches(key string) func(Request) bool {
	return func(r Request) bool {
		if key == "" {
			return false
		}
		got := r.Header.Get(APIKeyHeader)
		return subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1
	}
}

// requireToken verifies the bearer token and, when role is set, the token role.
func requireToken(tokens ports.TokenIssuer, role string) func(Request) Decision {
	return func(r Request) Decision {
		raw := token.BearerToken(r.Header.Get(echo.HeaderAuthorization))
		if raw == "" {
			return Decision{Outcome: Unauthenticated}
		}
		payload, ok := tokens.Verify(raw)
		if !ok {
			return Decision{Outcome: InvalidToken}
		}
		if role != "" && payload.Role != role {
			return Decision{Outcome: Forbidden, Identity: &payload}
		}
		return Decision{Outcome: Allow, Identity: &payload}
	}
}
