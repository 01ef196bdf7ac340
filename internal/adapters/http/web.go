package web

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"advisory/internal/adapters/email"
	"advisory/internal/adapters/http/middleware"
	accountStore "advisory/internal/adapters/storage/account"
	appointmentStore "advisory/internal/adapters/storage/appointment"
	auditStore "advisory/internal/adapters/storage/audit"
	outboxStore "advisory/internal/adapters/storage/outbox"
	programmerStore "advisory/internal/adapters/storage/programmer"
	projectStore "advisory/internal/adapters/storage/project"
	"advisory/internal/domain/authz"
	domainProgrammer "advisory/internal/domain/programmer"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	ProgrammerStore  programmerStore.Store
	AppointmentStore appointmentStore.Store
	ProjectStore     projectStore.Store
	OutboxStore      outboxStore.Store
	AuditStore       auditStore.Store
}

// Options carries the runtime settings the HTTP layer needs.
type Options struct {
	CSRFKeyHex string // 32 bytes, hex-encoded; generated per startup when empty
	Production bool
	AdminEmail string
	JWTSecret  string
	BaseURL    string // external URL used in emailed links
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// Auth configuration (set by NewMux from Options)
var adminEmail string
var jwtSecret []byte
var baseURL string

// staticDir holds the directory the page handlers serve files from.
var staticDir string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// rosterFinder adapts the programmer store to the role resolution policy.
// A missing profile is not an error: it just means the email is a student.
type rosterFinder struct {
	store programmerStore.Store
}

func (f rosterFinder) FindByEmail(ctx context.Context, email string) (domainProgrammer.Programmer, bool, error) {
	p, err := f.store.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domainProgrammer.Programmer{}, false, nil
	}
	if err != nil {
		return domainProgrammer.Programmer{}, false, err
	}
	return p, true, nil
}

// roleResolver builds the login-time role resolver from the wired stores.
func roleResolver() *authz.Resolver {
	return &authz.Resolver{
		AdminEmail: adminEmail,
		Finder:     rosterFinder{store: stores.ProgrammerStore},
	}
}

// loadCSRFKey decodes the configured CSRF secret (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey(opts Options) []byte {
	if opts.CSRFKeyHex != "" {
		key, err := hex.DecodeString(opts.CSRFKeyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("ADVISORY_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if opts.Production {
		log.Fatal("ADVISORY_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set ADVISORY_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(dir string, s *Stores, opts Options) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	staticDir = dir
	adminEmail = opts.AdminEmail
	jwtSecret = []byte(opts.JWTSecret)
	baseURL = opts.BaseURL
	middleware.SecureCookies = opts.Production

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := loadCSRFKey(opts)

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Metrics -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, opts.Production),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Metrics,
	)
}
