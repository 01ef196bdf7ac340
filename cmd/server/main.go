package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	emailPkg "advisory/internal/adapters/email"
	web "advisory/internal/adapters/http"
	"advisory/internal/adapters/storage"
	accountStore "advisory/internal/adapters/storage/account"
	appointmentStore "advisory/internal/adapters/storage/appointment"
	auditStore "advisory/internal/adapters/storage/audit"
	outboxStore "advisory/internal/adapters/storage/outbox"
	programmerStore "advisory/internal/adapters/storage/programmer"
	projectStore "advisory/internal/adapters/storage/project"
	"advisory/internal/application/orchestrators"
	"advisory/internal/config"

	"github.com/google/uuid"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	db, cleanup, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer cleanup()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	stores := buildStores(db, cfg.DBDriver)

	// Seed the configured admin credentials. Admin status itself comes from
	// role resolution against the configured email at login.
	seedDeps := orchestrators.SeedAdminDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   uuid.NewString,
		Now:          time.Now,
	}
	if err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.SeedAdminInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, seedDeps); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Outside production an empty roster gets sample profiles so the browse
	// and booking flows are exercisable immediately.
	if !cfg.IsProduction() {
		if err := orchestrators.ExecuteSeedSampleRoster(ctx, orchestrators.SeedRosterDeps{
			ProgrammerStore: stores.ProgrammerStore,
			GenerateID:      uuid.NewString,
		}); err != nil {
			log.Fatalf("failed to seed sample roster: %v", err)
		}
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: ADVISORY_RESEND_KEY is not set; email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set ADVISORY_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, cfg.EmailFrom, cfg.EmailReply)

	// Background worker replaying notification emails that failed to send
	stopRetries := orchestrators.StartOutboxRetryScheduler(ctx, orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: sender,
		FromAddress: cfg.EmailFrom,
	}, orchestrators.DefaultOutboxRetryConfig())
	defer stopRetries()

	mux := web.NewMux("static", stores, web.Options{
		CSRFKeyHex: cfg.CSRFKeyHex,
		Production: cfg.IsProduction(),
		AdminEmail: cfg.AdminEmail,
		JWTSecret:  cfg.JWTSecret,
		BaseURL:    cfg.BaseURL,
	})

	log.Printf("Advisory %s starting on %s (env=%s, driver=%s)", version, cfg.Addr, cfg.Env, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// openDatabase opens the configured backend and runs its migrations.
// The returned cleanup closes the handle (and the pgx pool for postgres).
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	if cfg.DBDriver == config.DriverPostgres {
		db, pool, err := storage.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.MigratePostgres(ctx, db); err != nil {
			db.Close()
			pool.Close()
			return nil, nil, err
		}
		return db, func() { db.Close(); pool.Close() }, nil
	}

	db, err := storage.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.InitSQLite(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// buildStores wires the store set for the active driver.
func buildStores(db *sql.DB, driver string) *web.Stores {
	if driver == config.DriverPostgres {
		return &web.Stores{
			AccountStore:     accountStore.NewPostgresStore(db),
			ProgrammerStore:  programmerStore.NewPostgresStore(db),
			AppointmentStore: appointmentStore.NewPostgresStore(db),
			ProjectStore:     projectStore.NewPostgresStore(db),
			OutboxStore:      outboxStore.NewPostgresStore(db),
			AuditStore:       auditStore.NewPostgresStore(db),
		}
	}
	return &web.Stores{
		AccountStore:     accountStore.NewSQLiteStore(db),
		ProgrammerStore:  programmerStore.NewSQLiteStore(db),
		AppointmentStore: appointmentStore.NewSQLiteStore(db),
		ProjectStore:     projectStore.NewSQLiteStore(db),
		OutboxStore:      outboxStore.NewSQLiteStore(db),
		AuditStore:       auditStore.NewSQLiteStore(db),
	}
}
