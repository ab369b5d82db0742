package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"refugio-adopciones/internal/adapters/auth/gotrue"
	"refugio-adopciones/internal/adapters/auth/jwtverifier"
	blobmem "refugio-adopciones/internal/adapters/blob/memory"
	"refugio-adopciones/internal/adapters/blob/miniostore"
	"refugio-adopciones/internal/adapters/email/resend"
	"refugio-adopciones/internal/adapters/requests/amqprec"
	"refugio-adopciones/internal/adapters/requests/redisrec"
	pg "refugio-adopciones/internal/adapters/storage/postgres"
	"refugio-adopciones/internal/config"
	"refugio-adopciones/internal/domain/adoption"
	"refugio-adopciones/internal/domain/dogs"
	"refugio-adopciones/internal/platform/logger"
	"refugio-adopciones/internal/ports/auth"
	"refugio-adopciones/internal/ports/blobstore"
)

const upstreamTimeout = 10 * time.Second

// deps son los adapters elegidos según la config. Close libera conexiones.
type deps struct {
	DB       *sql.DB
	Blobs    blobstore.Store
	Verifier auth.AuthVerifier
	Sender   adoption.Sender
	Recorder adoption.Recorder

	closers []func() error
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i]()
	}
}

func buildDeps(ctx context.Context, cfg *config.Config, log logger.Logger) (*deps, error) {
	d := &deps{}
	ok := false
	defer func() {
		if !ok {
			d.Close()
		}
	}()

	if cfg.DBDSN != "" {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.DB = db
		d.closers = append(d.closers, db.Close)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	blobs, err := buildBlobs(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	d.Blobs = blobs

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return nil, err
	}
	d.Verifier = verifier
	if verifier == nil {
		log.Warn("AUTH_MODE=dev: X-Debug-User-ID is trusted without verification", map[string]any{
			"admin_ids": len(cfg.Auth.AdminUserIDs),
		})
	}

	if err := d.buildNotifier(ctx, cfg, log); err != nil {
		return nil, err
	}

	ok = true
	return d, nil
}

// openDB abre Postgres, aplica el schema y da de alta ADMIN_USER_IDS.
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pg.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	roles := pg.NewRolesRepo(db)
	for _, id := range cfg.Auth.AdminUserIDs {
		if err := roles.SetRole(ctx, id, auth.RoleAdmin); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed admin role: %w", err)
		}
	}
	return db, nil
}

func buildBlobs(ctx context.Context, cfg *config.Config, log logger.Logger) (blobstore.Store, error) {
	if cfg.Blob.Endpoint == "" {
		log.Warn("MINIO_ENDPOINT not set, images are kept in memory", nil)
		return blobmem.New(cfg.Blob.PublicBaseURL), nil
	}
	store, err := miniostore.New(miniostore.Config{
		Endpoint:      cfg.Blob.Endpoint,
		AccessKey:     cfg.Blob.AccessKey,
		SecretKey:     cfg.Blob.SecretKey,
		UseSSL:        cfg.Blob.UseSSL,
		Bucket:        cfg.Blob.Bucket,
		PublicBaseURL: cfg.Blob.PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket %q: %w", cfg.Blob.Bucket, err)
	}
	return store, nil
}

func buildVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		return jwtverifier.New(cfg.Auth.JWTSecret), nil
	case config.AuthModeGoTrue:
		client, err := gotrue.NewClient(gotrue.Config{
			BaseURL: cfg.Auth.GoTrueURL,
			APIKey:  cfg.Auth.GoTrueAPIKey,
			Timeout: upstreamTimeout,
		})
		if err != nil {
			return nil, err
		}
		return gotrue.NewVerifier(client), nil
	default:
		// modo dev: X-Debug-User-ID
		return nil, nil
	}
}

func (d *deps) buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if cfg.Notifier.Mode == config.NotifierModeEmail {
		sender, err := resend.NewClient(resend.Config{
			BaseURL: cfg.Notifier.ResendBaseURL,
			APIKey:  cfg.Notifier.ResendAPIKey,
			From:    cfg.Notifier.FromAddress,
			Timeout: upstreamTimeout,
		})
		if err != nil {
			return err
		}
		d.Sender = sender
		return nil
	}

	switch cfg.Notifier.Recorder {
	case config.RecorderRedis:
		client, err := redisrec.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		d.closers = append(d.closers, client.Close)
		d.Recorder = redisrec.New(client, cfg.Redis.Key)
	case config.RecorderAMQP:
		conn, ch, err := amqprec.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		d.closers = append(d.closers, conn.Close, ch.Close)
		d.Recorder = amqprec.New(ch, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
	default:
		d.Recorder = adoption.NewLogRecorder(log.With(map[string]any{"module": "adoption"}))
	}
	return nil
}

func runMigrate(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if cfg.DBDSN == "" {
		return errors.New("migrate: DB_DSN is required")
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("schema applied", nil)
	return nil
}

// runSeed carga los perros de ejemplo. Sin DB_DSN no tiene sentido (in-memory se pierde).
func runSeed(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if cfg.DBDSN == "" {
		return errors.New("seed: DB_DSN is required")
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	dogRepo := pg.NewDogsRepo(db)
	svc := dogs.NewService(dogRepo, pg.NewImagesRepo(db), blobmem.New(""), dogs.WithLogger(log))
	n, err := svc.Seed(ctx)
	if err != nil {
		return err
	}
	log.Info("seed finished", map[string]any{"created": n})
	return nil
}
