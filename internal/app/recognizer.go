package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/emotion-sdk/internal/batch"
	"github.com/samvad-hq/emotion-sdk/internal/config"
	"github.com/samvad-hq/emotion-sdk/internal/credentials"
	"github.com/samvad-hq/emotion-sdk/internal/domain"
	"github.com/samvad-hq/emotion-sdk/internal/logger"
	"github.com/samvad-hq/emotion-sdk/internal/storage"
	"github.com/samvad-hq/emotion-sdk/pkg/emotion"
	"github.com/samvad-hq/emotion-sdk/pkg/publishers"
)

// Recognizer is the command line runtime: one emotion client shared by a
// batch run, with optional result cache and publishers.
type Recognizer struct {
	log    logger.Logger
	creds  *credentials.Manager
	client *emotion.Client
	store  storage.Store
	fanout *publishers.Fanout
	batch  *batch.Service
}

// NewRecognizer builds the runtime from config. When publish is set the
// publishers file must declare at least one enabled sink.
func NewRecognizer(ctx context.Context, cfg *config.Config, log logger.Logger, publish bool) (*Recognizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	r := &Recognizer{log: log}
	ok := false
	defer func() {
		if !ok {
			_ = r.Close()
		}
	}()

	creds, err := OpenCredentials(cfg, log)
	if err != nil {
		return nil, err
	}
	r.creds = creds

	client, err := creds.NewClient(emotion.Config{
		APIRoot:     cfg.APIRoot,
		Credentials: emotion.Credentials{HeaderName: cfg.AuthHeader},
		Timeout:     cfg.HTTPTimeout,
		Logger:      log,
	})
	if err != nil {
		return nil, fmt.Errorf("create emotion client: %w", err)
	}
	r.client = client

	store, err := storage.NewStore(cfg.CacheType, cfg.CachePath, storage.Options{
		TTL:             cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	r.store = store
	log.InfoObj("cache initialized", "cache_config", map[string]any{
		"type":                     cfg.CacheType,
		"path":                     cfg.CachePath,
		"ttl_seconds":              int(cfg.CacheTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.CacheCleanupInterval.Seconds()),
	})

	var pub batch.EventPublisher
	if publish {
		fanout, err := buildFanout(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		r.fanout = fanout
		pub = fanout
	}

	r.batch = batch.NewService(client, pub, store, log, cfg.BatchConcurrency)
	ok = true
	return r, nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers enabled in %s", cfg.PublishersFile)
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	summaries := make([]map[string]string, 0, len(enabled))
	for _, p := range enabled {
		summaries = append(summaries, map[string]string{"id": p.ID, "type": p.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Run recognizes every argument, each a URL or a local file path.
func (r *Recognizer) Run(ctx context.Context, args []string) ([]batch.Result, error) {
	if r == nil || r.batch == nil {
		return nil, fmt.Errorf("recognizer is not initialized")
	}
	sources := make([]domain.Source, 0, len(args))
	for _, a := range args {
		sources = append(sources, domain.ParseSource(a))
	}
	return r.batch.Run(ctx, sources)
}

// Close releases everything NewRecognizer opened, in reverse order.
func (r *Recognizer) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.fanout != nil {
		errs = append(errs, r.fanout.Close())
	}
	if r.store != nil {
		errs = append(errs, r.store.Close())
	}
	if r.client != nil {
		errs = append(errs, r.client.Close())
	}
	if r.creds != nil {
		errs = append(errs, r.creds.Close())
	}
	if err := errors.Join(errs...); err != nil {
		r.log.ErrorObj("recognizer close failed", "error", err.Error())
		return err
	}
	return nil
}
