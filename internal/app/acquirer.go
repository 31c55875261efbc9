package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/bigstock-client/internal/config"
	"github.com/samvad-hq/bigstock-client/internal/logger"
	"github.com/samvad-hq/bigstock-client/internal/storage"
	"github.com/samvad-hq/bigstock-client/pkg/bigstock"
	"github.com/samvad-hq/bigstock-client/pkg/publishers"
)

// API is the slice of the Bigstock client the acquirer drives.
type API interface {
	GetPurchase(ctx context.Context, id, sizeCode, typ string) bigstock.Result
	Download(ctx context.Context, downloadID string) bigstock.Result
	Mode() bigstock.Mode
}

// EventPublisher publishes download events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Request names one rendition to acquire.
type Request struct {
	ID       string
	SizeCode string
	Type     string
	Force    bool
}

// Outcome describes what Acquire did.
type Outcome struct {
	Key         string `json:"key" yaml:"key"`
	Path        string `json:"path" yaml:"path"`
	DownloadID  string `json:"download_id,omitempty" yaml:"download_id,omitempty"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Bytes       int    `json:"bytes" yaml:"bytes"`
	Skipped     bool   `json:"skipped" yaml:"skipped"`
	Published   int    `json:"published" yaml:"published"`
}

// ErrNoDownloadID is returned when a purchase succeeds without a download id.
var ErrNoDownloadID = errors.New("purchase response carries no download_id")

// Acquirer purchases assets, saves the files and announces them.
type Acquirer struct {
	api       API
	store     storage.Store
	publisher EventPublisher
	closers   []func() error
	outputDir string
	log       logger.Logger
}

// NewAcquirer builds an acquirer from config: the download ledger and, when a
// publishers file is configured, the event fanout.
func NewAcquirer(ctx context.Context, cfg *config.Config, api API, log logger.Logger) (*Acquirer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if api == nil {
		return nil, fmt.Errorf("api client must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	storeOpts := storage.Options{
		RecordTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.DebugObj("storage initialized", "storage_config", map[string]any{
		"type":               cfg.StorageType,
		"path":               cfg.BBoltPath,
		"record_ttl_seconds": int(cfg.StorageTTL.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	a := newAcquirer(api, store, fanout, cfg.OutputDir, log)
	a.closers = append(a.closers, fanout.Close, store.Close)
	return a, nil
}

func newAcquirer(api API, store storage.Store, pub EventPublisher, outputDir string, log logger.Logger) *Acquirer {
	if log == nil {
		log = &logger.NopLogger{}
	}
	if store == nil {
		store = storage.Disabled()
	}
	if outputDir == "" {
		outputDir = "."
	}
	return &Acquirer{
		api:       api,
		store:     store,
		publisher: pub,
		outputDir: outputDir,
		log:       log,
	}
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubs)

	declared := reg.All()
	summaries := make([]map[string]any, 0, len(declared))
	for _, pubCfg := range declared {
		summaries = append(summaries, map[string]any{
			"id":          pubCfg.ID,
			"type":        pubCfg.Type,
			"enabled":     pubCfg.EnabledValue(),
			"asset_types": pubCfg.AssetTypes,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"declared":   len(declared),
		"active":     fanout.Size(),
		"publishers": summaries,
	})
	return fanout, nil
}

// Acquire purchases req, downloads the file into the output directory, records
// it in the ledger and publishes an event. Renditions already in the ledger
// are skipped unless req.Force is set.
func (a *Acquirer) Acquire(ctx context.Context, req Request) (Outcome, error) {
	if a == nil || a.api == nil {
		return Outcome{}, fmt.Errorf("acquirer is not initialized")
	}
	if req.Type == "" {
		req.Type = bigstock.TypeImage
	}
	key := storage.DownloadKey(req.Type, req.ID, req.SizeCode)
	start := time.Now()

	if !req.Force {
		rec, seen, err := a.store.SeenDownload(key)
		if err != nil {
			return Outcome{}, fmt.Errorf("check ledger: %w", err)
		}
		if seen {
			a.log.InfoObj("download already in ledger", "acquire_skip", map[string]any{
				"key":  key,
				"path": rec.Path,
			})
			return Outcome{Key: key, Path: rec.Path, Skipped: true}, nil
		}
	}

	downloadID, err := a.purchase(ctx, req)
	if err != nil {
		return Outcome{}, err
	}

	res := a.api.Download(ctx, downloadID)
	if err := apiFailure(res); err != nil {
		return Outcome{}, fmt.Errorf("download %s: %w", downloadID, err)
	}
	if res.Kind != bigstock.KindRaw {
		return Outcome{}, fmt.Errorf("download %s: expected file payload, got %s response", downloadID, res.Kind)
	}

	contentType := ""
	if res.Response != nil {
		contentType = res.Response.ContentType()
	}
	path, err := saveFile(a.outputDir, fileStem(req), contentType, res.Raw)
	if err != nil {
		return Outcome{}, err
	}
	if err := a.store.MarkDownload(key, path); err != nil {
		return Outcome{}, fmt.Errorf("record download: %w", err)
	}

	out := Outcome{
		Key:         key,
		Path:        path,
		DownloadID:  downloadID,
		ContentType: contentType,
		Bytes:       len(res.Raw),
	}
	out.Published = a.publish(ctx, req, out)

	a.log.InfoObj("asset acquired", "acquire_result", map[string]any{
		"key":        key,
		"path":       path,
		"bytes":      out.Bytes,
		"published":  out.Published,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return out, nil
}

// purchase buys the rendition and returns its download id.
func (a *Acquirer) purchase(ctx context.Context, req Request) (string, error) {
	res := a.api.GetPurchase(ctx, req.ID, req.SizeCode, req.Type)
	if err := apiFailure(res); err != nil {
		return "", fmt.Errorf("purchase %s %s: %w", req.Type, req.ID, err)
	}

	var body purchaseResponse
	if err := res.Decode(&body); err != nil {
		return "", fmt.Errorf("purchase %s %s: %w", req.Type, req.ID, err)
	}
	if body.Data.DownloadID == "" {
		return "", fmt.Errorf("purchase %s %s: %w", req.Type, req.ID, ErrNoDownloadID)
	}
	return string(body.Data.DownloadID), nil
}

// publish announces the download. Sink failures are logged, not returned.
func (a *Acquirer) publish(ctx context.Context, req Request, out Outcome) int {
	if a.publisher == nil {
		return 0
	}
	evt := publishers.NewEvent(req.Type, req.ID, req.SizeCode, out.DownloadID)
	evt.Path = out.Path
	evt.ContentType = out.ContentType
	evt.Bytes = out.Bytes
	evt.Mode = string(a.api.Mode())

	n, err := a.publisher.Publish(ctx, evt)
	if err != nil {
		a.log.WarnObj("download event publish failed", "publish_error", map[string]any{
			"key":       out.Key,
			"delivered": n,
			"error":     err.Error(),
		})
	}
	return n
}

// Close releases the ledger and publishers.
func (a *Acquirer) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
