// Package assets publishes the static build output to the bucket CloudFront serves it from.
package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"path"
	"slices"
	"time"

	"github.com/isometry/cloudfront-edge-app/internal/edge"
	"github.com/isometry/cloudfront-edge-app/internal/helpers"
	"github.com/pkg/errors"
)

const defaultContentType = "application/octet-stream"

// Store is the object storage the assets are published to.
type Store interface {
	PutObject(ctx context.Context, key string, body io.Reader, contentType, cacheControl string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	DeleteKeys(ctx context.Context, keys []string) error
}

// Report lists the keys touched by a deployment.
type Report struct {
	Uploaded []string `json:"uploaded"`
	Deleted  []string `json:"deleted,omitempty"`
}

// Option configures a Deployer.
type Option func(*Deployer)

// Deployer uploads a directory tree to a Store.
type Deployer struct {
	store  Store
	logger *slog.Logger
	prefix string
	prune  bool
	maxAge time.Duration
}

// NewDeployer creates a Deployer publishing to store.
func NewDeployer(store Store, opts ...Option) *Deployer {
	_inst := &Deployer{store: store, logger: helpers.NewNoopLogger()}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

// WithLogger sets the logger instance for the deployer.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deployer) {
		d.logger = logger
	}
}

// WithPrefix sets the key prefix every asset is published under.
func WithPrefix(prefix string) Option {
	return func(d *Deployer) {
		d.prefix = prefix
	}
}

// WithPrune enables removal of objects that have no local counterpart.
func WithPrune(prune bool) Option {
	return func(d *Deployer) {
		d.prune = prune
	}
}

// WithMaxAge sets the browser and CDN cache lifetime of the published assets.
func WithMaxAge(maxAge time.Duration) Option {
	return func(d *Deployer) {
		d.maxAge = maxAge
	}
}

// CacheControl returns the Cache-Control header value applied to every asset.
func (d *Deployer) CacheControl() string {
	if d.maxAge <= 0 {
		return "no-cache"
	}
	secs := int64(d.maxAge / time.Second)
	return fmt.Sprintf("max-age=%d, s-maxage=%d", secs, secs)
}

// Deploy uploads every regular file of fsys and, when pruning, deletes the stale keys below the prefix.
func (d *Deployer) Deploy(ctx context.Context, fsys fs.FS) (*Report, error) {
	edge.Install()

	report := &Report{}
	cacheControl := d.CacheControl()
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		key := path.Join(d.prefix, name)
		if err = d.upload(ctx, fsys, name, key, cacheControl); err != nil {
			return err
		}
		report.Uploaded = append(report.Uploaded, key)
		return nil
	})
	if err != nil {
		return report, errors.Wrap(err, "failed to upload assets")
	}
	d.logger.Info("uploaded assets", slog.Int("count", len(report.Uploaded)))

	if !d.prune {
		return report, nil
	}
	listPrefix := d.prefix
	if listPrefix != "" {
		listPrefix += "/"
	}
	existing, err := d.store.ListKeys(ctx, listPrefix)
	if err != nil {
		return report, errors.Wrap(err, "failed to list published assets")
	}
	for _, key := range existing {
		if !slices.Contains(report.Uploaded, key) {
			report.Deleted = append(report.Deleted, key)
		}
	}
	if len(report.Deleted) == 0 {
		return report, nil
	}
	if err = d.store.DeleteKeys(ctx, report.Deleted); err != nil {
		return report, errors.Wrap(err, "failed to prune assets")
	}
	d.logger.Info("pruned assets", slog.Int("count", len(report.Deleted)))
	return report, nil
}

func (d *Deployer) upload(ctx context.Context, fsys fs.FS, name, key, cacheControl string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = defaultContentType
	}
	d.logger.Debug("uploading asset...", slog.String("key", key))
	return d.store.PutObject(ctx, key, f, contentType, cacheControl)
}
