package backup

import (
	"context"
	"path"
	"time"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/metrics"
)

// JobName is the scheduler name of the backup job
const JobName = "backup"

const timestampLayout = "20060102T150405Z"

// Job exports the whole collection as a JSON document and uploads it
type Job struct {
	exporter account.TransferService
	uploader Uploader
	prefix   string
	logger   *logger.Logger
	now      func() time.Time
}

// NewJob creates a backup job writing under prefix
func NewJob(exporter account.TransferService, uploader Uploader, prefix string, log *logger.Logger) *Job {
	return &Job{
		exporter: exporter,
		uploader: uploader,
		prefix:   prefix,
		logger:   log,
		now:      time.Now,
	}
}

// Name implements worker.Job
func (j *Job) Name() string {
	return JobName
}

// Run implements worker.Job
func (j *Job) Run(ctx context.Context) error {
	_, err := j.Backup(ctx)
	return err
}

// Backup uploads one snapshot and returns its object key
func (j *Job) Backup(ctx context.Context) (string, error) {
	started := time.Now()

	key, err := j.backup(ctx)
	if err != nil {
		metrics.RecordBackup("failed", time.Since(started))
		return "", err
	}

	metrics.RecordBackup("success", time.Since(started))
	return key, nil
}

func (j *Job) backup(ctx context.Context) (string, error) {
	accounts, err := j.exporter.Export(ctx)
	if err != nil {
		return "", err
	}

	body, err := account.Encode(account.FormatJSON, accounts)
	if err != nil {
		return "", err
	}

	key := j.Key()
	if err := j.uploader.Upload(ctx, key, account.FormatJSON.ContentType(), body); err != nil {
		return "", err
	}

	j.logger.WithFields(map[string]interface{}{
		"key":      key,
		"accounts": len(accounts),
		"bytes":    len(body),
	}).Info("Backup uploaded")

	return key, nil
}

// Key returns the object key for a snapshot taken now
func (j *Job) Key() string {
	name := account.ExportBasename + "-" + j.now().UTC().Format(timestampLayout) + ".json"
	if j.prefix == "" {
		return name
	}
	return path.Join(j.prefix, name)
}
