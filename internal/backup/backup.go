// Package backup snapshots the SQLite database, encrypts the snapshot and
// keeps it in S3-compatible object storage.
package backup

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

var (
	ErrNotConfigured = errors.New("backup not configured: S3 bucket and credentials required")
	ErrUnsupported   = errors.New("backup supports SQLite only; use pg_dump for PostgreSQL")
	ErrNotFound      = errors.New("backup not found")
	ErrNotCompleted  = errors.New("backup did not complete")
)

// s3Client is the subset of *s3.Client the manager uses.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Prefix is prepended to every object key.
	Prefix string
}

func (c S3Config) complete() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Manager runs backups of one database.
type Manager struct {
	cfg     S3Config
	db      *database.DB
	backups *store.BackupStore
	client  s3Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewManager returns a manager for db. Operations that touch storage fail with
// ErrNotConfigured when cfg lacks a bucket or credentials.
func NewManager(cfg S3Config, db *database.DB, logger *slog.Logger) *Manager {
	var client s3Client
	if cfg.complete() {
		client = newS3Client(cfg)
	}
	return newManager(cfg, db, client, logger)
}

func newManager(cfg S3Config, db *database.DB, client s3Client, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:     cfg,
		db:      db,
		backups: store.NewBackupStore(db),
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func (m *Manager) ready() error {
	if m.db.Dialect != database.SQLite {
		return ErrUnsupported
	}
	if m.client == nil {
		return ErrNotConfigured
	}
	return nil
}

// RunNow snapshots the database, encrypts the snapshot with passphrase and
// uploads it. The returned record reflects the final state of the attempt.
func (m *Manager) RunNow(ctx context.Context, passphrase string) (*model.Backup, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	if passphrase == "" {
		return nil, fmt.Errorf("backup passphrase is required")
	}

	filename := fmt.Sprintf("choreboard-%s.db.enc", m.now().UTC().Format("20060102T150405Z"))
	key := path.Join(m.cfg.Prefix, uuid.NewString()+"-"+filename)

	// The snapshot is taken before the record exists, so a restored database
	// never carries its own pending backup row.
	plain, snapErr := m.snapshot(ctx)

	record, err := m.backups.Create(ctx, filename, key)
	if err != nil {
		return nil, err
	}
	logger := m.logger.With("backup_id", record.ID, "key", key)

	var size int64
	err = snapErr
	if err == nil {
		size, err = m.upload(ctx, record.ID, key, plain, passphrase)
	}
	if err != nil {
		logger.Error("backup failed", "error", err)
		if uerr := m.backups.UpdateStatus(ctx, record.ID, model.BackupStatusFailed, err.Error()); uerr != nil {
			logger.Error("record backup failure", "error", uerr)
		}
		return nil, err
	}
	if err := m.backups.UpdateCompleted(ctx, record.ID, size); err != nil {
		return nil, err
	}

	logger.Info("backup completed", "size_bytes", size)
	return m.backups.GetByID(ctx, record.ID)
}

func (m *Manager) upload(ctx context.Context, id int64, key string, plain []byte, passphrase string) (int64, error) {
	sealed, err := Seal(plain, passphrase)
	if err != nil {
		return 0, fmt.Errorf("encrypt: %w", err)
	}

	if err := m.backups.UpdateStatus(ctx, id, model.BackupStatusUploading, ""); err != nil {
		return 0, err
	}
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(sealed),
		ContentLength: aws.Int64(int64(len(sealed))),
	})
	if err != nil {
		return 0, fmt.Errorf("upload to s3: %w", err)
	}
	return int64(len(sealed)), nil
}

// snapshot writes a consistent copy of the live database with VACUUM INTO and
// returns its bytes. It works for file and in-memory databases alike.
func (m *Manager) snapshot(ctx context.Context) ([]byte, error) {
	dir, err := os.MkdirTemp("", "choreboard-backup-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "snapshot.db")
	if _, err := m.db.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return nil, fmt.Errorf("snapshot database: %w", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// List returns up to limit backup records, newest first.
func (m *Manager) List(ctx context.Context, limit int) ([]model.Backup, error) {
	return m.backups.List(ctx, limit)
}

// Restore downloads backup id, decrypts it into a new file at out and checks
// that the result is a sound SQLite database. It never writes over an
// existing file, so the live database is never touched.
func (m *Manager) Restore(ctx context.Context, id int64, passphrase, out string) error {
	if err := m.ready(); err != nil {
		return err
	}

	record, err := m.backups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	if !record.Restorable() {
		return fmt.Errorf("backup %d is %s: %w", id, record.Status, ErrNotCompleted)
	}

	result, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(record.ObjectKey),
	})
	if err != nil {
		return fmt.Errorf("download from s3: %w", err)
	}
	sealed, err := io.ReadAll(result.Body)
	result.Body.Close()
	if err != nil {
		return fmt.Errorf("read download: %w", err)
	}

	plain, err := Open(sealed, passphrase)
	if err != nil {
		return fmt.Errorf("decrypt backup %d: %w", id, err)
	}

	f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create restore file: %w", err)
	}
	if _, err := f.Write(plain); err != nil {
		f.Close()
		os.Remove(out)
		return fmt.Errorf("write restore file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return fmt.Errorf("close restore file: %w", err)
	}

	if err := checkIntegrity(ctx, out); err != nil {
		os.Remove(out)
		return err
	}

	m.logger.Info("backup restored", "backup_id", id, "out", out)
	return nil
}

func checkIntegrity(ctx context.Context, file string) error {
	db, err := sql.Open("sqlite", "file:"+file+"?mode=ro")
	if err != nil {
		return fmt.Errorf("open restored db: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&result); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

// Prune deletes backups older than retention, both the records and the
// stored objects. Object deletion failures are logged and skipped.
func (m *Manager) Prune(ctx context.Context, retention time.Duration) (int, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}

	keys, err := m.backups.DeleteOlderThan(ctx, m.now().Add(-retention))
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if _, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(m.cfg.Bucket),
			Key:    aws.String(key),
		}); err != nil {
			m.logger.Warn("delete backup object", "key", key, "error", err)
		}
	}
	return len(keys), nil
}
