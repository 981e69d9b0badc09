package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dukerupert/choreboard/internal/backup"
	"github.com/dukerupert/choreboard/internal/model"
)

type BackupCmd struct {
	S3 S3Flags `embed:"" prefix:"s3-" envprefix:"CHOREBOARD_S3_"`

	Run     BackupRunCmd     `cmd:"" help:"Snapshot, encrypt and upload the database."`
	List    BackupListCmd    `cmd:"" help:"List recorded backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Download and decrypt a backup into a new file."`
	Prune   BackupPruneCmd   `cmd:"" help:"Delete backups older than the retention period."`
}

type S3Flags struct {
	Endpoint  string `env:"ENDPOINT" help:"S3-compatible endpoint URL; empty uses AWS."`
	Bucket    string `env:"BUCKET" help:"Bucket name."`
	Region    string `env:"REGION" default:"us-east-1" help:"Bucket region."`
	AccessKey string `env:"ACCESS_KEY" help:"Access key id."`
	SecretKey string `env:"SECRET_KEY" help:"Secret access key."`
	Prefix    string `env:"PREFIX" default:"choreboard" help:"Object key prefix."`
}

func (f S3Flags) config() backup.S3Config {
	return backup.S3Config{
		Endpoint:  f.Endpoint,
		Bucket:    f.Bucket,
		Region:    f.Region,
		AccessKey: f.AccessKey,
		SecretKey: f.SecretKey,
		Prefix:    f.Prefix,
	}
}

// manager opens the database and builds a backup manager over it. The
// returned func closes the database.
func (c *BackupCmd) manager(ctx context.Context, g *Globals) (*backup.Manager, func(), error) {
	db, err := g.open(ctx, true)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	m := backup.NewManager(c.S3.config(), db, g.logger().With("component", "backup"))
	return m, func() { db.Close() }, nil
}

type BackupRunCmd struct {
	Passphrase string `env:"CHOREBOARD_BACKUP_PASSPHRASE" required:"" help:"Encryption passphrase."`
}

func (c *BackupRunCmd) Run(g *Globals, parent *BackupCmd) error {
	ctx := context.Background()
	m, done, err := parent.manager(ctx, g)
	if err != nil {
		return err
	}
	defer done()

	b, err := m.RunNow(ctx, c.Passphrase)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stdout(), "backup %d uploaded to %s (%d bytes)\n", b.ID, b.ObjectKey, b.SizeBytes)
	return nil
}

type BackupListCmd struct {
	Limit int `default:"20" help:"Maximum number of backups to show."`
}

func (c *BackupListCmd) Run(g *Globals, parent *BackupCmd) error {
	ctx := context.Background()
	m, done, err := parent.manager(ctx, g)
	if err != nil {
		return err
	}
	defer done()

	backups, err := m.List(ctx, c.Limit)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Fprintln(g.stdout(), "no backups")
		return nil
	}
	writeBackups(g, backups)
	return nil
}

func writeBackups(g *Globals, backups []model.Backup) {
	tw := tabwriter.NewWriter(g.stdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSTATUS\tSIZE\tTOOK\tKEY")
	for _, b := range backups {
		status := string(b.Status)
		if b.ErrorMessage != "" {
			status += ": " + b.ErrorMessage
		}
		took := "-"
		if d := b.Elapsed(); d > 0 {
			took = d.Round(time.Millisecond).String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", b.ID, b.CreatedAt.Format(time.RFC3339), status, b.SizeBytes, took, b.ObjectKey)
	}
	tw.Flush()
}

type BackupRestoreCmd struct {
	ID         int64  `arg:"" help:"Backup id from backup list."`
	Out        string `required:"" type:"path" help:"File to write the restored database to; must not exist."`
	Passphrase string `env:"CHOREBOARD_BACKUP_PASSPHRASE" required:"" help:"Encryption passphrase."`
}

func (c *BackupRestoreCmd) Run(g *Globals, parent *BackupCmd) error {
	ctx := context.Background()
	m, done, err := parent.manager(ctx, g)
	if err != nil {
		return err
	}
	defer done()

	if err := m.Restore(ctx, c.ID, c.Passphrase, c.Out); err != nil {
		return err
	}
	fmt.Fprintf(g.stdout(), "backup %d restored to %s\n", c.ID, c.Out)
	return nil
}

type BackupPruneCmd struct {
	Retention time.Duration `default:"720h" help:"Keep backups newer than this."`
}

func (c *BackupPruneCmd) Run(g *Globals, parent *BackupCmd) error {
	ctx := context.Background()
	m, done, err := parent.manager(ctx, g)
	if err != nil {
		return err
	}
	defer done()

	n, err := m.Prune(ctx, c.Retention)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stdout(), "pruned %d backups\n", n)
	return nil
}
