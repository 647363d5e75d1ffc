package database

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/jackc/pgx/v5"

	"github.com/pgspaces/pgspaces/internal/config"
	"github.com/pgspaces/pgspaces/internal/domain"
)

type PostgresDatabase struct {
	config *config.DatabaseConfig
}

func NewPostgres(cfg *config.DatabaseConfig) *PostgresDatabase {
	return &PostgresDatabase{config: cfg}
}

// Dump runs pg_dump against the configured database and writes a plain
// SQL dump to outputPath. The password travels through the environment,
// never on the command line. No timeout is imposed here; a hung pg_dump
// hangs the whole attempt.
func (p *PostgresDatabase) Dump(ctx context.Context, outputPath string) error {
	cmd := exec.CommandContext(ctx, "pg_dump", p.dumpArgs(outputPath)...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("PGPASSWORD=%s", p.config.Password),
		fmt.Sprintf("PGSSLMODE=%s", p.config.SSLMode()),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &domain.DumpError{
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return nil
}

func (p *PostgresDatabase) dumpArgs(outputPath string) []string {
	return []string{
		fmt.Sprintf("--host=%s", p.config.Host),
		fmt.Sprintf("--port=%d", p.config.Port),
		fmt.Sprintf("--username=%s", p.config.User),
		"--format=plain",
		"--no-owner",
		fmt.Sprintf("--file=%s", outputPath),
		p.config.Name,
	}
}

// Ping opens a throwaway connection, reads the server version, and
// closes the connection on all paths.
func (p *PostgresDatabase) Ping(ctx context.Context) (string, error) {
	conn, err := pgx.Connect(ctx, p.config.DSN())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrConnectionFailed, err)
	}
	defer conn.Close(ctx)

	var version string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrConnectionFailed, err)
	}

	return version, nil
}

func (p *PostgresDatabase) GetName() string {
	return p.config.Name
}
