// Command seedhsn loads the GST HSN master workbook into the hsn_codes table.
// Only the chapters the store sells are imported.
//
// Usage: seedhsn [workbook.xlsx]
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"amorlias/internal/config"
	"amorlias/internal/logger"
	"amorlias/internal/repository/postgres"
)

const (
	defaultWorkbook = "hsn_master.xlsx"
	batchSize       = 500
)

func main() {
	_ = godotenv.Load()
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("seedhsn failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.New(cfg.Log.Format, cfg.Log.Level)

	path := defaultWorkbook
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read HSN sheet: %w", err)
	}
	entries := parseHSNRows(rows, storeChapters)
	log.Info().Int("entries", len(entries)).Str("workbook", path).Msg("parsed HSN master")

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))
		if err := insertBatch(ctx, tx, entries[i:end]); err != nil {
			return fmt.Errorf("insert batch at offset %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Info().Int("entries", len(entries)).Msg("hsn_codes seeded")
	return nil
}

func insertBatch(ctx context.Context, tx *sqlx.Tx, batch []hsnRow) error {
	if len(batch) == 0 {
		return nil
	}
	values := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(batch)*4)
	for i, e := range batch {
		base := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, '2017-07-01')", base+1, base+2, base+3, base+4))
		args = append(args, e.Code, e.Description, e.GSTRate, e.parentOrNil())
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO hsn_codes (code, description, gst_rate, parent_code, effective_from) VALUES `+
			strings.Join(values, ", ")+
			` ON CONFLICT (code, gst_rate, condition_desc, effective_from) DO NOTHING`, args...)
	return err
}
