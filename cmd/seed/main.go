package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/Alejmm/MicroservicioPlayers/internal/app"
	"github.com/Alejmm/MicroservicioPlayers/internal/config"
	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	"github.com/Alejmm/MicroservicioPlayers/internal/infrastructure/repository/memory"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
	"github.com/Alejmm/MicroservicioPlayers/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).Named("seed")
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], cfg, logger); err != nil {
		logger.Error("seed failed", "error", err)
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, args []string, cfg config.Config, logger *logging.Logger) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "", "JSON file with player records (array or {\"items\": [...]}); built-in roster when empty")
	workers := fs.Int("workers", cfg.SeedWorkers, "concurrent inserts")
	if err := fs.Parse(args); err != nil {
		return crerr.Wrap(err, "parse flags")
	}

	records, err := loadRecords(*file)
	if err != nil {
		return err
	}

	services, err := app.NewServices(ctx, cfg, logger)
	if err != nil {
		return crerr.Wrap(err, "build services")
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn("close services failed", "error", err)
		}
	}()

	result, err := services.Players.Import(ctx, records, *workers)
	if err != nil {
		return crerr.Wrap(err, "import players")
	}
	reportImport(logger, result, len(records))

	return nil
}

func reportImport(logger *logging.Logger, result usecase.ImportResult, total int) {
	for _, failure := range result.Failures {
		logger.Warn("player record rejected", "index", failure.Index, "error", failure.Err)
	}
	logger.Info("seed finished", "records", total, "created", result.Created, "failed", len(result.Failures))
}

func loadRecords(path string) ([]map[string]any, error) {
	if path == "" {
		return builtinRecords(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open seed file %s", path)
	}
	defer f.Close()

	return decodeRecords(f)
}

func decodeRecords(r io.Reader) ([]map[string]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, crerr.Wrap(err, "read seed file")
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, crerr.New("seed file is empty")
	}

	if trimmed[0] == '[' {
		var records []map[string]any
		if err := sonic.Unmarshal(trimmed, &records); err != nil {
			return nil, crerr.Wrap(err, "decode seed records")
		}
		return records, nil
	}

	var envelope struct {
		Items []map[string]any `json:"items"`
		Data  []map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode seed envelope")
	}
	if envelope.Items != nil {
		return envelope.Items, nil
	}
	if envelope.Data != nil {
		return envelope.Data, nil
	}
	return nil, crerr.New("seed file has no items or data array")
}

// builtinRecords turns the demo roster into raw create payloads so they pass the same validation as API input.
func builtinRecords() []map[string]any {
	seed := memory.SeedPlayers()
	records := make([]map[string]any, 0, len(seed))
	for _, item := range seed {
		records = append(records, playerRecord(item))
	}
	return records
}

func playerRecord(item player.Player) map[string]any {
	record := map[string]any{
		"name":     item.Name,
		"number":   item.Number,
		"position": item.Position,
		"team_id":  item.TeamID,
	}
	if item.PhotoURL != nil {
		record["photo_url"] = *item.PhotoURL
	}
	return record
}
