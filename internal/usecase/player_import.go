package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
)

const defaultImportWorkers = 4

type ImportFailure struct {
	Index int
	Err   error
}

type ImportResult struct {
	Created  int
	Failures []ImportFailure
}

// Import creates every record through Create on a bounded worker pool. Per-record
// failures are collected; only pool errors abort the import.
func (s *PlayerService) Import(ctx context.Context, records []map[string]any, workers int) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Import", attribute.Int("import.records", len(records)))
	defer span.End()

	if workers <= 0 {
		workers = defaultImportWorkers
	}
	if len(records) == 0 {
		return ImportResult{}, nil
	}

	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu      sync.Mutex
		result  ImportResult
		pending sync.WaitGroup
	)
	for i, record := range records {
		pending.Add(1)
		if err := workerPool.Submit(func() {
			defer pending.Done()

			_, createErr := s.Create(ctx, record)

			mu.Lock()
			defer mu.Unlock()
			if createErr != nil {
				result.Failures = append(result.Failures, ImportFailure{Index: i, Err: createErr})
				return
			}
			result.Created++
		}); err != nil {
			pending.Done()
			pending.Wait()
			return result, fmt.Errorf("submit record %d to worker pool: %w", i, err)
		}
	}
	pending.Wait()

	sort.Slice(result.Failures, func(a, b int) bool {
		return result.Failures[a].Index < result.Failures[b].Index
	})

	s.logger.InfoContext(ctx, "player import finished", "created", result.Created, "failed", len(result.Failures))
	return result, nil
}
