package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

const importReportKeyPrefix = "school-admin:import:teachers:"

// ImportReportRepository keeps teacher import reports in Redis so they can be
// fetched again by batch id until they expire.
type ImportReportRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewImportReportRepository constructs the repository. A nil client disables storage.
func NewImportReportRepository(client *redis.Client, logger *zap.Logger) *ImportReportRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportReportRepository{client: client, logger: logger}
}

// Save stores report under its batch id for ttl.
func (r *ImportReportRepository) Save(ctx context.Context, report *models.ImportReport, ttl time.Duration) error {
	if r.client == nil {
		r.logger.Debug("import report storage disabled", zap.String("batch_id", report.BatchID))
		return nil
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal import report %s: %w", report.BatchID, err)
	}
	key := importReportKeyPrefix + report.BatchID
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Get loads a stored report. appErrors.ErrCacheMiss is returned when the batch is
// unknown, expired, or storage is disabled.
func (r *ImportReportRepository) Get(ctx context.Context, batchID string) (*models.ImportReport, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	key := importReportKeyPrefix + batchID
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var report models.ImportReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("unmarshal import report %s: %w", batchID, err)
	}
	return &report, nil
}
