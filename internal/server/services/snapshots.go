package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/snapshots"
)

// Uploader stores a document and returns a URL it can be fetched from.
type Uploader interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
}

// SnapshotService writes a user's export to object storage.
type SnapshotService struct {
	repomanager repomanager.RepositoryManager
	transfer    *TransferService
	uploader    Uploader
	events      events.Publisher
	log         logging.Logger
}

// NewSnapshotService accepts a nil uploader; Create then reports
// common.ErrorUnavailable.
func NewSnapshotService(m repomanager.RepositoryManager, transfer *TransferService, uploader Uploader, pub events.Publisher, log logging.Logger) *SnapshotService {
	return &SnapshotService{repomanager: m, transfer: transfer, uploader: uploader, events: pub, log: log}
}

func (s *SnapshotService) Create(ctx context.Context, userID int64) (*models.Snapshot, error) {
	if s.uploader == nil {
		return nil, common.ErrorUnavailable
	}

	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	payload, err := s.transfer.Export(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}

	key := snapshots.ObjectKey(user.Username, payload.ExportDate)
	url, err := s.uploader.Put(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("error uploading snapshot: %w", err)
	}

	s.log.Info(ctx, "snapshot uploaded", "user_id", userID, "key", key, "bytes", len(body))
	events.Emit(ctx, s.events, s.log, events.Event{Type: events.SnapshotUploaded, UserID: userID, Payload: map[string]string{"key": key}})

	return &models.Snapshot{Key: key, URL: url, ExportDate: payload.ExportDate}, nil
}
