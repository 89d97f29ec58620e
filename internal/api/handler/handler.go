package handler

import (
	"context"
	"log/slog"

	"github.com/applytrack/timing-be/internal/api/storage"
	"github.com/applytrack/timing-be/internal/timing/domain"
	"github.com/applytrack/timing-be/internal/timing/engine"
)

// RecordStore is the persistence surface handlers need.
type RecordStore interface {
	UpsertRecord(ctx context.Context, rec *domain.TimingRecord) error
	GetRecord(ctx context.Context, userID, jobID string) (*domain.TimingRecord, error)
	UpdateRecordCAS(ctx context.Context, rec *domain.TimingRecord, prevStatus string) error
	ListRecords(ctx context.Context, filter storage.RecordFilter) ([]domain.TimingRecord, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger *slog.Logger
	Store  RecordStore
	Engine *engine.Engine
}

// TimingHandler handles timing-record and recommendation HTTP requests
type TimingHandler struct {
	logger *slog.Logger
	store  RecordStore
	engine *engine.Engine
}

// NewTimingHandler creates a new TimingHandler instance
func NewTimingHandler(deps *Dependencies) *TimingHandler {
	return &TimingHandler{
		logger: deps.Logger,
		store:  deps.Store,
		engine: deps.Engine,
	}
}
