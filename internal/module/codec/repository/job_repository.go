package repository

import (
	"context"
	"errors"

	"github.com/DODOEX/b64huff/internal/database"
	"github.com/DODOEX/b64huff/internal/database/schema"
)

var ErrNotConnected = errors.New("database is not connected")

//go:generate mockgen -destination=job_repository_mock.go -package=repository . IJobRepository
type IJobRepository interface {
	CreateJob(ctx context.Context, job *schema.Job) error
	GetJobByUUID(ctx context.Context, uuid string, job *schema.Job) error
}

type _JobRepository struct {
	db *database.Database
}

func NewJobRepository(db *database.Database) IJobRepository {
	return &_JobRepository{
		db: db,
	}
}

func (r *_JobRepository) CreateJob(ctx context.Context, job *schema.Job) error {
	if r.db == nil || r.db.DB == nil {
		return ErrNotConnected
	}
	return r.db.DB.WithContext(ctx).Create(job).Error
}

func (r *_JobRepository) GetJobByUUID(ctx context.Context, uuid string, job *schema.Job) error {
	if r.db == nil || r.db.DB == nil {
		return ErrNotConnected
	}
	return r.db.DB.WithContext(ctx).Take(job, "uuid = ?", uuid).Error
}
