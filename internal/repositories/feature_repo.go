package repositories

import (
	"context"

	"roomly/internal/models"

	"github.com/google/uuid"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *models.Feature) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Feature, error)
	GetByName(ctx context.Context, name string) (*models.Feature, error)
	List(ctx context.Context) ([]*models.Feature, error)
}

type featureRepo struct {
	db Database
}

func NewFeatureRepo(db Database) FeatureRepository {
	return &featureRepo{db: db}
}

func (r *featureRepo) Create(ctx context.Context, feature *models.Feature) error {
	query := `
		INSERT INTO features (id, name, description, icon, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, feature.ID, feature.Name, feature.Description, feature.Icon)
	return mapError(err)
}

func (r *featureRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Feature, error) {
	feature := &models.Feature{}
	query := `SELECT id, name, description, icon, created_at FROM features WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&feature.ID, &feature.Name, &feature.Description, &feature.Icon, &feature.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return feature, nil
}

func (r *featureRepo) GetByName(ctx context.Context, name string) (*models.Feature, error) {
	feature := &models.Feature{}
	query := `SELECT id, name, description, icon, created_at FROM features WHERE name = $1`
	err := r.db.QueryRow(ctx, query, name).Scan(&feature.ID, &feature.Name, &feature.Description, &feature.Icon, &feature.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return feature, nil
}

func (r *featureRepo) List(ctx context.Context) ([]*models.Feature, error) {
	query := `SELECT id, name, description, icon, created_at FROM features ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var features []*models.Feature
	for rows.Next() {
		feature := &models.Feature{}
		if err := rows.Scan(&feature.ID, &feature.Name, &feature.Description, &feature.Icon, &feature.CreatedAt); err != nil {
			return nil, err
		}
		features = append(features, feature)
	}
	return features, rows.Err()
}
