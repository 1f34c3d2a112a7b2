package implementation

import (
	"context"
	"errors"

	"incorporate-run-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// findOne loads the first row matching specs, or nil when there is none.
func findOne[M any](ctx context.Context, db *gorm.DB, specs ...specification.Specification) (*M, error) {
	var m M
	query := applySpecifications(db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func findAll[M any](ctx context.Context, db *gorm.DB, specs ...specification.Specification) ([]*M, error) {
	var models []*M
	query := applySpecifications(db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}
