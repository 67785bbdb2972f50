package implementation

import (
	"context"

	"docintel-be/internal/entity"
	"docintel-be/internal/mapper"
	"docintel-be/internal/model"
	"docintel-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VectorDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VectorDocumentMapper
}

func NewVectorDocumentRepository(db *gorm.DB) contract.VectorDocumentRepository {
	return &VectorDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewVectorDocumentMapper(),
	}
}

func (r *VectorDocumentRepositoryImpl) Upsert(ctx context.Context, docs []*entity.VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}
	models := r.mapper.ToModels(docs)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(models).Error
}

func (r *VectorDocumentRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, minScore float64) ([]entity.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	// pgvector's <=> is cosine distance; 1 - distance is the similarity the
	// engine scores with.
	type row struct {
		model.VectorDocument
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("vector_documents").
		Select("vector_documents.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, minScore).
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]entity.SearchResult, len(rows))
	for i, rw := range rows {
		results[i] = entity.SearchResult{
			Document: r.mapper.ToEntity(&rw.VectorDocument),
			Score:    rw.Similarity,
		}
	}
	return results, nil
}

func (r *VectorDocumentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VectorDocument{}).Count(&count).Error
	return count, err
}

func (r *VectorDocumentRepositoryImpl) FindAll(ctx context.Context) ([]*entity.VectorDocument, error) {
	var models []*model.VectorDocument
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *VectorDocumentRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId string) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.VectorDocument{}).Error
}

func (r *VectorDocumentRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.VectorDocument{}).Error
}
