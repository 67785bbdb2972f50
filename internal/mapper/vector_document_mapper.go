package mapper

import (
	"docintel-be/internal/entity"
	"docintel-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type VectorDocumentMapper struct{}

func NewVectorDocumentMapper() *VectorDocumentMapper {
	return &VectorDocumentMapper{}
}

func (m *VectorDocumentMapper) ToEntity(d *model.VectorDocument) *entity.VectorDocument {
	if d == nil {
		return nil
	}
	return &entity.VectorDocument{
		Id:           d.Id,
		DocumentId:   d.DocumentId,
		ChunkId:      d.ChunkId,
		Text:         d.Text,
		Embedding:    d.Embedding.Slice(),
		DocumentType: d.DocumentType,
		Source:       d.Source,
		SourceType:   d.SourceType,
		Metadata: entity.DocumentMetadata{
			DocumentType:  d.DocumentType,
			Section:       d.Section,
			Page:          d.Page,
			Jurisdiction:  d.Jurisdiction,
			County:        d.County,
			Court:         d.Court,
			JudgeReferee:  d.JudgeReferee,
			IssueTags:     d.IssueTags,
			PracticeAreas: d.PracticeAreas,
			EffectiveFrom: d.EffectiveFrom,
			EffectiveTo:   d.EffectiveTo,
			Extra:         d.Extra,
		},
	}
}

func (m *VectorDocumentMapper) ToModel(e *entity.VectorDocument) *model.VectorDocument {
	if e == nil {
		return nil
	}
	return &model.VectorDocument{
		Id:            e.Id,
		DocumentId:    e.DocumentId,
		ChunkId:       e.ChunkId,
		Text:          e.Text,
		Embedding:     pgvector.NewVector(e.Embedding),
		DocumentType:  e.DocumentType,
		Source:        e.Source,
		SourceType:    e.SourceType,
		Section:       e.Metadata.Section,
		Page:          e.Metadata.Page,
		Jurisdiction:  e.Metadata.Jurisdiction,
		County:        e.Metadata.County,
		Court:         e.Metadata.Court,
		JudgeReferee:  e.Metadata.JudgeReferee,
		IssueTags:     e.Metadata.IssueTags,
		PracticeAreas: e.Metadata.PracticeAreas,
		EffectiveFrom: e.Metadata.EffectiveFrom,
		EffectiveTo:   e.Metadata.EffectiveTo,
		Extra:         e.Metadata.Extra,
	}
}

func (m *VectorDocumentMapper) ToEntities(models []*model.VectorDocument) []*entity.VectorDocument {
	entities := make([]*entity.VectorDocument, len(models))
	for i, d := range models {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *VectorDocumentMapper) ToModels(entities []*entity.VectorDocument) []*model.VectorDocument {
	models := make([]*model.VectorDocument, len(entities))
	for i, e := range entities {
		models[i] = m.ToModel(e)
	}
	return models
}
