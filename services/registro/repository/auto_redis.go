package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"registro/domain"
)

const (
	autoKeyPrefix = "auto:"
	autoIndexKey  = "autos"
)

type autoDoc struct {
	Patente   string `json:"patente"`
	Marca     string `json:"marca"`
	Modelo    string `json:"modelo"`
	Anio      int    `json:"anio"`
	Color     string `json:"color"`
	NroChasis string `json:"nroChasis"`
	NroMotor  string `json:"nroMotor"`
	PersonaID string `json:"personaID"`
}

func toAutoDoc(a *domain.Auto) autoDoc {
	return autoDoc{
		Patente:   a.Patente,
		Marca:     a.Marca,
		Modelo:    a.Modelo,
		Anio:      a.Anio,
		Color:     a.Color,
		NroChasis: a.NroChasis,
		NroMotor:  a.NroMotor,
		PersonaID: a.PersonaID,
	}
}

func (d autoDoc) toDomain(id string) domain.Auto {
	return domain.Auto{
		ID:        id,
		Patente:   d.Patente,
		Marca:     d.Marca,
		Modelo:    d.Modelo,
		Anio:      d.Anio,
		Color:     d.Color,
		NroChasis: d.NroChasis,
		NroMotor:  d.NroMotor,
		PersonaID: d.PersonaID,
	}
}

type autoRedisRepository struct {
	client *redis.Client
}

// NewAutoRedisRepository builds the redis Auto backend.
func NewAutoRedisRepository(client *redis.Client) domain.AutoRepo {
	return &autoRedisRepository{
		client: client,
	}
}

func (ar *autoRedisRepository) getDoc(ctx context.Context, id string) (*autoDoc, error) {
	raw, err := ar.client.Get(ctx, autoKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get auto: %v", err)
	}

	var doc autoDoc
	if err := sonic.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("could not decode auto document %s: %v", id, err)
	}
	return &doc, nil
}

func (ar *autoRedisRepository) putDoc(ctx context.Context, id string, doc autoDoc) error {
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not encode auto document: %v", err)
	}

	pipe := ar.client.TxPipeline()
	pipe.Set(ctx, autoKeyPrefix+id, raw, 0)
	pipe.SAdd(ctx, autoIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("could not store auto: %v", err)
	}
	return nil
}

func (ar *autoRedisRepository) all(ctx context.Context) (map[string]autoDoc, error) {
	ids, err := ar.client.SMembers(ctx, autoIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("could not list autos: %v", err)
	}

	docs := make(map[string]autoDoc, len(ids))
	for _, id := range ids {
		doc, err := ar.getDoc(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs[id] = *doc
	}
	return docs, nil
}

func (ar *autoRedisRepository) GetAll(ctx context.Context) ([]domain.Auto, error) {
	docs, err := ar.all(ctx)
	if err != nil {
		return nil, err
	}

	autos := make([]domain.Auto, 0, len(docs))
	for id, doc := range docs {
		autos = append(autos, doc.toDomain(id))
	}
	return autos, nil
}

func (ar *autoRedisRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]domain.Auto, error) {
	docs, err := ar.all(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]domain.Auto, 0)
	for id, doc := range docs {
		if doc.PersonaID == ownerID {
			owned = append(owned, doc.toDomain(id))
		}
	}
	return owned, nil
}

func (ar *autoRedisRepository) GetByID(ctx context.Context, id string) (*domain.Auto, error) {
	doc, err := ar.getDoc(ctx, id)
	if err != nil {
		return nil, err
	}

	auto := doc.toDomain(id)
	return &auto, nil
}

func (ar *autoRedisRepository) Create(ctx context.Context, auto *domain.Auto) (*domain.Auto, error) {
	id := uuid.NewString()
	if err := ar.putDoc(ctx, id, toAutoDoc(auto)); err != nil {
		return nil, err
	}

	created := *auto
	created.ID = id
	return &created, nil
}

func (ar *autoRedisRepository) Update(ctx context.Context, id string, patch *domain.AutoUpdate) (*domain.Auto, error) {
	doc, err := ar.getDoc(ctx, id)
	if err != nil {
		return nil, err
	}

	auto := doc.toDomain(id)
	patch.ApplyTo(&auto)

	if err := ar.putDoc(ctx, id, toAutoDoc(&auto)); err != nil {
		return nil, err
	}
	return &auto, nil
}

func (ar *autoRedisRepository) Delete(ctx context.Context, id string) (bool, error) {
	pipe := ar.client.TxPipeline()
	del := pipe.Del(ctx, autoKeyPrefix+id)
	pipe.SRem(ctx, autoIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("could not delete auto: %v", err)
	}
	return del.Val() > 0, nil
}
