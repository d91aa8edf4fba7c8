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
	personaKeyPrefix = "persona:"
	personaIndexKey  = "personas"
)

// personaDoc is the persisted document shape: camelCase fields mirroring the
// wire model, with the birth date as a YYYY-MM-DD string. The derived autos
// list is never stored.
type personaDoc struct {
	DNI               string `json:"dni"`
	Nombre            string `json:"nombre"`
	Apellido          string `json:"apellido"`
	FechaDeNacimiento string `json:"fechaDeNacimiento"`
	Genero            string `json:"genero"`
	DonanteOrganos    bool   `json:"donanteOrganos"`
}

func toPersonaDoc(p *domain.Persona) personaDoc {
	doc := personaDoc{
		DNI:            p.DNI,
		Nombre:         p.Nombre,
		Apellido:       p.Apellido,
		Genero:         string(p.Genero),
		DonanteOrganos: p.DonanteOrganos,
	}
	if !p.FechaDeNacimiento.IsZero() {
		doc.FechaDeNacimiento = p.FechaDeNacimiento.String()
	}
	return doc
}

func (d personaDoc) toDomain(id string) (*domain.Persona, error) {
	persona := domain.Persona{
		ID:             id,
		DNI:            d.DNI,
		Nombre:         d.Nombre,
		Apellido:       d.Apellido,
		Genero:         domain.Genero(d.Genero),
		DonanteOrganos: d.DonanteOrganos,
		Autos:          make([]domain.Auto, 0),
	}
	if d.FechaDeNacimiento != "" {
		fecha, err := domain.ParsePlainDate(d.FechaDeNacimiento)
		if err != nil {
			return nil, fmt.Errorf("corrupt persona document %s: %v", id, err)
		}
		persona.FechaDeNacimiento = fecha
	}
	return &persona, nil
}

type personaRedisRepository struct {
	client *redis.Client
}

// NewPersonaRedisRepository builds the redis Persona backend. Documents live
// under persona:<uuid> keys with the id index in a SET.
func NewPersonaRedisRepository(client *redis.Client) domain.PersonaRepo {
	return &personaRedisRepository{
		client: client,
	}
}

func (pr *personaRedisRepository) getDoc(ctx context.Context, id string) (*personaDoc, error) {
	raw, err := pr.client.Get(ctx, personaKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get persona: %v", err)
	}

	var doc personaDoc
	if err := sonic.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("could not decode persona document %s: %v", id, err)
	}
	return &doc, nil
}

func (pr *personaRedisRepository) putDoc(ctx context.Context, id string, doc personaDoc) error {
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not encode persona document: %v", err)
	}

	pipe := pr.client.TxPipeline()
	pipe.Set(ctx, personaKeyPrefix+id, raw, 0)
	pipe.SAdd(ctx, personaIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("could not store persona: %v", err)
	}
	return nil
}

func (pr *personaRedisRepository) GetAll(ctx context.Context) ([]domain.Persona, error) {
	ids, err := pr.client.SMembers(ctx, personaIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("could not list personas: %v", err)
	}

	personas := make([]domain.Persona, 0, len(ids))
	for _, id := range ids {
		doc, err := pr.getDoc(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			// Index entry without a document; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		persona, err := doc.toDomain(id)
		if err != nil {
			return nil, err
		}
		personas = append(personas, *persona)
	}
	return personas, nil
}

func (pr *personaRedisRepository) GetByID(ctx context.Context, id string) (*domain.Persona, error) {
	doc, err := pr.getDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(id)
}

func (pr *personaRedisRepository) Create(ctx context.Context, persona *domain.Persona) (*domain.Persona, error) {
	id := uuid.NewString()
	if err := pr.putDoc(ctx, id, toPersonaDoc(persona)); err != nil {
		return nil, err
	}

	created := *persona
	created.ID = id
	return &created, nil
}

func (pr *personaRedisRepository) Update(ctx context.Context, id string, patch *domain.PersonaUpdate) (*domain.Persona, error) {
	doc, err := pr.getDoc(ctx, id)
	if err != nil {
		return nil, err
	}

	persona, err := doc.toDomain(id)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(persona)

	if err := pr.putDoc(ctx, id, toPersonaDoc(persona)); err != nil {
		return nil, err
	}
	return persona, nil
}

func (pr *personaRedisRepository) Delete(ctx context.Context, id string) (bool, error) {
	pipe := pr.client.TxPipeline()
	del := pipe.Del(ctx, personaKeyPrefix+id)
	pipe.SRem(ctx, personaIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("could not delete persona: %v", err)
	}
	return del.Val() > 0, nil
}

func (pr *personaRedisRepository) IsDNIUnique(ctx context.Context, dni, ignoreID string) (bool, error) {
	ids, err := pr.client.SMembers(ctx, personaIndexKey).Result()
	if err != nil {
		return false, fmt.Errorf("could not check DNI uniqueness: %v", err)
	}

	for _, id := range ids {
		if id == ignoreID {
			continue
		}
		doc, err := pr.getDoc(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, err
		}
		if doc.DNI == dni {
			return false, nil
		}
	}
	return true, nil
}
