package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"registro/domain"
)

type personaPostgresRepository struct {
	db *pgxpool.Pool
}

// NewPersonaPostgresRepository builds the postgres Persona backend. Rows use
// SERIAL identifiers; the string form crosses the repository boundary.
func NewPersonaPostgresRepository(database *pgxpool.Pool) domain.PersonaRepo {
	return &personaPostgresRepository{
		db: database,
	}
}

func scanPersonaRow(row pgx.Row) (*domain.Persona, error) {
	var persona domain.Persona
	var rowID int
	var fecha *time.Time

	err := row.Scan(&rowID, &persona.DNI, &persona.Nombre, &persona.Apellido, &fecha, &persona.Genero, &persona.DonanteOrganos)
	if err != nil {
		return nil, err
	}

	persona.ID = strconv.Itoa(rowID)
	if fecha != nil {
		persona.FechaDeNacimiento = domain.PlainDateOf(*fecha)
	}
	return &persona, nil
}

func fechaParam(d domain.PlainDate) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}

func (pr *personaPostgresRepository) GetAll(ctx context.Context) ([]domain.Persona, error) {
	query := `
		SELECT id, dni, nombre, apellido, fecha_de_nacimiento, genero, donante_organos
		FROM personas;
	`

	rows, err := pr.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not get all personas: %v", err)
	}
	defer rows.Close()

	personas := make([]domain.Persona, 0)
	for rows.Next() {
		persona, err := scanPersonaRow(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan persona: %v", err)
		}
		personas = append(personas, *persona)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %v", err)
	}

	return personas, nil
}

func (pr *personaPostgresRepository) GetByID(ctx context.Context, id string) (*domain.Persona, error) {
	rowID, err := strconv.Atoi(id)
	if err != nil {
		// Ids arrive as strings over HTTP; a malformed one is just a miss.
		return nil, domain.ErrNotFound
	}

	query := `
		SELECT id, dni, nombre, apellido, fecha_de_nacimiento, genero, donante_organos
		FROM personas
		WHERE id = $1;
	`

	persona, err := scanPersonaRow(pr.db.QueryRow(ctx, query, rowID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("could not get persona: %v", err)
	}

	return persona, nil
}

func (pr *personaPostgresRepository) Create(ctx context.Context, persona *domain.Persona) (*domain.Persona, error) {
	query := `
		INSERT INTO personas (dni, nombre, apellido, fecha_de_nacimiento, genero, donante_organos)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`

	var rowID int
	err := pr.db.QueryRow(ctx, query,
		persona.DNI, persona.Nombre, persona.Apellido,
		fechaParam(persona.FechaDeNacimiento), persona.Genero, persona.DonanteOrganos,
	).Scan(&rowID)
	if err != nil {
		return nil, fmt.Errorf("could not insert persona: %v", err)
	}

	created := *persona
	created.ID = strconv.Itoa(rowID)
	return &created, nil
}

func (pr *personaPostgresRepository) Update(ctx context.Context, id string, patch *domain.PersonaUpdate) (*domain.Persona, error) {
	existing, err := pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(existing)

	query := `
		UPDATE personas
		SET dni = $1, nombre = $2, apellido = $3, fecha_de_nacimiento = $4, genero = $5, donante_organos = $6
		WHERE id = $7;
	`

	rowID, _ := strconv.Atoi(id)
	tag, err := pr.db.Exec(ctx, query,
		existing.DNI, existing.Nombre, existing.Apellido,
		fechaParam(existing.FechaDeNacimiento), existing.Genero, existing.DonanteOrganos,
		rowID,
	)
	if err != nil {
		return nil, fmt.Errorf("could not update persona: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	return existing, nil
}

func (pr *personaPostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	rowID, err := strconv.Atoi(id)
	if err != nil {
		return false, nil
	}

	tag, err := pr.db.Exec(ctx, `DELETE FROM personas WHERE id = $1;`, rowID)
	if err != nil {
		return false, fmt.Errorf("could not delete persona: %v", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (pr *personaPostgresRepository) IsDNIUnique(ctx context.Context, dni, ignoreID string) (bool, error) {
	query := `SELECT COUNT(*) FROM personas WHERE dni = $1;`
	args := []any{dni}

	if ignoreID != "" {
		if rowID, err := strconv.Atoi(ignoreID); err == nil {
			query = `SELECT COUNT(*) FROM personas WHERE dni = $1 AND id <> $2;`
			args = append(args, rowID)
		}
	}

	var count int
	if err := pr.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("could not check DNI uniqueness: %v", err)
	}

	return count == 0, nil
}
