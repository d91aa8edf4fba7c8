package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"registro/domain"
)

type autoPostgresRepository struct {
	db *pgxpool.Pool
}

// NewAutoPostgresRepository builds the postgres Auto backend.
func NewAutoPostgresRepository(database *pgxpool.Pool) domain.AutoRepo {
	return &autoPostgresRepository{
		db: database,
	}
}

func scanAutoRow(row pgx.Row) (*domain.Auto, error) {
	var auto domain.Auto
	var rowID, ownerID int

	err := row.Scan(&rowID, &auto.Patente, &auto.Marca, &auto.Modelo, &auto.Anio,
		&auto.Color, &auto.NroChasis, &auto.NroMotor, &ownerID)
	if err != nil {
		return nil, err
	}

	auto.ID = strconv.Itoa(rowID)
	auto.PersonaID = strconv.Itoa(ownerID)
	return &auto, nil
}

const autoColumns = `id, patente, marca, modelo, anio, color, nro_chasis, nro_motor, persona_id`

func (ar *autoPostgresRepository) GetAll(ctx context.Context) ([]domain.Auto, error) {
	rows, err := ar.db.Query(ctx, `SELECT `+autoColumns+` FROM autos;`)
	if err != nil {
		return nil, fmt.Errorf("could not get all autos: %v", err)
	}
	defer rows.Close()

	return collectAutos(rows)
}

func collectAutos(rows pgx.Rows) ([]domain.Auto, error) {
	autos := make([]domain.Auto, 0)
	for rows.Next() {
		auto, err := scanAutoRow(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan auto: %v", err)
		}
		autos = append(autos, *auto)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %v", err)
	}

	return autos, nil
}

func (ar *autoPostgresRepository) GetByID(ctx context.Context, id string) (*domain.Auto, error) {
	rowID, err := strconv.Atoi(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	auto, err := scanAutoRow(ar.db.QueryRow(ctx, `SELECT `+autoColumns+` FROM autos WHERE id = $1;`, rowID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("could not get auto: %v", err)
	}

	return auto, nil
}

func (ar *autoPostgresRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]domain.Auto, error) {
	owner, err := strconv.Atoi(ownerID)
	if err != nil {
		return make([]domain.Auto, 0), nil
	}

	rows, err := ar.db.Query(ctx, `SELECT `+autoColumns+` FROM autos WHERE persona_id = $1;`, owner)
	if err != nil {
		return nil, fmt.Errorf("could not get autos by owner: %v", err)
	}
	defer rows.Close()

	return collectAutos(rows)
}

func (ar *autoPostgresRepository) Create(ctx context.Context, auto *domain.Auto) (*domain.Auto, error) {
	ownerID, err := strconv.Atoi(auto.PersonaID)
	if err != nil {
		return nil, fmt.Errorf("could not insert auto: owner id %q is not numeric", auto.PersonaID)
	}

	query := `
		INSERT INTO autos (patente, marca, modelo, anio, color, nro_chasis, nro_motor, persona_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`

	var rowID int
	err = ar.db.QueryRow(ctx, query,
		auto.Patente, auto.Marca, auto.Modelo, auto.Anio,
		auto.Color, auto.NroChasis, auto.NroMotor, ownerID,
	).Scan(&rowID)
	if err != nil {
		return nil, fmt.Errorf("could not insert auto: %v", err)
	}

	created := *auto
	created.ID = strconv.Itoa(rowID)
	return &created, nil
}

func (ar *autoPostgresRepository) Update(ctx context.Context, id string, patch *domain.AutoUpdate) (*domain.Auto, error) {
	existing, err := ar.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(existing)

	query := `
		UPDATE autos
		SET patente = $1, marca = $2, modelo = $3, anio = $4, color = $5, nro_chasis = $6, nro_motor = $7
		WHERE id = $8;
	`

	rowID, _ := strconv.Atoi(id)
	tag, err := ar.db.Exec(ctx, query,
		existing.Patente, existing.Marca, existing.Modelo, existing.Anio,
		existing.Color, existing.NroChasis, existing.NroMotor,
		rowID,
	)
	if err != nil {
		return nil, fmt.Errorf("could not update auto: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	return existing, nil
}

func (ar *autoPostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	rowID, err := strconv.Atoi(id)
	if err != nil {
		return false, nil
	}

	tag, err := ar.db.Exec(ctx, `DELETE FROM autos WHERE id = $1;`, rowID)
	if err != nil {
		return false, fmt.Errorf("could not delete auto: %v", err)
	}

	return tag.RowsAffected() > 0, nil
}
