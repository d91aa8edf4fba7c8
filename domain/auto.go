package domain

import "context"

type Auto struct {
	ID        string `json:"id"`
	Patente   string `json:"patente"`
	Marca     string `json:"marca"`
	Modelo    string `json:"modelo"`
	Anio      int    `json:"anio"`
	Color     string `json:"color"`
	NroChasis string `json:"nroChasis"`
	NroMotor  string `json:"nroMotor"`

	// PersonaID references the owning Persona and is immutable after
	// creation.
	PersonaID string `json:"personaID"`
}

// AutoUpdate carries a partial update; nil fields keep their stored value.
// PersonaID is present only so its appearance in a payload can be rejected.
type AutoUpdate struct {
	Patente   *string `json:"patente"`
	Marca     *string `json:"marca"`
	Modelo    *string `json:"modelo"`
	Anio      *int    `json:"anio"`
	Color     *string `json:"color"`
	NroChasis *string `json:"nroChasis"`
	NroMotor  *string `json:"nroMotor"`
	PersonaID *string `json:"personaID"`
}

// ApplyTo merges the patch into an existing Auto. The owner reference is
// deliberately left alone.
func (u *AutoUpdate) ApplyTo(a *Auto) {
	if u.Patente != nil {
		a.Patente = *u.Patente
	}
	if u.Marca != nil {
		a.Marca = *u.Marca
	}
	if u.Modelo != nil {
		a.Modelo = *u.Modelo
	}
	if u.Anio != nil {
		a.Anio = *u.Anio
	}
	if u.Color != nil {
		a.Color = *u.Color
	}
	if u.NroChasis != nil {
		a.NroChasis = *u.NroChasis
	}
	if u.NroMotor != nil {
		a.NroMotor = *u.NroMotor
	}
}

type AutoRepo interface {
	Repository[Auto, AutoUpdate]
}

type AutoUseCase interface {
	GetAll(ctx context.Context) ([]Auto, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]Auto, error)
	GetByID(ctx context.Context, id string) (*Auto, error)
	Create(ctx context.Context, auto *Auto) (*Auto, error)
	Update(ctx context.Context, id string, patch *AutoUpdate) (*Auto, error)
	Delete(ctx context.Context, id string) (bool, error)
}
