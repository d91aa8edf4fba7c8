package domain

import "context"

type Genero string

const (
	GeneroMasculino Genero = "masculino"
	GeneroFemenino  Genero = "femenino"
	GeneroNoBinario Genero = "no binario"
)

type Persona struct {
	ID                string    `json:"id"`
	DNI               string    `json:"dni"`
	Nombre            string    `json:"nombre"`
	Apellido          string    `json:"apellido"`
	FechaDeNacimiento PlainDate `json:"fechaDeNacimiento"`
	Genero            Genero    `json:"genero"`
	DonanteOrganos    bool      `json:"donanteOrganos"`

	// Autos is a derived view, recomputed from the Auto store on every read.
	// It is never persisted as part of the Persona document.
	Autos []Auto `json:"autos"`
}

// PersonaUpdate carries a partial update; nil fields keep their stored value.
type PersonaUpdate struct {
	DNI               *string    `json:"dni"`
	Nombre            *string    `json:"nombre"`
	Apellido          *string    `json:"apellido"`
	FechaDeNacimiento *PlainDate `json:"fechaDeNacimiento"`
	Genero            *Genero    `json:"genero"`
	DonanteOrganos    *bool      `json:"donanteOrganos"`
}

// ApplyTo merges the patch into an existing Persona.
func (u *PersonaUpdate) ApplyTo(p *Persona) {
	if u.DNI != nil {
		p.DNI = *u.DNI
	}
	if u.Nombre != nil {
		p.Nombre = *u.Nombre
	}
	if u.Apellido != nil {
		p.Apellido = *u.Apellido
	}
	if u.FechaDeNacimiento != nil {
		p.FechaDeNacimiento = *u.FechaDeNacimiento
	}
	if u.Genero != nil {
		p.Genero = *u.Genero
	}
	if u.DonanteOrganos != nil {
		p.DonanteOrganos = *u.DonanteOrganos
	}
}

// PersonaResumen is the listing projection: everything a table view needs,
// without hydrating autos.
type PersonaResumen struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	Apellido       string `json:"apellido"`
	DNI            string `json:"dni"`
	Genero         Genero `json:"genero"`
	DonanteOrganos bool   `json:"donanteOrganos"`
}

// ResumenDe projects a Persona to its listing shape.
func ResumenDe(p Persona) PersonaResumen {
	return PersonaResumen{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Apellido:       p.Apellido,
		DNI:            p.DNI,
		Genero:         p.Genero,
		DonanteOrganos: p.DonanteOrganos,
	}
}

type PersonaRepo interface {
	Repository[Persona, PersonaUpdate]

	// IsDNIUnique reports whether no stored Persona other than ignoreID
	// carries the given DNI. ignoreID may be empty on create.
	IsDNIUnique(ctx context.Context, dni, ignoreID string) (bool, error)
}

type PersonaUseCase interface {
	GetResumenes(ctx context.Context) ([]PersonaResumen, error)
	GetByID(ctx context.Context, id string) (*Persona, error)
	Create(ctx context.Context, persona *Persona) (*Persona, error)
	Update(ctx context.Context, id string, patch *PersonaUpdate) (*Persona, error)
	Delete(ctx context.Context, id string) (bool, error)
}
