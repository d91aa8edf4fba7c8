package domain

import "github.com/asaskevich/govalidator"

const (
	// DNIPattern accepts 7 to 9 digits with no leading zero, dots or dashes.
	DNIPattern = `^[1-9][0-9]{6,8}$`

	// PatentePattern is the canonical plate format: two uppercase letters, a
	// space, three digits, a space, two uppercase letters. The legacy
	// three-letter/three-digit format is not accepted.
	PatentePattern = `^[A-Z]{2} [0-9]{3} [A-Z]{2}$`

	anioMin = 1850
	anioMax = 2100
)

func IsValidDNI(dni string) bool {
	return govalidator.Matches(dni, DNIPattern)
}

func IsValidPatente(patente string) bool {
	return govalidator.Matches(patente, PatentePattern)
}

func IsValidGenero(g Genero) bool {
	return govalidator.IsIn(string(g),
		string(GeneroMasculino), string(GeneroFemenino), string(GeneroNoBinario))
}

// ValidatePersona checks a Persona as submitted on create or produced by a
// merge. Only nombre and a well-formed DNI are mandatory; apellido, genero and
// the birth date may be filled in later. The returned map is keyed by wire
// field name; nil means valid.
func ValidatePersona(p *Persona) FieldErrors {
	fe := FieldErrors{}
	if p.Nombre == "" {
		fe["nombre"] = "Nombre is required"
	}
	switch {
	case p.DNI == "":
		fe["dni"] = "DNI is required"
	case !IsValidDNI(p.DNI):
		fe["dni"] = "Expected a DNI formatted string, with 7 to 9 digits, no dots or dashes"
	}
	if p.Genero != "" && !IsValidGenero(p.Genero) {
		fe["genero"] = "Genero must be one of: masculino, femenino, no binario"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Validate checks only the fields present in the patch.
func (u *PersonaUpdate) Validate() FieldErrors {
	fe := FieldErrors{}
	if u.DNI != nil && !IsValidDNI(*u.DNI) {
		fe["dni"] = "Expected a DNI formatted string, with 7 to 9 digits, no dots or dashes"
	}
	if u.Nombre != nil && *u.Nombre == "" {
		fe["nombre"] = "Nombre cannot be empty"
	}
	if u.Genero != nil && *u.Genero != "" && !IsValidGenero(*u.Genero) {
		fe["genero"] = "Genero must be one of: masculino, femenino, no binario"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateAuto checks a full Auto, as submitted on create or produced by a
// merge. Owner existence is a service-level concern and not checked here.
func ValidateAuto(a *Auto) FieldErrors {
	fe := FieldErrors{}
	switch {
	case a.Patente == "":
		fe["patente"] = "Patente is required"
	case !IsValidPatente(a.Patente):
		fe["patente"] = "Patente must match the XX 000 XX format"
	}
	if a.Marca == "" {
		fe["marca"] = "Marca is required"
	}
	if a.Modelo == "" {
		fe["modelo"] = "Modelo is required"
	}
	if !govalidator.InRangeInt(a.Anio, anioMin, anioMax) {
		fe["anio"] = "Anio must be between 1850 and 2100"
	}
	if a.PersonaID == "" {
		fe["personaID"] = "PersonaID is required"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Validate checks only the fields present in the patch. A PersonaID field is
// rejected outright: the owner of an Auto cannot be changed.
func (u *AutoUpdate) Validate() FieldErrors {
	fe := FieldErrors{}
	if u.PersonaID != nil {
		fe["personaID"] = "The owner of an Auto cannot be changed"
	}
	if u.Patente != nil && !IsValidPatente(*u.Patente) {
		fe["patente"] = "Patente must match the XX 000 XX format"
	}
	if u.Marca != nil && *u.Marca == "" {
		fe["marca"] = "Marca cannot be empty"
	}
	if u.Modelo != nil && *u.Modelo == "" {
		fe["modelo"] = "Modelo cannot be empty"
	}
	if u.Anio != nil && !govalidator.InRangeInt(*u.Anio, anioMin, anioMax) {
		fe["anio"] = "Anio must be between 1850 and 2100"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}
