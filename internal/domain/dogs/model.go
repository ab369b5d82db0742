package dogs

import "time"

// Sex define el sexo del perro (valores tal cual los muestra el sitio).
// @Enum Macho, Hembra
type Sex string

const (
	SexMale   Sex = "Macho"
	SexFemale Sex = "Hembra"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Status define si el perro aparece en el catálogo público.
// @Enum available, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusAdopted
}

// Dog es la ficha de un perro del refugio.
// Los adoptados se conservan; solo dejan de mostrarse en el catálogo público.
type Dog struct {
	ID string

	Name   string
	Breed  string
	Age    string // texto libre ("3 años", "6 meses")
	Size   string // texto libre ("Mediano", "Cachorro (Grande cuando adulto)")
	Gender Sex
	Story  string

	// Orden de inserción = orden de despliegue. Se permiten duplicados.
	Personality []string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DogImage es una foto de la galería. La relación se consulta por DogID;
// Dog no guarda la lista.
type DogImage struct {
	ID    string
	DogID string

	ImageURL  string
	ObjectKey string // path dentro del bucket, para poder borrar el blob

	// Orden ascendente = orden de galería. No tiene que ser contiguo ni único.
	DisplayOrder int

	CreatedAt time.Time
}

// DogWithImages es lo que consumen el catálogo y el perfil.
type DogWithImages struct {
	Dog
	Images       []DogImage
	PrimaryImage *DogImage // nil si no tiene fotos
}

// Stats resume el catálogo para el dashboard de admin.
type Stats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Adopted   int `json:"adopted"`
	Recent    int `json:"recent"` // creados en los últimos 7 días
}
