package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// BloodType define los tipos de sangre por especie.
// Perros: sistema DEA (1.1 es el clínicamente relevante para donación).
// Gatos: sistema AB.
type BloodType string

const (
	BloodDEA11Positive BloodType = "dea_1.1_positive"
	BloodDEA11Negative BloodType = "dea_1.1_negative"
	BloodDEA3          BloodType = "dea_3"
	BloodDEA4          BloodType = "dea_4"
	BloodDEA7          BloodType = "dea_7"

	BloodCatA  BloodType = "a"
	BloodCatB  BloodType = "b"
	BloodCatAB BloodType = "ab"

	BloodUnknown BloodType = "unknown"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet representa una mascota registrada como posible donante de sangre.
// La coordenada se geocodifica a partir de Address por un colaborador
// externo; puede faltar (nil) y el descubrimiento por cercanía la tolera.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BloodType BloodType
	WeightKg  float64
	BirthDate *time.Time

	Address string
	Lat     *float64
	Lng     *float64

	PhotoURLs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
