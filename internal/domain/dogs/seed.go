package dogs

import "context"

// SampleDogs son las fichas con las que arrancó el sitio del refugio.
// Se cargan sin fotos; las fotos se suben después desde el panel.
func SampleDogs() []CreateInput {
	return []CreateInput{
		{
			Name:   "Luna",
			Breed:  "Mestiza Golden Retriever",
			Age:    "3 años",
			Size:   "Mediana-Grande",
			Gender: SexFemale,
			Story: "Luna llegó a nuestro refugio hace 6 meses después de ser encontrada vagando por las calles de Curicó. " +
				"A pesar de su difícil pasado, Luna ha demostrado ser una perra increíblemente cariñosa y llena de alegría. " +
				"Le encanta jugar con pelotas, correr en espacios abiertos y recibir caricias. " +
				"Es perfecta para una familia activa que pueda darle el amor y la atención que merece.",
			Personality: []string{"Juguetona", "Cariñosa", "Energética", "Amigable con niños"},
		},
		{
			Name:   "Toby",
			Breed:  "Mestizo Border Collie",
			Age:    "2 años",
			Size:   "Mediano",
			Gender: SexMale,
			Story: "Toby es un perro inteligente y activo que fue rescatado de una situación de abandono en el campo. " +
				"Su energía y entusiasmo son contagiosos. " +
				"Toby necesita una familia que pueda dedicarle tiempo para ejercicio diario y estimulación mental. " +
				"Es excelente aprendiendo trucos nuevos y le encanta participar en actividades al aire libre. " +
				"Sería ideal para alguien que disfrute del senderismo o actividades deportivas.",
			Personality: []string{"Inteligente", "Activo", "Leal", "Obediente"},
		},
		{
			Name:   "Max",
			Breed:  "Mestizo Labrador",
			Age:    "6 meses",
			Size:   "Cachorro (Grande cuando adulto)",
			Gender: SexMale,
			Story: "Max es un cachorro adorable lleno de vida y curiosidad. " +
				"Llegó al refugio junto a sus hermanos cuando tenía apenas 2 meses. " +
				"Es un perrito juguetón que ama explorar y aprender cosas nuevas cada día. " +
				"Max está en la edad perfecta para ser entrenado y adaptarse a su nuevo hogar. " +
				"Necesita una familia paciente que pueda guiarlo en su crecimiento y enseñarle buenos hábitos desde pequeño.",
			Personality: []string{"Curioso", "Juguetón", "Sociable", "Dulce"},
		},
	}
}

// Seed carga SampleDogs solo si el catálogo está vacío.
// Devuelve cuántos perros creó (0 si ya había datos).
func (s *Service) Seed(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	n := 0
	for _, in := range SampleDogs() {
		if _, err := s.Create(ctx, in); err != nil {
			return n, err
		}
		n++
	}
	s.log.Info("catalog seeded", map[string]any{"dogs": n})
	return n, nil
}
