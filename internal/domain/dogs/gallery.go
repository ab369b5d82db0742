package dogs

import "sort"

// SortGallery devuelve una copia ordenada por DisplayOrder asc.
// Empates: CreatedAt asc y, si también empata, el orden en que vinieron
// (los repos devuelven en orden de inserción).
func SortGallery(imgs []DogImage) []DogImage {
	out := make([]DogImage, len(imgs))
	copy(out, imgs)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// PrimaryImage es la portada: la de menor DisplayOrder.
func PrimaryImage(imgs []DogImage) (DogImage, bool) {
	if len(imgs) == 0 {
		return DogImage{}, false
	}
	return SortGallery(imgs)[0], true
}

// nextDisplayOrder continúa después del máximo actual (0 si no hay fotos).
func nextDisplayOrder(imgs []DogImage) int {
	if len(imgs) == 0 {
		return 0
	}
	highest := imgs[0].DisplayOrder
	for _, img := range imgs[1:] {
		if img.DisplayOrder > highest {
			highest = img.DisplayOrder
		}
	}
	return highest + 1
}

func withGallery(d Dog, imgs []DogImage) DogWithImages {
	sorted := SortGallery(imgs)
	out := DogWithImages{Dog: d, Images: sorted}
	if len(sorted) > 0 {
		p := sorted[0]
		out.PrimaryImage = &p
	}
	return out
}
