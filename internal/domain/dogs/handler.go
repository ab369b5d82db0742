package dogs

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultMaxUploadBytes = 32 << 20

// RegisterRoutes monta el catálogo público.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listAvailableHandler(svc))
		dr.Get("/{dogID}", getPublicDogHandler(svc))
	})
}

// RegisterAdminRoutes monta el editor de admin. El caller es responsable de
// poner delante middleware.RequireAdmin.
func RegisterAdminRoutes(r chi.Router, svc *Service, maxUploadBytes int64) {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}

	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listAllHandler(svc))
		dr.Post("/", createDogHandler(svc, maxUploadBytes))
		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Patch("/{dogID}", updateDogHandler(svc))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
		dr.Post("/{dogID}/images", addImagesHandler(svc, maxUploadBytes))
	})
	r.Delete("/images/{imageID}", removeImageHandler(svc))
	r.Get("/stats", statsHandler(svc))
}

// personalityField acepta ["a","b"] o "a, b" (como el formulario original).
type personalityField []string

func (p *personalityField) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*p = list
		return nil
	}
	var csv string
	if err := json.Unmarshal(b, &csv); err != nil {
		return errors.New("personality must be an array of strings or a comma separated string")
	}
	*p = splitPersonality(csv)
	return nil
}

// dogRequest es el cuerpo para crear un perro.
type dogRequest struct {
	Name        string           `json:"name"`
	Breed       string           `json:"breed"`
	Age         string           `json:"age"`
	Size        string           `json:"size"`
	Gender      Sex              `json:"gender" enums:"Macho,Hembra"`
	Story       string           `json:"story"`
	Personality personalityField `json:"personality" swaggertype:"array,string"`
	Status      Status           `json:"status" enums:"available,adopted"` // opcional, default available
}

// updateDogRequest: punteros para PATCH real, nil = no tocar.
type updateDogRequest struct {
	Name        *string           `json:"name"`
	Breed       *string           `json:"breed"`
	Age         *string           `json:"age"`
	Size        *string           `json:"size"`
	Gender      *Sex              `json:"gender" enums:"Macho,Hembra"`
	Story       *string           `json:"story"`
	Personality *personalityField `json:"personality" swaggertype:"array,string"`
	Status      *Status           `json:"status" enums:"available,adopted"`
}

// imageResponse es una foto de la galería.
type imageResponse struct {
	ID           string    `json:"id"`
	DogID        string    `json:"dog_id"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// dogResponse es la ficha de un perro devuelta por la API.
type dogResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Breed           string          `json:"breed"`
	Age             string          `json:"age"`
	Size            string          `json:"size"`
	Gender          Sex             `json:"gender"`
	Story           string          `json:"story"`
	Personality     []string        `json:"personality"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	PrimaryImageURL string          `json:"primary_image_url,omitempty"`
}

// dogDetailResponse es la ficha con galería; "images" siempre sale, vacío si no hay fotos.
type dogDetailResponse struct {
	dogResponse
	Images []imageResponse `json:"images"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listAvailableHandler godoc
// @Summary Catálogo público
// @Description Perros disponibles para adopción, más nuevos primero, con su foto de portada.
// @Tags dogs
// @Produce json
// @Success 200 {array} dogResponse
// @Failure 500 {object} errorResponse
// @Router /dogs [get]
func listAvailableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			svc.log.Error("list available dogs failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			resp := toDogResponse(d.Dog)
			if d.PrimaryImage != nil {
				resp.PrimaryImageURL = d.PrimaryImage.ImageURL
			}
			out = append(out, resp)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPublicDogHandler godoc
// @Summary Perfil público de un perro
// @Description Ficha con galería ordenada. Un perro adoptado responde 404.
// @Tags dogs
// @Produce json
// @Param dogID path string true "ID del perro"
// @Success 200 {object} dogDetailResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /dogs/{dogID} [get]
func getPublicDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetPublic(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeServiceError(w, svc, err, "dog not found")
			return
		}
		writeJSON(w, http.StatusOK, toDogWithImagesResponse(d))
	}
}

// listAllHandler godoc
// @Summary Listado de admin
// @Description Todos los perros (disponibles y adoptados), más nuevos primero. Requiere rol admin.
// @Tags admin
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} dogResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /admin/dogs [get]
func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			svc.log.Error("list dogs failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getDogHandler godoc
// @Summary Ficha de admin
// @Description Ficha con galería, cualquier estado. Requiere rol admin.
// @Tags admin
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param dogID path string true "ID del perro"
// @Success 200 {object} dogDetailResponse
// @Failure 404 {object} errorResponse
// @Router /admin/dogs/{dogID} [get]
func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeServiceError(w, svc, err, "dog not found")
			return
		}
		writeJSON(w, http.StatusOK, toDogWithImagesResponse(d))
	}
}

// createDogHandler godoc
// @Summary Crear perro
// @Description Acepta JSON, o multipart/form-data con los mismos campos más archivos `images`. Si alguna foto falla no queda nada creado. Requiere rol admin.
// @Tags admin
// @Accept json,mpfd
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body dogRequest true "Datos del perro"
// @Success 201 {object} dogDetailResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/dogs [post]
func createDogHandler(svc *Service, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			req     dogRequest
			uploads []Upload
		)

		if isMultipart(r) {
			form, cleanup, err := parseMultipart(w, r, maxUploadBytes)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			defer cleanup()

			req = dogRequestFromForm(form)
			uploads, err = openUploads(form.File["images"])
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid image file")
				return
			}
			defer closeUploads(uploads)
		} else {
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		in := CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         req.Age,
			Size:        req.Size,
			Gender:      req.Gender,
			Story:       req.Story,
			Personality: req.Personality,
			Status:      req.Status,
		}

		d, err := svc.CreateWithImages(r.Context(), in, uploads)
		if err != nil {
			writeServiceError(w, svc, err, "dog not found")
			return
		}
		writeJSON(w, http.StatusCreated, toDogWithImagesResponse(d))
	}
}

// updateDogHandler godoc
// @Summary Actualizar perro
// @Description PATCH parcial; los campos omitidos no se tocan. El estado puede ir y volver entre available y adopted. Requiere rol admin.
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param dogID path string true "ID del perro"
// @Param payload body updateDogRequest true "Campos a cambiar"
// @Success 200 {object} dogResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /admin/dogs/{dogID} [patch]
func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateDogRequest
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{
			Name:   req.Name,
			Breed:  req.Breed,
			Age:    req.Age,
			Size:   req.Size,
			Gender: req.Gender,
			Story:  req.Story,
			Status: req.Status,
		}
		if req.Personality != nil {
			p := []string(*req.Personality)
			in.Personality = &p
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "dogID"), in)
		if err != nil {
			writeServiceError(w, svc, err, "dog not found")
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// deleteDogHandler godoc
// @Summary Borrar perro
// @Description Borra el perro y sus fotos. Requiere rol admin.
// @Tags admin
// @Param Authorization header string false "Bearer token"
// @Param dogID path string true "ID del perro"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /admin/dogs/{dogID} [delete]
func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			writeServiceError(w, svc, err, "dog not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addImagesHandler godoc
// @Summary Agregar fotos
// @Description multipart/form-data con archivos `images`. Se agregan después de la última foto; si una falla no queda ninguna del lote. Requiere rol admin.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param dogID path string true "ID del perro"
// @Param images formData file true "Fotos"
// @Success 201 {array} imageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/dogs/{dogID}/images [post]
func addImagesHandler(svc *Service, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isMultipart(r) {
			writeError(w, http.StatusBadRequest, "multipart/form-data required")
			return
		}
		form, cleanup, err := parseMultipart(w, r, maxUploadBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer cleanup()

		files := form.File["images"]
		if len(files) == 0 {
			writeError(w, http.StatusBadRequest, "images required")
			return
		}
		uploads, err := openUploads(files)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid image file")
			return
		}
		defer closeUploads(uploads)

		gallery, err := svc.AddImages(r.Context(), chi.URLParam(r, "dogID"), uploads)
		if err != nil {
			writeServiceError(w, svc, err, "dog not found")
			return
		}

		out := make([]imageResponse, 0, len(gallery))
		for _, img := range gallery {
			out = append(out, toImageResponse(img))
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// removeImageHandler godoc
// @Summary Quitar foto
// @Tags admin
// @Param Authorization header string false "Bearer token"
// @Param imageID path string true "ID de la foto"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /admin/images/{imageID} [delete]
func removeImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveImage(r.Context(), chi.URLParam(r, "imageID")); err != nil {
			writeServiceError(w, svc, err, "image not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// statsHandler godoc
// @Summary Resumen del catálogo
// @Tags admin
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} Stats
// @Router /admin/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			svc.log.Error("stats failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func writeServiceError(w http.ResponseWriter, svc *Service, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		svc.log.Error("dogs request failed", map[string]any{"err": err.Error()})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) (*multipart.Form, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, func() {}, errors.New("invalid multipart form")
	}
	form := r.MultipartForm
	return form, func() { _ = form.RemoveAll() }, nil
}

func dogRequestFromForm(form *multipart.Form) dogRequest {
	get := func(k string) string {
		if v := form.Value[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	return dogRequest{
		Name:        get("name"),
		Breed:       get("breed"),
		Age:         get("age"),
		Size:        get("size"),
		Gender:      Sex(get("gender")),
		Story:       get("story"),
		Personality: splitPersonality(get("personality")),
		Status:      Status(get("status")),
	}
}

func openUploads(files []*multipart.FileHeader) ([]Upload, error) {
	out := make([]Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			closeUploads(out)
			return nil, err
		}
		out = append(out, Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return out, nil
}

func closeUploads(uploads []Upload) {
	for _, up := range uploads {
		if c, ok := up.Body.(multipart.File); ok {
			_ = c.Close()
		}
	}
}

func splitPersonality(csv string) []string {
	return NormalizePersonality(strings.Split(csv, ","))
}

func toDogResponse(d Dog) dogResponse {
	personality := d.Personality
	if personality == nil {
		personality = []string{}
	}
	return dogResponse{
		ID:          d.ID,
		Name:        d.Name,
		Breed:       d.Breed,
		Age:         d.Age,
		Size:        d.Size,
		Gender:      d.Gender,
		Story:       d.Story,
		Personality: personality,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDogWithImagesResponse(d DogWithImages) dogDetailResponse {
	resp := dogDetailResponse{dogResponse: toDogResponse(d.Dog)}
	if d.PrimaryImage != nil {
		resp.PrimaryImageURL = d.PrimaryImage.ImageURL
	}
	resp.Images = make([]imageResponse, 0, len(d.Images))
	for _, img := range d.Images {
		resp.Images = append(resp.Images, toImageResponse(img))
	}
	return resp
}

func toImageResponse(img DogImage) imageResponse {
	return imageResponse{
		ID:           img.ID,
		DogID:        img.DogID,
		ImageURL:     img.ImageURL,
		DisplayOrder: img.DisplayOrder,
		CreatedAt:    img.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (dogs/adoption)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
