package adoption

import (
	"encoding/json"
	"net/http"

	"refugio-adopciones/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error string `json:"error"`
}

// successResponse documenta la respuesta del modo record; en modo email
// se devuelve el payload del proveedor sin tocar.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func RegisterRoutes(r chi.Router, svc *Service, shelter Shelter, m *metrics.Metrics) {
	r.Post("/send-adoption-info", sendAdoptionInfoHandler(svc, m))
	r.Get("/shelter", shelterHandler(shelter))
}

// sendAdoptionInfoHandler godoc
// @Summary Pedir información de adopción
// @Description Valida el pedido y lo registra o envía el email con la info del refugio. En modo email la respuesta 200 es el payload del proveedor tal cual.
// @Tags adoption
// @Accept json
// @Produce json
// @Param payload body Request true "Datos de contacto"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /send-adoption-info [post]
func sendAdoptionInfoHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		// un body que no parsea es error del cliente: 400, no 500
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			m.IncAdoption("invalid")
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		res, err := svc.Submit(r.Context(), req)
		if err != nil {
			if IsValidation(err) {
				m.IncAdoption("invalid")
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			m.IncAdoption("upstream_error")
			svc.log.Error("send adoption info failed", map[string]any{
				"mode": svc.Mode(),
				"err":  err.Error(),
			})
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		m.IncAdoption("ok")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Payload)
	}
}

// shelterHandler godoc
// @Summary Info de contacto del refugio
// @Tags adoption
// @Produce json
// @Success 200 {object} Shelter
// @Router /shelter [get]
func shelterHandler(shelter Shelter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, shelter)
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
