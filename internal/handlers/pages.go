package handlers

import (
	"net/http"

	"kenics-pageant-site/internal/backend"
	"kenics-pageant-site/internal/data"
	"kenics-pageant-site/internal/models"
	"kenics-pageant-site/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PageHandler serves the public site pages
type PageHandler struct {
	reader   *data.Reader
	votes    *services.VoteService
	payments *services.PaymentService
	renderer *Renderer
}

// NewPageHandler creates a page handler
func NewPageHandler(reader *data.Reader, votes *services.VoteService, payments *services.PaymentService, renderer *Renderer) *PageHandler {
	return &PageHandler{
		reader:   reader,
		votes:    votes,
		payments: payments,
		renderer: renderer,
	}
}

type categoryView struct {
	ID    models.Category
	Label string
	Fee   int
}

func (h *PageHandler) categories() []categoryView {
	cats := h.votes.Categories()
	views := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, categoryView{
			ID:    c,
			Label: h.votes.CategoryLabel(c),
			Fee:   h.votes.RegistrationFee(c),
		})
	}
	return views
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, "home.tmpl", map[string]interface{}{
		"Title":      "Kenics Pageant 2025",
		"Categories": h.categories(),
	})
}

// Models handles GET /models, with an optional category filter
func (h *PageHandler) Models(w http.ResponseWriter, r *http.Request) {
	contestants, err := h.reader.Contestants(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load contestants")
		h.renderer.render(w, "error.tmpl", map[string]interface{}{
			"Title":   "Models",
			"Message": "We could not load the contestants right now. Please try again shortly.",
		})
		return
	}

	selected := models.Category(r.URL.Query().Get("category"))
	if selected != "" && selected.Valid() {
		filtered := contestants[:0:0]
		for _, c := range contestants {
			if c.Category == selected {
				filtered = append(filtered, c)
			}
		}
		contestants = filtered
	} else {
		selected = ""
	}

	h.renderer.render(w, "models.tmpl", map[string]interface{}{
		"Title":       "Meet the Contestants",
		"Contestants": contestants,
		"Categories":  h.categories(),
		"Selected":    selected,
	})
}

// ModelDetail handles GET /models/{id}
func (h *PageHandler) ModelDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	contestant, err := h.reader.Contestant(r.Context(), id)
	if err != nil {
		if backend.IsNotFound(err) {
			w.WriteHeader(http.StatusNotFound)
			h.renderer.render(w, "error.tmpl", map[string]interface{}{
				"Title":   "Model Not Found",
				"Message": "The model you're looking for doesn't exist.",
			})
			return
		}
		log.Error().Err(err).Str("id", id).Msg("Failed to load contestant")
		h.renderer.render(w, "error.tmpl", map[string]interface{}{
			"Title":   "Model Not Found",
			"Message": "We could not load this model right now. Please try again shortly.",
		})
		return
	}

	h.renderer.render(w, "model_detail.tmpl", map[string]interface{}{
		"Title":         contestant.FullName(),
		"Contestant":    contestant,
		"CategoryLabel": h.votes.CategoryLabel(contestant.Category),
		"VotePackages":  h.votes.Packages(),
	})
}

// PaymentComplete handles GET /payment-complete, the post-payment redirect
// target.
func (h *PageHandler) PaymentComplete(w http.ResponseWriter, r *http.Request) {
	status, tx := h.payments.Verify(r.URL.Query())

	h.renderer.render(w, "payment_complete.tmpl", map[string]interface{}{
		"Title":       "Payment Status",
		"Success":     status == services.PaymentSuccess,
		"Transaction": tx,
	})
}

// Health handles GET /health
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
