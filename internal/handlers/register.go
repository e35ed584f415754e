package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"kenics-pageant-site/internal/backend"
	"kenics-pageant-site/internal/data"
	"kenics-pageant-site/internal/form"
	"kenics-pageant-site/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookie    = "pageant_session"
	maxUploadMemory  = 32 << 20
	genericSubmitErr = "There was an error submitting your application. Please try again."
)

// formFieldNames is the fixed list of text fields a registration POST may
// carry, dotted names included.
var formFieldNames = []string{
	"firstName", "lastName", "email", "phone", "dateOfBirth",
	"height", "weight", "category", "bio", "experience", "achievements",
	"socialMedia.instagram", "socialMedia.facebook",
	"socialMedia.twitter", "socialMedia.tiktok",
	"emergencyContact.name", "emergencyContact.relationship",
	"emergencyContact.phone",
	"termsAccepted",
}

// RegisterHandler serves the registration form and its submission pipeline
type RegisterHandler struct {
	sessions *services.SessionService
	reader   *data.Reader
	votes    *services.VoteService
	renderer *Renderer
}

// NewRegisterHandler creates a registration handler
func NewRegisterHandler(sessions *services.SessionService, reader *data.Reader, votes *services.VoteService, renderer *Renderer) *RegisterHandler {
	return &RegisterHandler{
		sessions: sessions,
		reader:   reader,
		votes:    votes,
		renderer: renderer,
	}
}

// draft returns the registration draft for the request's session, creating a
// session when create is set.
func (h *RegisterHandler) draft(w http.ResponseWriter, r *http.Request, create bool) (*services.Registration, bool) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if draft, ok := h.sessions.Get(cookie.Value); ok {
			return draft, true
		}
	}
	if !create {
		return nil, false
	}

	id, draft := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return draft, true
}

// clearSession deletes the request's session, if any
func (h *RegisterHandler) clearSession(r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.sessions.Delete(cookie.Value)
	}
}

// ShowForm handles GET /register
func (h *RegisterHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	draft, _ := h.draft(w, r, true)
	h.renderForm(w, draft.Controller, "")
}

func (h *RegisterHandler) renderForm(w http.ResponseWriter, controller *form.Controller, notice string) {
	categories := make([]map[string]interface{}, 0, 4)
	for _, c := range h.votes.Categories() {
		categories = append(categories, map[string]interface{}{
			"ID":    c,
			"Label": h.votes.CategoryLabel(c),
			"Fee":   h.votes.RegistrationFee(c),
		})
	}

	h.renderer.render(w, "register.tmpl", map[string]interface{}{
		"Title":           "Kenics Pageant Registration",
		"State":           controller.Snapshot(),
		"Errors":          controller.Errors(),
		"Categories":      categories,
		"HasProfilePhoto": controller.ProfilePhoto() != nil,
		"AdditionalCount": len(controller.AdditionalPhotos()),
		"MaxAdditional":   form.MaxAdditionalPhotos,
		"Notice":          notice,
	})
}

type fieldUpdate struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UpdateField handles POST /register/field, the per-keystroke update from the
// form page. It stores the value and clears only that field's error entry.
func (h *RegisterHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, false)
	if !ok {
		respondError(w, "Your registration session has expired. Please reload the form.", http.StatusGone)
		return
	}

	var update fieldUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := draft.Controller.SetField(update.Name, update.Value); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, map[string]string{"field": update.Name}, http.StatusOK)
}

// UploadPhotos handles POST /register/photos: a profile photo replaces the
// single profile slot, additional photos append up to the cap.
func (h *RegisterHandler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, false)
	if !ok {
		respondError(w, "Your registration session has expired. Please reload the form.", http.StatusGone)
		return
	}
	controller := draft.Controller

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	if headers := r.MultipartForm.File["profilePhoto"]; len(headers) > 0 {
		file, err := readUpload(headers[0])
		if err != nil {
			respondError(w, "Failed to read uploaded photo", http.StatusBadRequest)
			return
		}
		controller.SelectProfilePhoto(file)
	}

	if headers := r.MultipartForm.File["additionalPhotos"]; len(headers) > 0 {
		files := make([]backend.File, 0, len(headers))
		for _, header := range headers {
			file, err := readUpload(header)
			if err != nil {
				respondError(w, "Failed to read uploaded photo", http.StatusBadRequest)
				return
			}
			files = append(files, file)
		}
		if err := controller.AddAdditionalPhotos(files...); err != nil {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	respondJSON(w, map[string]interface{}{
		"hasProfilePhoto":  controller.ProfilePhoto() != nil,
		"additionalPhotos": len(controller.AdditionalPhotos()),
	}, http.StatusOK)
}

// RemovePhoto handles DELETE /register/photos/{index}
func (h *RegisterHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.draft(w, r, false)
	if !ok {
		respondError(w, "Your registration session has expired. Please reload the form.", http.StatusGone)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, "Invalid photo index", http.StatusBadRequest)
		return
	}

	if err := draft.Controller.RemoveAdditionalPhoto(index); err != nil {
		respondError(w, err.Error(), http.StatusNotFound)
		return
	}

	respondJSON(w, map[string]interface{}{
		"additionalPhotos": len(draft.Controller.AdditionalPhotos()),
	}, http.StatusOK)
}

// Submit handles POST /register. The posted fields and files are applied to
// the session draft (so the no-script path works in one request), then the
// draft is validated and forwarded to the backend. Draft state survives every
// failure so the user can retry without re-entering data.
func (h *RegisterHandler) Submit(w http.ResponseWriter, r *http.Request) {
	draft, _ := h.draft(w, r, true)
	controller := draft.Controller

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.renderForm(w, controller, genericSubmitErr)
		return
	}

	h.applyRequest(controller, r)

	result, err := controller.Submit(r.Context(), draft.Mutation)
	if err != nil {
		h.renderSubmitError(w, controller, err)
		return
	}

	h.clearSession(r)
	h.reader.Invalidate(r.Context())

	if result.PaymentURL != "" {
		// Full-page redirect to the payment provider, not a client-side
		// route change.
		http.Redirect(w, r, result.PaymentURL, http.StatusSeeOther)
		return
	}

	h.renderer.render(w, "confirmation.tmpl", map[string]interface{}{
		"Title":   "Registration Received",
		"Message": result.Message,
	})
}

func (h *RegisterHandler) renderSubmitError(w http.ResponseWriter, controller *form.Controller, err error) {
	switch {
	case errors.Is(err, form.ErrValidation):
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderForm(w, controller, "Please fill in all required fields")
	case errors.Is(err, data.ErrMutationInFlight):
		w.WriteHeader(http.StatusConflict)
		h.renderForm(w, controller, "Your registration is already being submitted")
	default:
		var apiErr *backend.APIError
		notice := genericSubmitErr
		if errors.As(err, &apiErr) {
			notice = apiErr.Message
		}
		log.Error().Err(err).Msg("Registration submission failed")
		w.WriteHeader(http.StatusBadGateway)
		h.renderForm(w, controller, notice)
	}
}

// applyRequest copies the posted text fields and file selections onto the
// draft. Only fields present in the request are touched, so a JSON-driven
// session submitting with an empty final POST keeps its accumulated state.
func (h *RegisterHandler) applyRequest(controller *form.Controller, r *http.Request) {
	for _, name := range formFieldNames {
		if values, ok := r.Form[name]; ok && len(values) > 0 {
			// Checkboxes post a hidden "false" plus "true" when checked;
			// the last value wins.
			if err := controller.SetField(name, values[len(values)-1]); err != nil {
				log.Warn().Err(err).Str("field", name).Msg("Ignoring unknown form field")
			}
		}
	}

	if r.MultipartForm == nil {
		return
	}
	if headers := r.MultipartForm.File["profilePhoto"]; len(headers) > 0 {
		if file, err := readUpload(headers[0]); err == nil {
			controller.SelectProfilePhoto(file)
		}
	}
	if headers := r.MultipartForm.File["additionalPhotos"]; len(headers) > 0 {
		files := make([]backend.File, 0, len(headers))
		for _, header := range headers {
			if file, err := readUpload(header); err == nil {
				files = append(files, file)
			}
		}
		if err := controller.AddAdditionalPhotos(files...); err != nil {
			log.Warn().Err(err).Msg("Additional photos rejected")
		}
	}
}

// readUpload buffers one uploaded file into a backend file part
func readUpload(header *multipart.FileHeader) (backend.File, error) {
	src, err := header.Open()
	if err != nil {
		return backend.File{}, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return backend.File{}, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return backend.File{
		Filename:    header.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}
