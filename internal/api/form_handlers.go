package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"slices"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
	"github.com/iamvkosarev/perplexity-chat/internal/usecase"
	"github.com/iamvkosarev/perplexity-chat/pkg/httputil"
)

//go:embed templates/*.html
var templatesFS embed.FS

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

type formView struct {
	State   usecase.FormState
	Options []string
}

// FormHandlers exposes the form as HTML pages and as a small JSON API.
type FormHandlers struct {
	form *usecase.FormUsecase
}

func NewFormHandlers(form *usecase.FormUsecase) *FormHandlers {
	return &FormHandlers{form: form}
}

func (h *FormHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.form.Initial())
}

func (h *FormHandlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	state := usecase.FormState{
		Model:    r.PostFormValue("model"),
		Question: r.PostFormValue("question"),
		Answer:   r.PostFormValue("answer"),
	}
	h.render(w, h.form.Submit(r.Context(), state))
}

func (h *FormHandlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.form.Reset())
}

func (h *FormHandlers) HandleListModels(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, ModelsResponse{Models: h.form.Models(), Default: h.form.DefaultModel()})
}

func (h *FormHandlers) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	answer, err := h.form.Answer(r.Context(), req.Model, req.Question)
	if err != nil {
		log.Printf("api answer failed: %v", err)
		switch {
		case errors.Is(err, model.ErrEmptyModel), errors.Is(err, model.ErrEmptyQuestion):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusBadGateway, "no answer produced")
		}
		return
	}
	httputil.RespondJSON(w, http.StatusOK, AnswerResponse{Answer: answer})
}

func (h *FormHandlers) render(w http.ResponseWriter, state usecase.FormState) {
	options := h.form.Models()
	if state.Model != "" && !slices.Contains(options, state.Model) {
		options = append(options, state.Model)
	}
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, formView{State: state, Options: options}); err != nil {
		log.Printf("failed to render form: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
