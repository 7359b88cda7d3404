package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
)

type Completer interface {
	Complete(ctx context.Context, aiModel string, messages []model.Message) (string, error)
}

// FormState is everything the single-page form shows.
type FormState struct {
	Model    string `json:"model"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FormUsecaseDeps struct {
	Completer Completer
}

// FormUsecase drives the form. Every submit sends only the current question,
// earlier answers are never part of the request.
type FormUsecase struct {
	FormUsecaseDeps
	defaultModel string
	models       []string
}

func NewFormUsecase(deps FormUsecaseDeps, defaultModel string, models []string) *FormUsecase {
	return &FormUsecase{
		FormUsecaseDeps: deps,
		defaultModel:    defaultModel,
		models:          models,
	}
}

func (f *FormUsecase) Models() []string {
	out := make([]string, len(f.models))
	copy(out, f.models)
	return out
}

func (f *FormUsecase) DefaultModel() string {
	return f.defaultModel
}

// Initial is the state shown on page load. Nothing is submitted.
func (f *FormUsecase) Initial() FormState {
	return FormState{Model: f.defaultModel}
}

// Submit fills the answer for state. If the model or question is missing, or
// the request fails, state comes back unchanged.
func (f *FormUsecase) Submit(ctx context.Context, state FormState) FormState {
	log.Printf("form submit: model=%q question length=%d", state.Model, len(state.Question))
	answer, err := f.Answer(ctx, state.Model, state.Question)
	if err != nil {
		log.Printf("form submit produced no answer: %v", err)
		return state
	}
	state.Answer = answer
	return state
}

// Reset restores the default model and clears both text fields.
func (f *FormUsecase) Reset() FormState {
	return FormState{Model: f.defaultModel}
}

func (f *FormUsecase) Answer(ctx context.Context, aiModel, question string) (string, error) {
	if aiModel == "" {
		return "", model.ErrEmptyModel
	}
	if strings.TrimSpace(question) == "" {
		return "", model.ErrEmptyQuestion
	}
	return f.Completer.Complete(ctx, aiModel, []model.Message{model.NewUserMessage(question)})
}
