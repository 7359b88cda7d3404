package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_InitialDoesNotSubmit(t *testing.T) {
	completer := &fakeCompleter{}
	form := NewFormUsecase(FormUsecaseDeps{Completer: completer}, "codellama-34b-instruct", []string{"a", "b"})

	assert.Equal(t, FormState{Model: "codellama-34b-instruct"}, form.Initial())
	assert.Equal(t, []string{"a", "b"}, form.Models())
	assert.Empty(t, completer.calls)
}

func TestForm_SubmitSendsSingleMessage(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"4"}}
	form := NewFormUsecase(FormUsecaseDeps{Completer: completer}, "b", []string{"a", "b"})

	state := form.Submit(context.Background(), FormState{Model: "a", Question: "2+2?", Answer: "old"})

	assert.Equal(t, FormState{Model: "a", Question: "2+2?", Answer: "4"}, state)
	require.Len(t, completer.calls, 1)
	assert.Equal(t, "a", completer.calls[0].Model)
	assert.Equal(t, []model.Message{{Role: model.RoleUser, Content: "2+2?"}}, completer.calls[0].Messages)
}

func TestForm_SubmitNeedsModelAndQuestion(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"never"}}
	form := NewFormUsecase(FormUsecaseDeps{Completer: completer}, "a", nil)

	for _, state := range []FormState{
		{Model: "", Question: "2+2?", Answer: "kept"},
		{Model: "a", Question: "", Answer: "kept"},
		{Model: "a", Question: "   ", Answer: "kept"},
	} {
		assert.Equal(t, state, form.Submit(context.Background(), state))
	}
	assert.Empty(t, completer.calls)
}

func TestForm_SubmitFailureLeavesAnswer(t *testing.T) {
	completer := &fakeCompleter{errs: []error{fmt.Errorf("%w: boom", model.ErrRequestFailure)}}
	form := NewFormUsecase(FormUsecaseDeps{Completer: completer}, "a", nil)
	before := FormState{Model: "a", Question: "why?", Answer: "previous answer"}

	assert.Equal(t, before, form.Submit(context.Background(), before))
	assert.Len(t, completer.calls, 1)
}

func TestForm_Reset(t *testing.T) {
	form := NewFormUsecase(FormUsecaseDeps{Completer: &fakeCompleter{}}, "codellama-34b-instruct", nil)

	for i := 0; i < 3; i++ {
		assert.Equal(t, FormState{Model: "codellama-34b-instruct"}, form.Reset())
	}
}

func TestForm_Answer(t *testing.T) {
	form := NewFormUsecase(FormUsecaseDeps{Completer: &fakeCompleter{answers: []string{"yes"}}}, "a", nil)

	_, err := form.Answer(context.Background(), "", "q")
	assert.ErrorIs(t, err, model.ErrEmptyModel)
	_, err = form.Answer(context.Background(), "a", "")
	assert.ErrorIs(t, err, model.ErrEmptyQuestion)

	answer, err := form.Answer(context.Background(), "a", "q")
	require.NoError(t, err)
	assert.Equal(t, "yes", answer)
}
