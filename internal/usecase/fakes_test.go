package usecase

import (
	"context"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/iamvkosarev/perplexity-chat/internal/model"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type completeCall struct {
	Model    string
	Messages []model.Message
}

type fakeCompleter struct {
	answers []string
	errs    []error
	calls   []completeCall
}

func (f *fakeCompleter) Complete(_ context.Context, aiModel string, messages []model.Message) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, completeCall{Model: aiModel, Messages: messages})
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.answers) {
		return f.answers[i], nil
	}
	return "", nil
}
