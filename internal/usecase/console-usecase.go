package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/iamvkosarev/perplexity-chat/config"
	"github.com/iamvkosarev/perplexity-chat/internal/model"
)

const (
	MessageSelectModel    = "Available models:"
	MessageModelPrompt    = "Enter the key of the model you want to select: "
	MessageInvalidModel   = "Invalid key. Please try again."
	MessageSelectedModel  = "Using model %s. Type %s to save and quit."
	MessageQuestionPrompt = "What is your question? "
	MessageNoAnswer       = "No answer produced: %v"
	MessageLoadPrompt     = "Load a saved conversation (empty to start a new one): "
	MessageLoadFailed     = "Failed to load conversation: %v"
	MessageLoaded         = "Loaded %d messages from %s"
	MessageSavedContexts  = "Saved conversations: %s"
	MessageSavePrompt     = "Save conversation to file or existing file name [%s]: "
	MessageSaveFailed     = "Failed to save conversation: %v"
	MessageSaved          = "Conversation saved to %s"
)

var (
	ErrNoModels = errors.New("no models to select from")
)

type LineReader interface {
	Prompt(prompt string) (string, error)
}

type ContextStorage interface {
	Load(ctx context.Context, name string) (*model.Context, error)
	Save(ctx context.Context, name string, conv *model.Context) error
}

type ContextLister interface {
	List(ctx context.Context) ([]string, error)
}

type MarkdownRenderer interface {
	Render(in string) (string, error)
}

type ConsoleUsecaseDeps struct {
	Input     LineReader
	Output    io.Writer
	Completer Completer
	Storage   ContextStorage
	// Renderer is optional, answers are printed as plain text without it.
	Renderer MarkdownRenderer
}

// ConsoleUsecase is the interactive loop. Unlike the form it sends the whole
// accumulated conversation with every question.
type ConsoleUsecase struct {
	ConsoleUsecaseDeps
	cfg          config.Console
	systemPrompt string
	newName      func() string
}

func NewConsoleUsecase(cfg config.Console, systemPrompt string, deps ConsoleUsecaseDeps) *ConsoleUsecase {
	return &ConsoleUsecase{
		ConsoleUsecaseDeps: deps,
		cfg:                cfg,
		systemPrompt:       systemPrompt,
		newName: func() string {
			return fmt.Sprintf("context-%s.json", uuid.NewString())
		},
	}
}

// Run asks for a model once and then answers questions until the quit token,
// after which conv is saved. It returns only on quit or when saving can not
// read a file name.
func (c *ConsoleUsecase) Run(ctx context.Context, conv *model.Context) error {
	aiModel, err := c.SelectModel()
	if err != nil {
		return err
	}
	c.println(infoStyle.Render(fmt.Sprintf(MessageSelectedModel, aiModel, c.cfg.QuitToken)))

	if conv.Len() == 0 && c.systemPrompt != "" {
		conv.Append(model.NewSystemMessage(c.systemPrompt))
	}

	for {
		question, err := c.Input.Prompt(MessageQuestionPrompt)
		if err != nil {
			log.Printf("question prompt closed: %v", err)
			return c.SaveContext(ctx, conv)
		}
		question = strings.TrimSpace(question)
		if question == c.cfg.QuitToken {
			return c.SaveContext(ctx, conv)
		}
		if question == "" {
			continue
		}

		answer, err := c.Ask(ctx, aiModel, conv, question)
		if err != nil {
			c.println(errorStyle.Render(fmt.Sprintf(MessageNoAnswer, err)))
			continue
		}
		c.printAnswer(answer)
	}
}

// SelectModel prints the numbered model list and re-prompts until a listed
// key is entered.
func (c *ConsoleUsecase) SelectModel() (string, error) {
	if len(c.cfg.Models) == 0 {
		return "", ErrNoModels
	}
	c.println(headerStyle.Render(MessageSelectModel))
	for i, aiModel := range c.cfg.Models {
		c.println(menuKeyStyle.Render(fmt.Sprintf("%d:", i+1)) + " " + aiModel)
	}

	for {
		input, err := c.Input.Prompt(MessageModelPrompt)
		if err != nil {
			return "", fmt.Errorf("failed to read model selection: %w", err)
		}
		key, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || key < 1 || key > len(c.cfg.Models) {
			c.println(errorStyle.Render(MessageInvalidModel))
			continue
		}
		return c.cfg.Models[key-1], nil
	}
}

// Ask appends question to conv, sends the whole conversation and appends the
// answer. On failure the question is taken back out of conv.
func (c *ConsoleUsecase) Ask(ctx context.Context, aiModel string, conv *model.Context, question string) (string, error) {
	conv.Append(model.NewUserMessage(question))
	answer, err := c.Completer.Complete(ctx, aiModel, conv.Messages())
	if err != nil {
		conv.DropLast()
		log.Printf("failed to get answer from %s: %v", aiModel, err)
		return "", err
	}
	conv.Append(model.NewAssistantMessage(answer))
	return answer, nil
}

// LoadContext loads the conversation called name. When name is empty or can
// not be loaded the user is asked for another one; an empty reply starts a
// new conversation.
func (c *ConsoleUsecase) LoadContext(ctx context.Context, name string) *model.Context {
	if name != "" {
		if conv, ok := c.tryLoad(ctx, name); ok {
			return conv
		}
	}

	if lister, ok := c.Storage.(ContextLister); ok {
		if names, err := lister.List(ctx); err == nil && len(names) > 0 {
			c.println(infoStyle.Render(fmt.Sprintf(MessageSavedContexts, strings.Join(names, ", "))))
		}
	}
	for {
		input, err := c.Input.Prompt(MessageLoadPrompt)
		if err != nil {
			log.Printf("load prompt closed, starting a new conversation: %v", err)
			return model.NewContext()
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return model.NewContext()
		}
		if conv, ok := c.tryLoad(ctx, input); ok {
			return conv
		}
	}
}

func (c *ConsoleUsecase) tryLoad(ctx context.Context, name string) (*model.Context, bool) {
	conv, err := c.Storage.Load(ctx, name)
	if err != nil {
		log.Printf("failed to load context %s: %v", name, err)
		c.println(errorStyle.Render(fmt.Sprintf(MessageLoadFailed, err)))
		return nil, false
	}
	c.println(infoStyle.Render(fmt.Sprintf(MessageLoaded, conv.Len(), name)))
	return conv, true
}

// SaveContext asks for a file name until conv is saved. An empty reply uses a
// generated name.
func (c *ConsoleUsecase) SaveContext(ctx context.Context, conv *model.Context) error {
	defaultName := c.newName()
	for {
		name, err := c.Input.Prompt(fmt.Sprintf(MessageSavePrompt, defaultName))
		if err != nil {
			return fmt.Errorf("%w: failed to read file name: %w", model.ErrSaveFailure, err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = defaultName
		}
		if err = c.Storage.Save(ctx, name, conv); err != nil {
			log.Printf("failed to save context %s: %v", name, err)
			c.println(errorStyle.Render(fmt.Sprintf(MessageSaveFailed, err)))
			continue
		}
		c.println(infoStyle.Render(fmt.Sprintf(MessageSaved, name)))
		return nil
	}
}

func (c *ConsoleUsecase) printAnswer(answer string) {
	if c.Renderer != nil {
		rendered, err := c.Renderer.Render(answer)
		if err == nil {
			c.println(rendered)
			return
		}
		log.Printf("failed to render answer: %v", err)
	}
	c.println(headerStyle.Render("Answer:") + " " + answerStyle.Render(answer))
}

func (c *ConsoleUsecase) println(s string) {
	fmt.Fprintln(c.Output, s)
}
