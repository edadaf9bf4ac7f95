package nlu

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	errx "github.com/kdhyo/ledger-ai/internal/core/error"
)

// Backend is the NLU collaborator: one synchronous chat call expected (but
// not guaranteed) to return a JSON intent object. Implementations must be
// comparable values (pointers are fine) so they can key the prompt cache.
type Backend interface {
	Chat(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ModelBackend adapts an eino chat model to the Backend interface.
type ModelBackend struct {
	model einomodel.BaseChatModel
	name  string
}

func NewModelBackend(m einomodel.BaseChatModel, name string) *ModelBackend {
	return &ModelBackend{model: m, name: name}
}

// Name identifies the underlying model, for logs.
func (b *ModelBackend) Name() string {
	return b.name
}

func (b *ModelBackend) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	out, err := b.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userMessage),
	})
	if err != nil {
		return "", errx.WrapBackend(err)
	}
	if out == nil {
		return "", errx.WrapBackend(fmt.Errorf("empty model response"))
	}
	return out.Content, nil
}
