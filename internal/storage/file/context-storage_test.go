package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iamvkosarev/perplexity-chat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) (*ContextStorage, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := NewContextStorage(dir)
	require.NoError(t, err)
	return storage, dir
}

func TestContextStorage_RoundTrip(t *testing.T) {
	storage, _ := newStorage(t)
	ctx := context.Background()
	conv := model.NewContext(
		model.NewSystemMessage("Be precise and concise."),
		model.NewUserMessage("Привет, how are you?"),
		model.NewAssistantMessage("Fine.\n\n```go\nfmt.Println(\"ok\")\n```"),
		model.NewUserMessage(""),
	)

	require.NoError(t, storage.Save(ctx, "session", conv))
	loaded, err := storage.Load(ctx, "session")
	require.NoError(t, err)

	assert.Equal(t, conv.Messages(), loaded.Messages())
}

func TestContextStorage_EmptyRoundTrip(t *testing.T) {
	storage, dir := newStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "empty.json", model.NewContext()))
	data, err := os.ReadFile(filepath.Join(dir, "empty.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	loaded, err := storage.Load(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestContextStorage_OnDiskFormat(t *testing.T) {
	storage, dir := newStorage(t)
	conv := model.NewContext(model.NewUserMessage("2+2?"), model.NewAssistantMessage("4"))

	require.NoError(t, storage.Save(context.Background(), "math", conv))

	data, err := os.ReadFile(filepath.Join(dir, "math.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"role":"user","content":"2+2?"},{"role":"assistant","content":"4"}]`, string(data))
}

func TestContextStorage_SaveOverwrites(t *testing.T) {
	storage, _ := newStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "s", model.NewContext(model.NewUserMessage("one"), model.NewUserMessage("two"))))
	require.NoError(t, storage.Save(ctx, "s", model.NewContext(model.NewUserMessage("three"))))

	loaded, err := storage.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []model.Message{model.NewUserMessage("three")}, loaded.Messages())
}

func TestContextStorage_LoadFailure(t *testing.T) {
	storage, dir := newStorage(t)
	ctx := context.Background()

	_, err := storage.Load(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrLoadFailure)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	_, err = storage.Load(ctx, "broken")
	assert.ErrorIs(t, err, model.ErrLoadFailure)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "object.json"), []byte(`{"role":"user"}`), 0o644))
	_, err = storage.Load(ctx, "object")
	assert.ErrorIs(t, err, model.ErrLoadFailure)
}

func TestContextStorage_SaveFailure(t *testing.T) {
	storage, dir := newStorage(t)

	err := storage.Save(context.Background(), filepath.Join(dir, "no-such-dir", "x.json"), model.NewContext())
	assert.ErrorIs(t, err, model.ErrSaveFailure)
}

func TestContextStorage_ExplicitPath(t *testing.T) {
	storage, _ := newStorage(t)
	other := filepath.Join(t.TempDir(), "elsewhere.json")

	require.NoError(t, storage.Save(context.Background(), other, model.NewContext(model.NewUserMessage("x"))))
	_, err := os.Stat(other)
	require.NoError(t, err)

	loaded, err := storage.Load(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestContextStorage_List(t *testing.T) {
	storage, dir := newStorage(t)
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, "b", model.NewContext()))
	require.NoError(t, storage.Save(ctx, "a", model.NewContext()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)
}
