// internal/domain/session/provider_test.go
package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeStorage is an in-memory session slot with optional write failure
type fakeStorage struct {
	id       string
	writeErr error
}

func (f *fakeStorage) Load(context.Context) (string, bool) {
	return f.id, f.id != ""
}

func (f *fakeStorage) Store(_ context.Context, id string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.id = id
	return nil
}

func TestGetOrCreateReturnsExistingID(t *testing.T) {
	provider := NewProvider(&fakeStorage{id: "session_1_abc"}, newTestLogger())

	assert.Equal(t, "session_1_abc", provider.GetOrCreate(context.Background()))
}

func TestGetOrCreateGeneratesAndPersists(t *testing.T) {
	slot := &fakeStorage{}
	provider := NewProvider(slot, newTestLogger())

	id := provider.GetOrCreate(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, slot.id)
}

func TestGetOrCreateIsStable(t *testing.T) {
	provider := NewProvider(&fakeStorage{}, newTestLogger())

	first := provider.GetOrCreate(context.Background())
	second := provider.GetOrCreate(context.Background())

	assert.Equal(t, first, second)
}

func TestGetOrCreateSurvivesStorageFailure(t *testing.T) {
	slot := &fakeStorage{writeErr: errors.New("cookie jar full")}
	provider := NewProvider(slot, newTestLogger())

	id := provider.GetOrCreate(context.Background())

	assert.NotEmpty(t, id)
	assert.True(t, strings.HasPrefix(id, "session_"))
}

func TestGetOrCreateIsStableWhileStorageFails(t *testing.T) {
	slot := &fakeStorage{writeErr: errors.New("cookie jar full")}
	provider := NewProvider(slot, newTestLogger())

	first := provider.GetOrCreate(context.Background())
	second := provider.GetOrCreate(context.Background())

	assert.Equal(t, first, second)
}

func TestResetIssuesNewID(t *testing.T) {
	slot := &fakeStorage{}
	provider := NewProvider(slot, newTestLogger())

	first := provider.GetOrCreate(context.Background())
	second := provider.Reset(context.Background())

	assert.NotEqual(t, first, second)
	assert.Equal(t, second, slot.id)
	assert.Equal(t, second, provider.GetOrCreate(context.Background()))
}

func TestNewIDFormat(t *testing.T) {
	id := NewID()

	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "session", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 9)
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
