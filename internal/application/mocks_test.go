package application

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// mockBackendAPI returns canned results and counts calls.
type mockBackendAPI struct {
	files       model.APIResult[model.FileListing]
	filesErr    error
	logout      model.APIResult[json.RawMessage]
	logoutErr   error
	listCalls   int
	logoutCalls int
}

func (m *mockBackendAPI) ListFiles(_ context.Context) (model.APIResult[model.FileListing], error) {
	m.listCalls++
	return m.files, m.filesErr
}

func (m *mockBackendAPI) Logout(_ context.Context) (model.APIResult[json.RawMessage], error) {
	m.logoutCalls++
	return m.logout, m.logoutErr
}

// mockBackendClient records probes and answers with a fixed result.
type mockBackendClient struct {
	result     model.AuthProbeResult
	probedWith []string
}

func (m *mockBackendClient) Issue(_ context.Context, _ model.RequestDescriptor) (*http.Response, error) {
	panic("Issue not expected")
}

func (m *mockBackendClient) Probe(_ context.Context, token string) model.AuthProbeResult {
	m.probedWith = append(m.probedWith, token)
	if token == "" {
		return model.AuthProbeResult{Outcome: model.ProbeNoCredential}
	}
	return m.result
}

// memoryChatStore is an in-memory ChatStore.
type memoryChatStore struct {
	mu        sync.Mutex
	convs     map[string]*model.Conversation
	createErr error
}

func newMemoryChatStore() *memoryChatStore {
	return &memoryChatStore{convs: make(map[string]*model.Conversation)}
}

func (m *memoryChatStore) Create(_ context.Context, conv model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	conv.Messages = nil
	m.convs[conv.ID] = &conv
	return nil
}

func (m *memoryChatStore) List(_ context.Context) ([]model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Conversation, 0, len(m.convs))
	for _, c := range m.convs {
		cp := *c
		cp.Messages = nil
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memoryChatStore) Get(_ context.Context, id string) (*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Messages = append([]model.Message(nil), c.Messages...)
	return &cp, nil
}

func (m *memoryChatStore) AppendMessages(_ context.Context, id string, msgs ...model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	if !ok {
		return driven.ErrConversationNotFound
	}
	for _, msg := range msgs {
		c.Messages = append(c.Messages, msg)
		if msg.CreatedAt.After(c.UpdatedAt) {
			c.UpdatedAt = msg.CreatedAt
		}
	}
	return nil
}
