package preview

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	"go.uber.org/zap"
)

// Renderer re-renders an edited document when a session commits.
type Renderer interface {
	Render(ctx context.Context, doc domain.Document) ([]byte, error)
}

type session struct {
	document  domain.Document
	artifact  domain.Artifact
	expiresAt time.Time
}

// Manager holds live preview sessions in memory. Each session owns one
// editable document copy plus the last rendered artifact; closing or
// expiring a session drops both so repeated previews do not accumulate
// PDF buffers.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	node     *snowflake.Node
	clock    clock.Clock
	renderer Renderer
	ttl      time.Duration
	log      *zap.Logger
}

func NewManager(cfg config.Config, node *snowflake.Node, clk clock.Clock, r Renderer, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		node:     node,
		clock:    clk,
		renderer: r,
		ttl:      cfg.Export.SessionTTL,
		log:      log.Named("invoice.preview"),
	}
}

// Open registers a new session around a freshly rendered document.
func (m *Manager) Open(doc domain.Document, pdf []byte) domain.SessionInfo {
	id := m.node.Generate().String()
	artifact := domain.Artifact{Filename: doc.Filename(), Data: pdf}

	m.mu.Lock()
	m.sweepLocked()
	m.sessions[id] = &session{
		document:  doc,
		artifact:  artifact,
		expiresAt: m.clock.Now().Add(m.ttl),
	}
	m.mu.Unlock()

	return domain.SessionInfo{ID: id, Document: doc, Artifact: artifact}
}

// Get returns the session's current state.
func (m *Manager) Get(id string) (domain.SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.getLocked(id)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	return domain.SessionInfo{ID: id, Document: s.document, Artifact: s.artifact}, nil
}

// UpdateField applies one edit and returns the new document copy. The
// stored document is replaced, never mutated in place.
func (m *Manager) UpdateField(id, path, value string) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.getLocked(id)
	if err != nil {
		return domain.Document{}, err
	}

	doc := s.document.Clone()
	switch path {
	case "number":
		doc.Number = value
	case "date":
		doc.Date = value
	case "dueDate":
		doc.DueDate = value
	case "currencySymbol":
		doc.CurrencySymbol = value
	case "company.name":
		doc.Company.Name = value
	case "company.email":
		doc.Company.Email = value
	default:
		return domain.Document{}, domain.ErrUnknownField
	}

	s.document = doc
	s.expiresAt = m.clock.Now().Add(m.ttl)
	return doc, nil
}

// Commit re-renders the edited document and swaps the artifact,
// releasing the previous bytes.
func (m *Manager) Commit(ctx context.Context, id string) (domain.SessionInfo, error) {
	m.mu.Lock()
	s, err := m.getLocked(id)
	if err != nil {
		m.mu.Unlock()
		return domain.SessionInfo{}, err
	}
	doc := s.document
	m.mu.Unlock()

	// Render outside the lock; commits are per-session operations.
	pdf, err := m.renderer.Render(ctx, doc)
	if err != nil {
		return domain.SessionInfo{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, err = m.getLocked(id)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	s.artifact = domain.Artifact{Filename: doc.Filename(), Data: pdf}
	s.expiresAt = m.clock.Now().Add(m.ttl)
	return domain.SessionInfo{ID: id, Document: s.document, Artifact: s.artifact}, nil
}

// Close drops the session and its artifact.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) getLocked(id string) (*session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if m.clock.Now().After(s.expiresAt) {
		delete(m.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) sweepLocked() {
	now := m.clock.Now()
	for id, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, id)
		}
	}
}
