package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type OptsFunc func(*Manager)

// Manager orchestrates the lifecycle of user session records: create, read &
// destroy. It holds no state of its own beyond the injected store; every read
// reflects the store's current contents at call time.
type Manager struct {
	store Store
}

// builder

// WithStore sets the session store used by the Manager.
func WithStore(store Store) OptsFunc {
	return func(manager *Manager) {
		manager.store = store
	}
}

// NewManager creates & returns a new Manager with the supplied options. A
// store is required; without one the Manager cannot operate.
func NewManager(opts ...OptsFunc) (*Manager, error) {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		return nil, errors.New("session manager requires a store")
	}
	return m, nil
}

// methods

// CreateUserSession derives the session id for subject, serializes bundle &
// writes it to the store under the derived id, unconditionally overwriting
// any record already there. Re-authentication for the same principal thus
// replaces the stale session rather than leaking a duplicate. The returned id
// is the caller's handle to the session (e.g. a cookie value).
func (m *Manager) CreateUserSession(ctx context.Context, subject string, bundle TokenBundle) (string, error) {

	const op = "CreateUserSession"

	id, err := DeriveID(subject)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(bundle)
	if err != nil {
		// TokenBundle is all plain fields, so this should not happen
		return "", errors.Wrap(err, "failed to serialize token bundle")
	}

	if err := m.store.SetData(ctx, id, raw); err != nil {
		return "", newError(CodeStoreUnavailable, op, "session store unavailable",
			fmt.Sprintf("failed to write session record: %v", err), err)
	}

	log.WithFields(log.Fields{
		"subject": subject,
		"id":      id,
	}).Debug("user session created")
	return id, nil
}

// GetUserSession reads & deserializes the session record stored under id. A
// missing record fails with CodeSessionNotFound; a record that no longer
// deserializes fails with CodeCorruptSession. The id's shape is not checked
// here; an unknown id simply reads as not-found.
func (m *Manager) GetUserSession(ctx context.Context, id string) (*TokenBundle, error) {

	const op = "GetUserSession"

	raw, err := m.store.GetData(ctx, id)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, newError(CodeSessionNotFound, op, "session not found",
				fmt.Sprintf("no session record exists for id %v", id), err)
		}
		return nil, newError(CodeStoreUnavailable, op, "session store unavailable",
			fmt.Sprintf("failed to read session record: %v", err), err)
	}

	var bundle TokenBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, newError(CodeCorruptSession, op, "corrupt session record",
			fmt.Sprintf("stored record for id %v cannot be deserialized: %v", id, err), err)
	}
	return &bundle, nil
}

// DestroyUserSession removes the session record stored under id. The id is
// validated before the store is touched; an empty or malformed id never
// reaches the store's remove. Destroy is idempotent: removing an id with no
// record still returns true, so it is always safe to call on sign-out even
// with a stale handle.
func (m *Manager) DestroyUserSession(ctx context.Context, id string) (bool, error) {

	const op = "DestroyUserSession"

	if id == "" {
		return false, newError(CodeMissingIdentifier, op, "missing session id",
			"cannot destroy a session without an id", nil)
	}

	if !ValidID(id) {
		return false, newError(CodeInvalidSessionID, op, "invalid session id",
			fmt.Sprintf("id %v does not have the shape of a session id", id), nil)
	}

	if err := m.store.RemoveData(ctx, id); err != nil {
		return false, newError(CodeStoreUnavailable, op, "session store unavailable",
			fmt.Sprintf("failed to remove session record: %v", err), err)
	}

	log.WithField("id", id).Debug("user session destroyed")
	return true, nil
}

// UUID returns the session id that subject derives to, without touching the
// store. Convenience for callers that need the id before (or without) a
// session being created.
func (m *Manager) UUID(subject string) (string, error) {
	return DeriveID(subject)
}
