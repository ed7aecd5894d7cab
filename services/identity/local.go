// Package identitysvc provides a self-hosted identity provider backed by the
// document store. It exists so the portal can run without a hosted identity
// service; the rest of the system only ever sees core.IdentityProvider.
package identitysvc

import (
	"context"
	"encoding/json"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/docstore"
)

const accountsCollection = "accounts"

// account is the provider's internal credential record; it never leaves this
// package.
type account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type localProvider struct {
	store docstore.Store

	mu          sync.Mutex
	current     *core.Identity
	subscribers map[int]chan *core.Identity
	nextSubID   int
}

var _ core.IdentityProvider = (*localProvider)(nil)

func NewLocalProvider(store docstore.Store) core.IdentityProvider {
	return &localProvider{
		store:       store,
		subscribers: make(map[int]chan *core.Identity),
	}
}

func (p *localProvider) CreateAccount(ctx context.Context, email, password string) (core.Identity, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return core.Identity{}, core.ErrInvalidEmail
	}
	if _, err := p.findByEmail(ctx, email); err == nil {
		return core.Identity{}, core.ErrEmailInUse
	} else if err != core.ErrAccountNotFound {
		return core.Identity{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.Identity{}, errors.Wrap(err, "hashing password")
	}
	acc := account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.store.Set(ctx, accountsCollection, acc.ID, acc); err != nil {
		return core.Identity{}, errors.Wrap(err, "storing account")
	}

	identity := core.Identity{ID: acc.ID, Email: acc.Email}
	// account creation signs the new account in, like hosted providers do
	p.broadcast(&identity)
	return identity, nil
}

func (p *localProvider) SignIn(ctx context.Context, email, password string) (core.Identity, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return core.Identity{}, core.ErrInvalidEmail
	}
	acc, err := p.findByEmail(ctx, email)
	if err != nil {
		return core.Identity{}, err
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return core.Identity{}, core.ErrWrongPassword
	}

	identity := core.Identity{ID: acc.ID, Email: acc.Email}
	p.broadcast(&identity)
	return identity, nil
}

func (p *localProvider) SignOut(context.Context) error {
	p.broadcast(nil)
	return nil
}

func (p *localProvider) AuthStateChanges() (<-chan *core.Identity, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSubID
	p.nextSubID++
	ch := make(chan *core.Identity, 8)
	p.subscribers[id] = ch
	// new subscribers get the current state right away, nil when signed out
	ch <- p.current

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subscribers, id)
			close(ch)
		})
	}
	return ch, unsubscribe
}

func (p *localProvider) broadcast(identity *core.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = identity
	for _, ch := range p.subscribers {
		select {
		case ch <- identity:
		default: // a stalled subscriber must not block auth
		}
	}
}

func (p *localProvider) findByEmail(ctx context.Context, email string) (account, error) {
	recs, err := p.store.Query(ctx, accountsCollection, docstore.Where("email", email))
	if err != nil {
		return account{}, errors.Wrap(err, "querying accounts")
	}
	if len(recs) == 0 {
		return account{}, core.ErrAccountNotFound
	}
	var acc account
	if err := json.Unmarshal(recs[0].Data, &acc); err != nil {
		return account{}, errors.Wrap(err, "decoding account")
	}
	return acc, nil
}
