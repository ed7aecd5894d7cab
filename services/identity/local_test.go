package identitysvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	inmemdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/inmem"
)

func waitIdentity(t *testing.T, ch <-chan *core.Identity) *core.Identity {
	t.Helper()
	select {
	case identity := <-ch:
		return identity
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for auth state")
		return nil
	}
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider(inmemdb.Open())

	identity, err := p.CreateAccount(ctx, "rahul@iitr.ac.in", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, identity.ID)
	assert.Equal(t, "rahul@iitr.ac.in", identity.Email)

	_, err = p.CreateAccount(ctx, "rahul@iitr.ac.in", "other456")
	assert.Equal(t, core.ErrEmailInUse, err)

	_, err = p.CreateAccount(ctx, "not-an-email", "secret123")
	assert.Equal(t, core.ErrInvalidEmail, err)
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider(inmemdb.Open())

	created, err := p.CreateAccount(ctx, "rahul@iitr.ac.in", "secret123")
	require.NoError(t, err)

	identity, err := p.SignIn(ctx, "rahul@iitr.ac.in", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, identity.ID)

	_, err = p.SignIn(ctx, "rahul@iitr.ac.in", "wrong")
	assert.Equal(t, core.ErrWrongPassword, err)

	_, err = p.SignIn(ctx, "ghost@iitr.ac.in", "secret123")
	assert.Equal(t, core.ErrAccountNotFound, err)

	_, err = p.SignIn(ctx, "not-an-email", "secret123")
	assert.Equal(t, core.ErrInvalidEmail, err)
}

func TestAuthStateChanges(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider(inmemdb.Open())

	ch, unsubscribe := p.AuthStateChanges()

	// subscribing delivers the current state immediately, nil while signed out
	assert.Nil(t, waitIdentity(t, ch))

	// creation signs the account in
	created, err := p.CreateAccount(ctx, "rahul@iitr.ac.in", "secret123")
	require.NoError(t, err)
	identity := waitIdentity(t, ch)
	require.NotNil(t, identity)
	assert.Equal(t, created.ID, identity.ID)

	// a late subscriber sees the signed-in state without waiting for a change
	late, lateUnsubscribe := p.AuthStateChanges()
	lateIdentity := waitIdentity(t, late)
	require.NotNil(t, lateIdentity)
	assert.Equal(t, created.ID, lateIdentity.ID)
	lateUnsubscribe()

	require.NoError(t, p.SignOut(ctx))
	assert.Nil(t, waitIdentity(t, ch))

	// after unsubscribing the channel is closed and no longer fed
	unsubscribe()
	if _, ok := <-ch; ok {
		t.Error("expected a closed channel after unsubscribe")
	}
	unsubscribe() // safe to call twice
}
