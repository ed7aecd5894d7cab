// Package records adapts the generic document store to the domain repository
// contracts. One implementation serves every docstore backend.
package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/docstore"
)

const usersCollection = "users"

type userRepository struct {
	store docstore.Store
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(store docstore.Store) user.Repository {
	return &userRepository{store: store}
}

func (repo *userRepository) Create(ctx context.Context, usr user.User) error {
	// the identity provider's key is the document id
	return errors.Wrap(repo.store.Set(ctx, usersCollection, usr.ID, usr), "creating user record")
}

func (repo *userRepository) Get(ctx context.Context, id string) (user.User, error) {
	rec, err := repo.store.Get(ctx, usersCollection, id)
	if err != nil {
		if err == docstore.ErrNotFound {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user record")
	}

	var usr user.User
	if err := json.Unmarshal(rec.Data, &usr); err != nil {
		return user.User{}, errors.Wrap(err, "decoding user record")
	}
	usr.ID = rec.ID
	return usr, nil
}

func (repo *userRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	err := repo.store.Update(ctx, usersCollection, id, fields)
	if err == docstore.ErrNotFound {
		return user.ErrNotFound
	}
	return errors.Wrap(err, "updating user record")
}
