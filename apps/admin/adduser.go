package main

import (
	"context"
	"time"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

// addUser creates the identity-provider account and its user record.
func (cli *commandLine) addUser(email, pwd string, role user.Role) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	identity, err := cli.provider.CreateAccount(ctx, email, pwd)
	if err != nil {
		return err
	}
	return cli.users.Create(ctx, user.New(identity.ID, identity.Email, role, time.Now().UTC()))
}
