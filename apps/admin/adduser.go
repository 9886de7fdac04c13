package main

import (
	"context"
	"errors"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/core/user"
)

// addUser updates or creates a verified user.User
func (cli *commandLine) addUser(email, role, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	exists := err == nil
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return err
	}

	usr.Email = email
	usr.Role = role
	usr.IsVerified = true
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}

	if exists {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	}
	return err
}
