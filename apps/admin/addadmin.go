package main

import (
	"context"
	"time"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
)

// addAdmin updates or creates an active admin account.
func (cli *commandLine) addAdmin(name, email, pwd string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	now := time.Now().UTC()

	acct, err := cli.acctRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		if err != account.ErrNotFound {
			return err
		}
		acct = account.Account{
			Name:      name,
			Email:     email,
			IsActive:  true,
			CreatedAt: now,
		}
		if err := acct.SetPassword(pwd); err != nil {
			return err
		}
		acct.UpdatedAt = now
		_, err = cli.acctRepo.CreateAccount(ctx, acct)
		return err
	}

	acct.Name = name
	acct.IsActive = true
	if err := acct.SetPassword(pwd); err != nil {
		return err
	}
	acct.UpdatedAt = now
	_, err = cli.acctRepo.UpdateAccount(ctx, acct)
	return err
}
