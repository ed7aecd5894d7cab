package main

import (
	"errors"

	pgdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/pg"
)

var migrateRunFunc = pgdb.RunMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.conf.Database.Engine != "pg" {
		return errors.New("migrate requires the pg database engine")
	}
	if len(args) == 0 {
		return errors.New("migrate requires a command: up, down, status...")
	}
	return migrateRunFunc(args[0], pgdb.DB(cli.store), args[1:]...)
}
