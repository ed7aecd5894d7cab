package main

import (
	"log"
	"os"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	identitysvc "github.com/rohitbokare05/Project-Connect-IITR/services/identity"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/docstore"
	inmemdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/inmem"
	pgdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/pg"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/records"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	wd, err := os.Getwd()
	errAndDie(err)
	conf, err := core.NewConfig(wd)
	errAndDie(err)

	store, err := openStore(conf)
	errAndDie(err)
	defer store.Close()

	// start CLI
	cli := commandLine{
		conf:     conf,
		store:    store,
		provider: identitysvc.NewLocalProvider(store),
		users:    records.NewUserRepository(store),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func openStore(conf *core.Config) (docstore.Store, error) {
	if conf.Database.Engine == "pg" {
		return pgdb.Open(conf.Database.URL)
	}
	return inmemdb.Open(), nil
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
