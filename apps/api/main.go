package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/rohitbokare05/Project-Connect-IITR/apps/api/echo"
	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/auth"
	"github.com/rohitbokare05/Project-Connect-IITR/core/project"
	"github.com/rohitbokare05/Project-Connect-IITR/core/session"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
	emailsvc "github.com/rohitbokare05/Project-Connect-IITR/services/email"
	identitysvc "github.com/rohitbokare05/Project-Connect-IITR/services/identity"
	logsvc "github.com/rohitbokare05/Project-Connect-IITR/services/logger"
	fsblob "github.com/rohitbokare05/Project-Connect-IITR/storage/blob/fs"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/docstore"
	inmemdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/inmem"
	pgdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/pg"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/records"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	conf, err := core.NewConfig(wd)
	if err != nil {
		log.Fatal(err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the document store
	store, err := openStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up document store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			logger.Error("closing document store", err)
		}
	}()

	blobs, err := fsblob.Open(conf.Blob.RootDir, conf.Blob.BaseURL)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up blob store: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	provider := identitysvc.NewLocalProvider(store)
	users := records.NewUserRepository(store)
	projects := records.NewProjectRepository(store)

	authSvc := auth.NewService(provider, users, mailSvc, conf, logger)
	usrSvc := user.NewService(users, blobs, logger)
	projSvc := project.NewService(projects, users, mailSvc, logger)

	sess := session.NewManager(provider, users, logger)
	sess.Start()
	defer sess.Close()
	go logSessionChanges(sess, logger)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		AuthSvc:    authSvc,
		UserSvc:    usrSvc,
		ProjectSvc: projSvc,
		Users:      users,
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func openStore(conf *core.Config) (docstore.Store, error) {
	switch conf.Database.Engine {
	case "pg":
		store, err := pgdb.Open(conf.Database.URL)
		if err != nil {
			return nil, err
		}
		if err = pgdb.Migrate(pgdb.DB(store)); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	default:
		return inmemdb.Open(), nil
	}
}

func logSessionChanges(sess *session.Manager, logger core.Logger) {
	for state := range sess.Changes() {
		if state.Authenticated() {
			logger.Info(fmt.Sprintf("session: %s signed in as %s", state.User.Email, state.Role))
		} else {
			logger.Info("session: signed out")
		}
	}
}
