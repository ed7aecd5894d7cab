package main

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
	identitysvc "github.com/rohitbokare05/Project-Connect-IITR/services/identity"
	inmemdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/inmem"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/records"
)

func setupCLI(t *testing.T, engine string) *commandLine {
	t.Helper()
	conf := &core.Config{TestMode: true}
	conf.Database.Engine = engine

	store := inmemdb.Open()
	return &commandLine{
		conf:     conf,
		store:    store,
		provider: identitysvc.NewLocalProvider(store),
		users:    records.NewUserRepository(store),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setupCLI(t, "inmem")

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"adduser", "-email", "rahul@iitr.ac.in"}, wantErr: errHelp},
		{name: "bad role", args: []string{"adduser", "-email", "rahul@iitr.ac.in", "-role", "admin"}, pwd: "secret123", wantErr: errHelp},
		{name: "invalid email", args: []string{"adduser", "-email", "lol"}, pwd: "secret123", wantErr: core.ErrInvalidEmail},
		{name: "add student", args: []string{"adduser", "-email", "rahul@iitr.ac.in"}, pwd: "secret123"},
		{name: "add faculty", args: []string{"adduser", "-email", "mehta@iitr.ac.in", "-role", "faculty"}, pwd: "secret123"},
		{name: "duplicate email", args: []string{"adduser", "-email", "rahul@iitr.ac.in"}, pwd: "secret123", wantErr: core.ErrEmailInUse},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// the faculty record got the role-appropriate defaults
	identity, err := cli.provider.SignIn(context.Background(), "mehta@iitr.ac.in", "secret123")
	if err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	usr, err := cli.users.Get(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !usr.IsFaculty() {
		t.Errorf("role = %v, want faculty", usr.Role)
	}
	if usr.Department != user.Department {
		t.Errorf("department = %q, want %q", usr.Department, user.Department)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setupCLI(t, "pg")

	var gotCommand string
	migrateRunFunc = func(command string, db *sql.DB, args ...string) error {
		gotCommand = command
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if len(tt.args) < 2 {
				if err == nil {
					t.Error("cli.run() expected an error without a subcommand")
				}
				return
			}
			if err != nil {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			if gotCommand != tt.args[1] {
				t.Errorf("command = %q, want %q", gotCommand, tt.args[1])
			}
		})
	}

	// the inmem engine refuses migrations
	cli = setupCLI(t, "inmem")
	if err := cli.run([]string{"admin", "migrate", "up"}); err == nil {
		t.Error("cli.run() expected an error on the inmem engine")
	}
}
