package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/config"
	"github.com/dmitrijs2005/taskboard/internal/filex"
)

const tokenFileName = "token"

// readSecretFn is swapped in tests.
var readSecretFn = ReadSecret

type App struct {
	config    *config.Config
	api       *api.Client
	tokenPath string
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	dir, err := filex.EnsureHomeSubDir(config.TokenDirName)
	if err != nil {
		return nil, err
	}

	return newApp(c, filepath.Join(dir, tokenFileName), os.Stdin, os.Stdout)
}

func newApp(c *config.Config, tokenPath string, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config:    c,
		api:       api.New(c.ServerURL, c.RequestTimeout),
		tokenPath: tokenPath,
		reader:    bufio.NewReader(in),
		out:       out,
	}

	token, err := filex.ReadSecret(tokenPath)
	if err != nil {
		return nil, err
	}
	a.api.SetToken(token)

	return a, nil
}

// Run executes the command found in args. Global flags owned by the config
// package are skipped.
func (a *App) Run(ctx context.Context, args []string) error {
	cmdArgs := stripGlobalFlags(args)
	if len(cmdArgs) == 0 {
		a.printHelp()
		return nil
	}
	return a.dispatch(ctx, cmdArgs[0], cmdArgs[1:])
}

func (a *App) saveToken(token string) error {
	if err := filex.WriteSecret(a.tokenPath, []byte(token)); err != nil {
		return err
	}
	a.api.SetToken(token)
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
