package setup

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quantumauth-io/credential-minter/internal/securefile"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

// EnvKeyringPassword unlocks the keyring without a prompt, for headless runs.
const EnvKeyringPassword = "CM_KEYRING_PASSWORD"

var errKeyringDeclined = errors.New("keyring creation declined")

type passwordFunc func(prompt string) ([]byte, error)

type keyringOpener struct {
	path     string
	in       *bufio.Reader
	out      io.Writer
	password passwordFunc
	opt      []securefile.Options
}

func defaultKeyringOpener(in *bufio.Reader) (*keyringOpener, error) {
	path, err := securefile.DefaultPath(wallet.AppName, wallet.KeyringFile)
	if err != nil {
		return nil, err
	}
	return &keyringOpener{path: path, in: in, out: os.Stderr, password: wallet.PromptPassword}, nil
}

// open unlocks the keyring, asking before the first one is created.
func (o *keyringOpener) open() (*wallet.Keyring, error) {
	_, statErr := os.Stat(o.path)
	firstRun := errors.Is(statErr, os.ErrNotExist)
	if statErr != nil && !firstRun {
		return nil, fmt.Errorf("keyring %s: %w", o.path, statErr)
	}

	if firstRun {
		ok, err := promptYesNo(o.in, o.out, fmt.Sprintf("No keyring found at %s. Create one? [y/N]: ", o.path))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errKeyringDeclined
		}
	}

	pwd, err := o.readPassword(firstRun)
	if err != nil {
		return nil, err
	}
	defer zero(pwd)

	return wallet.OpenKeyring(o.path, pwd, o.opt...)
}

func (o *keyringOpener) readPassword(confirm bool) ([]byte, error) {
	if env := strings.TrimSpace(os.Getenv(EnvKeyringPassword)); env != "" {
		return []byte(env), nil
	}

	pwd, err := o.password("Keyring password: ")
	if err != nil {
		return nil, err
	}
	if !confirm {
		return pwd, nil
	}

	again, err := o.password("Repeat password: ")
	if err != nil {
		zero(pwd)
		return nil, err
	}
	defer zero(again)
	if !bytes.Equal(pwd, again) {
		zero(pwd)
		return nil, errors.New("passwords do not match")
	}
	return pwd, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
