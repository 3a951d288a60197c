// Package securefile reads and writes password-encrypted JSON files.
// Keys come from Argon2id, the envelope is XChaCha20-Poly1305, and writes go through a temp file and rename.
package securefile

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrInvalidPasswordOrCorrupt is returned when decryption fails. It stays generic on purpose.
var ErrInvalidPasswordOrCorrupt = errors.New("invalid password or corrupted file")

// Envelope is the on-disk JSON form: KDF settings plus the sealed payload.
type Envelope struct {
	Version int `json:"version"`

	ArgonTime    uint32 `json:"argon_time"`
	ArgonMemory  uint32 `json:"argon_memory_kib"`
	ArgonThreads uint8  `json:"argon_threads"`
	ArgonKeyLen  uint32 `json:"argon_key_len"`

	Salt       string `json:"salt_b64"`
	Nonce      string `json:"nonce_b64"`
	Ciphertext string `json:"ct_b64"`
}

var DefaultKDF = Envelope{
	Version:      1,
	ArgonTime:    2,
	ArgonMemory:  64 * 1024, // KiB
	ArgonThreads: 1,
	ArgonKeyLen:  32,
}

type Options struct {
	KDF Envelope

	FilePerm      os.FileMode
	DirectoryPerm os.FileMode

	// AAD must return identical bytes on read and write.
	AAD []byte
}

func (o Options) merged() Options {
	out := Options{KDF: DefaultKDF, FilePerm: 0o600, DirectoryPerm: 0o700}
	if o.KDF.Version != 0 {
		out.KDF = o.KDF
	}
	if o.FilePerm != 0 {
		out.FilePerm = o.FilePerm
	}
	if o.DirectoryPerm != 0 {
		out.DirectoryPerm = o.DirectoryPerm
	}
	out.AAD = o.AAD
	return out
}

// WriteEncryptedJSON marshals v, seals it under password and replaces path atomically.
func WriteEncryptedJSON[T any](path string, v T, password []byte, opt Options) error {
	o := opt.merged()
	if o.KDF.Version != 1 {
		return fmt.Errorf("unsupported kdf version: %d", o.KDF.Version)
	}
	if err := os.MkdirAll(filepath.Dir(path), o.DirectoryPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	plain, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("rand salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(deriveKey(password, salt, o.KDF))
	if err != nil {
		return fmt.Errorf("aead: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("rand nonce: %w", err)
	}

	env := o.KDF
	env.Salt = base64.StdEncoding.EncodeToString(salt)
	env.Nonce = base64.StdEncoding.EncodeToString(nonce)
	env.Ciphertext = base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plain, o.AAD))

	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return AtomicWriteFile(path, b, o.FilePerm)
}

// ReadEncryptedJSON opens the envelope at path and unmarshals the payload into T.
// A missing file surfaces as an error matching os.ErrNotExist.
func ReadEncryptedJSON[T any](path string, password []byte, opt Options) (T, error) {
	var zero T
	o := opt.merged()

	b, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read file: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return zero, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return zero, fmt.Errorf("unsupported file version: %d", env.Version)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return zero, fmt.Errorf("decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return zero, fmt.Errorf("decode nonce: %w", err)
	}
	ct, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return zero, fmt.Errorf("decode ciphertext: %w", err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(password, salt, env))
	if err != nil {
		return zero, fmt.Errorf("aead: %w", err)
	}
	plain, err := aead.Open(nil, nonce, ct, o.AAD)
	if err != nil {
		return zero, ErrInvalidPasswordOrCorrupt
	}

	var out T
	if err := json.Unmarshal(plain, &out); err != nil {
		return zero, fmt.Errorf("unmarshal json: %w", err)
	}
	return out, nil
}

func deriveKey(password, salt []byte, p Envelope) []byte {
	return argon2.IDKey(password, salt, p.ArgonTime, p.ArgonMemory, p.ArgonThreads, p.ArgonKeyLen)
}

// AtomicWriteFile writes through a temp file and a rename so readers never see a partial file.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// DefaultPath returns <UserConfigDir>/<app>/<env?>/<filename>, honoring CM_ENV for the env folder.
func DefaultPath(app, filename string) (string, error) {
	if app == "" || filename == "" {
		return "", errors.New("app and filename must not be empty")
	}
	envFolder, err := EnvFolder()
	if err != nil {
		return "", err
	}

	base := ""
	if home := os.Getenv("SNAP_REAL_HOME"); home != "" {
		base = filepath.Join(home, ".config")
	} else if dir, err := os.UserConfigDir(); err == nil {
		base = dir
	} else {
		return "", fmt.Errorf("UserConfigDir: %w", err)
	}

	dir := filepath.Join(base, app)
	if envFolder != "" {
		dir = filepath.Join(dir, envFolder)
	}
	return filepath.Join(dir, filename), nil
}

// EnvFolder maps CM_ENV to a config subfolder. Production uses none.
func EnvFolder() (string, error) {
	raw := strings.TrimSpace(os.Getenv("CM_ENV"))
	switch strings.ToLower(raw) {
	case "", "prod", "production":
		return "", nil
	case "local":
		return "local", nil
	case "dev", "develop", "development":
		return "develop", nil
	default:
		return "", fmt.Errorf("invalid CM_ENV %q (allowed: local, develop, empty)", raw)
	}
}
