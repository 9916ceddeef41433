package app

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// DefaultAuthFile holds "user:argon2id-hash" for the dataset editing routes.
const DefaultAuthFile = "auth.secret"

// authRealm is sent with 401 responses.
const authRealm = "Ferien-Checker Edit Mode"

var errHashFormat = errors.New("invalid hash format")

// argonParams are the Argon2id cost settings encoded into every hash.
type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

// OWASP recommended minimum for Argon2id
var defaultArgon = argonParams{memory: 64 * 1024, time: 1, threads: 4, keyLen: 32}

const saltLen = 16

// Credentials is the single edit mode account.
type Credentials struct {
	User string
	Hash string
}

// ParseCredentials reads the "user:hash" line of an auth file.
func ParseCredentials(line string) (*Credentials, error) {
	user, hash, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok || user == "" || hash == "" {
		return nil, errors.New("invalid auth file format (expected: username:hash)")
	}
	if _, _, _, err := decodeHash(hash); err != nil {
		return nil, fmt.Errorf("auth file: %w", err)
	}
	return &Credentials{User: user, Hash: hash}, nil
}

// LoadCredentials reads path (DefaultAuthFile if empty). A missing file yields
// nil credentials, which leaves edit mode unprotected for local development.
func LoadCredentials(path string) (*Credentials, error) {
	if path == "" {
		path = DefaultAuthFile
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Warn("NO AUTH FILE FOUND - EDIT MODE UNPROTECTED! This is for LOCAL DEVELOPMENT ONLY.")
		logging.Warn("Expected file: %s (create it with: ferien-checker hash-password)", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}
	creds, err := ParseCredentials(string(data))
	if err != nil {
		return nil, err
	}
	logging.Info("Basic Auth enabled for edit mode (user: %s, file: %s)", creds.User, path)
	return creds, nil
}

// Check compares user in constant time and verifies pass against the hash.
func (c *Credentials) Check(user, pass string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) != 1 {
		return false
	}
	ok, err := VerifyPassword(pass, c.Hash)
	if err != nil {
		logging.Error("Error verifying password: %v", err)
		return false
	}
	return ok
}

// HashPassword encodes password as $argon2id$v=19$m=..,t=..,p=..$salt$key.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	p := defaultArgon
	key := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword checks password against an encoded Argon2id hash using the
// parameters stored in the hash.
func VerifyPassword(password, encoded string) (bool, error) {
	p, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

func decodeHash(encoded string) (p argonParams, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return p, nil, nil, errHashFormat
	}
	if parts[1] != "argon2id" {
		return p, nil, nil, errors.New("not an argon2id hash")
	}
	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &threads); err != nil {
		return p, nil, nil, fmt.Errorf("failed to parse hash parameters: %w", err)
	}
	if threads == 0 || threads > 255 {
		return p, nil, nil, fmt.Errorf("%w: parallelism %d", errHashFormat, threads)
	}
	p.threads = uint8(threads)
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, nil, nil, fmt.Errorf("failed to decode hash: %w", err)
	}
	p.keyLen = uint32(len(key))
	return p, salt, key, nil
}

// requireAuth enforces Basic Auth on the editing routes. Without credentials
// (dev mode) requests pass through.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Auth == nil {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || !s.Auth.Check(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+authRealm+`"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			logging.Warn("Failed auth attempt from %s (user: %s)", r.RemoteAddr, user)
			return
		}
		next(w, r)
	}
}

// WriteCredentials stores user and the hash of password at path with mode 0400.
// An existing file is replaced.
func WriteCredentials(path, user, password string) error {
	if path == "" {
		path = DefaultAuthFile
	}
	if strings.ContainsAny(user, ":\n") {
		return errors.New("username must not contain ':' or newlines")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	// 0400 files cannot be overwritten in place
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove existing auth file: %w", err)
	}
	if err := os.WriteFile(path, []byte(user+":"+hash+"\n"), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}
