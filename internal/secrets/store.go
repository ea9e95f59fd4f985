package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// lightweight per-user secret store (file, 0600) with AES-GCM obfuscation.
// Not a replacement for OS keychains but avoids plain-text config.

const fileName = "secrets.json"

var ErrNotFound = errors.New("secret not found")

type secretFile struct {
	Values map[string]string `json:"values"` // name -> base64(ciphertext)
}

// Store keeps the provider API key and the signed-in session token.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open uses dir, creating it with owner-only permissions.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("secrets dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

// Default opens the store under the user config dir.
func Default() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, "smartbank"))
}

func (s *Store) Put(name, value string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("secret name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, err := load(s.path)
	if err != nil {
		return err
	}
	if sf.Values == nil {
		sf.Values = map[string]string{}
	}
	ct, err := encrypt([]byte(value))
	if err != nil {
		return err
	}
	sf.Values[name] = base64.StdEncoding.EncodeToString(ct)
	return save(s.path, sf)
}

func (s *Store) Get(name string) (string, error) {
	if name = norm(name); name == "" {
		return "", fmt.Errorf("secret name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, err := load(s.path)
	if err != nil {
		return "", err
	}
	enc, ok := sf.Values[name]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", err
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

func (s *Store) Delete(name string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("secret name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, err := load(s.path)
	if err != nil {
		return err
	}
	delete(sf.Values, name)
	return save(s.path, sf)
}

// SessionKey names the session token slot for a provider.
func SessionKey(provider string) string {
	return "session:" + norm(provider)
}

// ProviderKey names the API key slot for a provider.
func ProviderKey(provider string) string {
	return "apikey:" + norm(provider)
}

func load(path string) (secretFile, error) {
	var sf secretFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return secretFile{}, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, err
	}
	return sf, nil
}

func save(path string, sf secretFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func masterKey() []byte {
	base := fmt.Sprintf("smartbank-%s-%s", runtime.GOOS, os.Getenv("USER"))
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
