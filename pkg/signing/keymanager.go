package signing

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgchain/registry/internal/fsutil"
	"github.com/pkgchain/registry/internal/obslog"
)

// KeyManager handles Ed25519 key-pair generation, storage, and loading,
// adapted from the teacher's crypto.KeyManager to this package's
// algorithm-tagged PublicKey/PrivateKey types.
//
// Security model (unchanged from the teacher):
//   - private key stored with 0600 permissions (owner read/write only)
//   - public key stored with 0644 permissions (owner rw, others read)
//   - no key rotation
type KeyManager struct {
	keysDir    string
	privateKey PrivateKey
	publicKey  PublicKey
	loaded     bool
}

const (
	// PrivateKeyFilename is the filename for the private key.
	PrivateKeyFilename = "private.key"

	// PublicKeyFilename is the filename for the public key.
	PublicKeyFilename = "public.key"

	// PrivateKeyPerm is the file permission for the private key.
	PrivateKeyPerm = 0o600

	// PublicKeyPerm is the file permission for the public key.
	PublicKeyPerm = 0o644
)

// NewKeyManager creates a KeyManager rooted at keysDir. It does not load
// or generate keys; call EnsureKeysExist for that.
func NewKeyManager(keysDir string) (*KeyManager, error) {
	if keysDir == "" {
		return nil, fmt.Errorf("signing: keysDir must not be empty")
	}
	return &KeyManager{keysDir: filepath.Clean(keysDir)}, nil
}

// EnsureKeysExist loads the key pair from disk if present, otherwise
// generates and persists a new one.
func (km *KeyManager) EnsureKeysExist() error {
	privatePath := filepath.Join(km.keysDir, PrivateKeyFilename)
	publicPath := filepath.Join(km.keysDir, PublicKeyFilename)

	privateExists := fsutil.FileExists(privatePath)
	publicExists := fsutil.FileExists(publicPath)

	if privateExists && publicExists {
		return km.LoadKeys()
	}

	if privateExists || publicExists {
		obslog.L().Warnw("incomplete keypair found, regenerating", "keys_dir", km.keysDir)
		os.Remove(privatePath)
		os.Remove(publicPath)
	}

	return km.GenerateAndSaveKeypair()
}

// GenerateAndSaveKeypair generates a new Ed25519 key pair and persists
// it to disk as hex-encoded files.
func (km *KeyManager) GenerateAndSaveKeypair() error {
	priv, pub, err := GeneratePrivateKey()
	if err != nil {
		return err
	}

	privatePath := filepath.Join(km.keysDir, PrivateKeyFilename)
	publicPath := filepath.Join(km.keysDir, PublicKeyFilename)

	if err := fsutil.AtomicWriteFile(privatePath, []byte(hex.EncodeToString(priv.KeyBytes)), PrivateKeyPerm); err != nil {
		return fmt.Errorf("signing: failed to write private key: %w", err)
	}
	if err := fsutil.AtomicWriteFile(publicPath, []byte(hex.EncodeToString(pub.KeyBytes)), PublicKeyPerm); err != nil {
		return fmt.Errorf("signing: failed to write public key: %w", err)
	}

	km.privateKey = priv
	km.publicKey = pub
	km.loaded = true

	digest, _ := pub.Digest()
	obslog.L().Infow("generated new keypair", "keys_dir", km.keysDir, "key_id", digest.String())
	return nil
}

// LoadKeys loads an existing key pair from disk, verifying that the
// public key matches the private key.
func (km *KeyManager) LoadKeys() error {
	privatePath := filepath.Join(km.keysDir, PrivateKeyFilename)
	publicPath := filepath.Join(km.keysDir, PublicKeyFilename)

	privateHex, err := os.ReadFile(privatePath)
	if err != nil {
		return fmt.Errorf("signing: failed to read private key: %w", err)
	}
	publicHex, err := os.ReadFile(publicPath)
	if err != nil {
		return fmt.Errorf("signing: failed to read public key: %w", err)
	}

	privateBytes, err := hex.DecodeString(string(privateHex))
	if err != nil {
		return fmt.Errorf("signing: failed to decode private key: %w", err)
	}
	publicBytes, err := hex.DecodeString(string(publicHex))
	if err != nil {
		return fmt.Errorf("signing: failed to decode public key: %w", err)
	}

	pub, err := NewPublicKey(publicBytes)
	if err != nil {
		return fmt.Errorf("signing: invalid stored public key: %w", err)
	}
	priv := PrivateKey{Algorithm: Ed25519, KeyBytes: privateBytes}

	derivedPub, err := priv.PublicKey()
	if err != nil {
		return fmt.Errorf("signing: invalid stored private key: %w", err)
	}
	if derivedPub.String() != pub.String() {
		return fmt.Errorf("signing: public key does not match private key")
	}

	km.privateKey = priv
	km.publicKey = pub
	km.loaded = true
	return nil
}

// PrivateKey returns the loaded private key. Only valid once loaded.
func (km *KeyManager) PrivateKey() PrivateKey {
	return km.privateKey
}

// PublicKey returns the loaded public key. Only valid once loaded.
func (km *KeyManager) PublicKey() PublicKey {
	return km.publicKey
}

// Loaded reports whether a key pair has been loaded or generated.
func (km *KeyManager) Loaded() bool {
	return km.loaded
}

// KeysDir returns the directory where keys are stored.
func (km *KeyManager) KeysDir() string {
	return km.keysDir
}
