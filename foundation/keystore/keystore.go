// Package keystore implements the auth.KeyLookup interface. This implements
// an in-memory keystore for JWT support.
package keystore

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

type key struct {
	privatePEM string
	publicPEM  string
}

// KeyStore represents an in memory store implementation of the
// KeyLookup interface for use with the auth package.
type KeyStore struct {
	store map[string]key
	mu    sync.RWMutex
}

// New constructs an empty KeyStore ready for use.
func New() *KeyStore {
	return &KeyStore{
		store: make(map[string]key),
	}
}

// LoadByFileSystem loads a set of RSA PEM files rooted inside of a directory.
// The name of each PEM file will be used as the key id. The function returns
// the number of keys that were loaded.
func (ks *KeyStore) LoadByFileSystem(fsys fs.FS) (int, error) {
	fn := func(fileName string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if dirEntry.IsDir() {
			return nil
		}

		if path.Ext(fileName) != ".pem" {
			return nil
		}

		file, err := fsys.Open(fileName)
		if err != nil {
			return fmt.Errorf("opening key file: %w", err)
		}
		defer file.Close()

		pemData, err := io.ReadAll(io.LimitReader(file, 1024*1024))
		if err != nil {
			return fmt.Errorf("reading auth private key: %w", err)
		}

		kid := strings.TrimSuffix(dirEntry.Name(), ".pem")
		if err := ks.addPrivatePEM(kid, string(pemData)); err != nil {
			return fmt.Errorf("adding private key %q: %w", kid, err)
		}

		return nil
	}

	if err := fs.WalkDir(fsys, ".", fn); err != nil {
		return 0, fmt.Errorf("walking directory: %w", err)
	}

	ks.mu.RLock()
	defer ks.mu.RUnlock()

	return len(ks.store), nil
}

// PrivateKey searches the key store for a given kid and returns the
// private key in PEM format.
func (ks *KeyStore) PrivateKey(kid string) (string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	k, found := ks.store[kid]
	if !found {
		return "", fmt.Errorf("kid lookup failed: %s", kid)
	}

	return k.privatePEM, nil
}

// PublicKey searches the key store for a given kid and returns the public
// key in PEM format.
func (ks *KeyStore) PublicKey(kid string) (string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	k, found := ks.store[kid]
	if !found {
		return "", fmt.Errorf("kid lookup failed: %s", kid)
	}

	return k.publicPEM, nil
}

func (ks *KeyStore) addPrivatePEM(kid string, privatePEM string) error {
	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil {
		return fmt.Errorf("no pem block found for kid %q", kid)
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		pk, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return fmt.Errorf("parsing private key: %w", err)
		}

		var ok bool
		privateKey, ok = pk.(*rsa.PrivateKey)
		if !ok {
			return fmt.Errorf("key for kid %q is not an RSA key", kid)
		}
	}

	publicPEM, err := marshalPublicPEM(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("marshaling public key: %w", err)
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	ks.store[kid] = key{
		privatePEM: privatePEM,
		publicPEM:  publicPEM,
	}

	return nil
}

func marshalPublicPEM(publicKey *rsa.PublicKey) (string, error) {
	asn1Bytes, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("marshaling public key: %w", err)
	}

	block := pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: asn1Bytes,
	}

	var b strings.Builder
	if err := pem.Encode(&b, &block); err != nil {
		return "", fmt.Errorf("encoding to public PEM: %w", err)
	}

	return b.String(), nil
}
