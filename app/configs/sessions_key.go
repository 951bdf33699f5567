package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gorilla/securecookie"
)

// The CSRF middleware takes the first 32 bytes of the auth key.
const minAuthKeyLen = 32

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(authKey) < minAuthKeyLen {
		return nil, fmt.Errorf("APP_AUTH_KEY has invalid length %d after decoding. Must be at least %d bytes", len(authKey), minAuthKeyLen)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	log.Println("✅ Session keys loaded and decoded successfully.")
	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
	}, nil
}

// LoadOrGenerateSessionKeys falls back to ephemeral keys outside production, so a fresh
// checkout can run without a .env file. Sessions do not survive a restart in that mode.
func LoadOrGenerateSessionKeys(env ENV) (*SessionKeys, error) {
	keys, err := LoadSessionKeys(env)
	if err == nil {
		return keys, nil
	}
	if env.IsProduction() {
		return nil, err
	}

	log.Printf("Warning: %v; using ephemeral session keys", err)
	return &SessionKeys{
		AuthKey: securecookie.GenerateRandomKey(64),
		EncKey:  securecookie.GenerateRandomKey(32),
	}, nil
}

func GenerateSessionKeys() (authKeyBase64, encKeyBase64 string, err error) {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return "", "", fmt.Errorf("error: could not generate authentication key")
	}

	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return "", "", fmt.Errorf("error: could not generate encryption key")
	}

	return base64.URLEncoding.EncodeToString(authKey), base64.URLEncoding.EncodeToString(encKey), nil
}

func GenerateAndPrintSessionKeys(out io.Writer, envFilePath string) error {
	fmt.Fprintln(out, "Generating new session keys...")

	authKeyBase64, encKeyBase64, err := GenerateSessionKeys()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n================================================")
	fmt.Fprintln(out, "Generated keys:")
	fmt.Fprintf(out, "APP_AUTH_KEY=%s\n", authKeyBase64)
	fmt.Fprintf(out, "APP_ENC_KEY=%s\n", encKeyBase64)
	fmt.Fprintln(out, "================================================")

	if envFilePath == "" {
		return nil
	}

	file, err := os.Create(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", envFilePath, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n", authKeyBase64, encKeyBase64); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	fmt.Fprintf(out, "\n✅ Keys have been written to '%s'.\n", envFilePath)
	fmt.Fprintln(out, "Please copy these lines from that file into your actual .env file.")
	return nil
}
