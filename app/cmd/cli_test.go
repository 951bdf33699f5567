package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/printcraft/storefront/app/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewCommand(configs.ENV{}, &out)

	require.NoError(t, cmd.Run(context.Background(), []string{"storefront", "catalog", "--type", "premium", "--max-price", "33"}))

	text := out.String()
	assert.Contains(t, text, "premium-navy")
	assert.Contains(t, text, "premium-forest")
	assert.NotContains(t, text, "premium-burgundy")
	assert.NotContains(t, text, "classic-white")
	assert.Contains(t, text, "$32.99")
	assert.True(t, strings.HasSuffix(text, "2 products\n"))
}

func TestCatalogCommandRejectsBadPrice(t *testing.T) {
	cmd := NewCommand(configs.ENV{}, &bytes.Buffer{})

	err := cmd.Run(context.Background(), []string{"storefront", "catalog", "--max-price", "lots"})
	assert.ErrorContains(t, err, "invalid --max-price")
}

func TestGenerateKeysCommand(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "keys.env")
	cmd := NewCommand(configs.ENV{}, &out)

	require.NoError(t, cmd.Run(context.Background(), []string{"storefront", "generate-keys", "--out", path}))

	assert.Contains(t, out.String(), "APP_AUTH_KEY=")
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "APP_ENC_KEY=")
}

func TestNewServerServesAPI(t *testing.T) {
	server, manager, err := NewServer(configs.ENV{Port: ":0", AppEnv: "development"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, manager.Len())
}

func TestNewServerRejectsShortAuthKeyInProduction(t *testing.T) {
	_, enc, err := configs.GenerateSessionKeys()
	require.NoError(t, err)
	env := configs.ENV{
		AppEnv:     "production",
		AppAuthKey: base64.URLEncoding.EncodeToString(securecookie.GenerateRandomKey(16)),
		AppEncKey:  enc,
	}

	var server *http.Server
	assert.NotPanics(t, func() { server, _, err = NewServer(env) })
	assert.Nil(t, server)
	assert.ErrorContains(t, err, "APP_AUTH_KEY has invalid length 16")
}
