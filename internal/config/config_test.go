package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.OrderStrictTransitions)
	assert.Equal(t, "local", cfg.InvoiceStorage)
	assert.Equal(t, 300, cfg.CatalogCacheTTLSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("ORDER_STRICT_TRANSITIONS", "false")
	t.Setenv("INVOICE_STORAGE", "s3")
	t.Setenv("S3_BUCKET", "invoices")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.OrderStrictTransitions)
	assert.Equal(t, "s3", cfg.InvoiceStorage)
	assert.Equal(t, "invoices", cfg.S3Bucket)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: " https://a.example , ,https://b.example"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestFeatureToggles(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.WhatsappEnabled())
	assert.False(t, cfg.SMTPEnabled())

	cfg.WhatsappAccountSID, cfg.WhatsappAuthToken, cfg.WhatsappFromNumber = "AC1", "tok", "+100"
	cfg.SMTPHost = "smtp.example"
	assert.True(t, cfg.WhatsappEnabled())
	assert.True(t, cfg.SMTPEnabled())
}
