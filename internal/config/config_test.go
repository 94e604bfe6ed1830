package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 0, cfg.API.MaxResumes)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "anthropic/claude-3-haiku", cfg.AI.OpenRouterModel)
	assert.Equal(t, "microsoft/DialoGPT-medium", cfg.AI.HuggingFaceModel)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 3, cfg.Worker.MaxRetry)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.PresignTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_MAX_RESUMES", "20")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("AI_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, 20, cfg.API.MaxResumes)
	assert.Equal(t, "or-key", cfg.AI.OpenRouterKey)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
}

func TestLoad_DotEnvFillsMissingValues(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HUGGINGFACE_API_KEY=hf-from-file\nAPI_PORT=7000\n"), 0o600))

	setRequiredEnv(t)
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("API_PORT", "9100")
	// godotenv 直接写进程环境，测试结束后清理。
	t.Cleanup(func() { _ = os.Unsetenv("HUGGINGFACE_API_KEY") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hf-from-file", cfg.AI.HuggingFaceKey)
	assert.Equal(t, 9100, cfg.API.Port)
}

func TestLoad_ValidationFailure(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_MAX_RESUMES", "-1")

	_, err := Load()
	assert.EqualError(t, err, "api max resumes must not be negative")
}

func TestLoad_MissingMinIOCredentials(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("MINIO_ACCESS_KEY_ID", "")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
