package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"queuecare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("OPERATION_TIMEOUT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("DEPARTMENTS_FILE", "")
	t.Setenv("LIST_PAGE_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 0, cfg.ListPageSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, models.DefaultDepartments, cfg.Departments)
	assert.Equal(t, "queue_tickets", cfg.FeedChannel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("OPERATION_TIMEOUT", "3s")
	t.Setenv("LIST_PAGE_SIZE", "50")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("DEPARTMENTS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 50, cfg.ListPageSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_RejectsNegativePageSize(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("DEPARTMENTS_FILE", "")
	t.Setenv("LIST_PAGE_SIZE", "-5")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDepartments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "departments.yaml")
	content := `departments:
  - code: general
    name: General Practice
  - code: neurology
    name: Neurology
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	departments, err := LoadDepartments(path)
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.True(t, departments.Contains("neurology"))
	assert.False(t, departments.Contains("cardiology"))
}

func TestLoadDepartments_Invalid(t *testing.T) {
	dir := t.TempDir()

	duplicate := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(duplicate, []byte("departments:\n  - code: a\n  - code: a\n"), 0o600))
	_, err := LoadDepartments(duplicate)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("departments: []\n"), 0o600))
	_, err = LoadDepartments(empty)
	assert.Error(t, err)

	_, err = LoadDepartments(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
