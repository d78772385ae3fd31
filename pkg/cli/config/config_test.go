package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/cli/config"
)

func TestLoggerConfigure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		output  string
		wantErr bool
	}{
		{name: "console info to stdout", level: "info", format: "console", output: "stdout"},
		{name: "json debug to stderr", level: "debug", format: "json", output: "stderr"},
		{name: "invalid level", level: "verbose", format: "console", output: "stdout", wantErr: true},
		{name: "invalid format", level: "info", format: "xml", output: "stdout", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewLoggerForTest(tt.level, tt.format, tt.output)
			closer, err := cfg.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			closer()
		})
	}
}

func TestLoggerConfigureFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	cfg := config.NewLoggerForTest("info", "json", path)
	closer, err := cfg.Configure()
	gt.NoError(t, err).Required()
	defer closer()

	_, err = os.Stat(path)
	gt.NoError(t, err)
}

func TestGeminiConfigureDisabledWithoutProject(t *testing.T) {
	cfg := config.NewGeminiForTest("", "us-central1")

	client, err := cfg.Configure(context.Background())
	gt.NoError(t, err).Required()
	gt.B(t, client == nil).True()
}

func TestRepositoryConfigureMemory(t *testing.T) {
	cfg := config.NewRepositoryForTest("memory", "", "")

	repo, err := cfg.Configure(context.Background())
	gt.NoError(t, err).Required()
	defer func() {
		gt.NoError(t, repo.Close())
	}()

	gt.B(t, repo.Evaluation() != nil).True()
}

func TestRepositoryConfigureFirestoreRequiresProject(t *testing.T) {
	cfg := config.NewRepositoryForTest("firestore", "", "")

	_, err := cfg.Configure(context.Background())
	gt.Error(t, err)
}

func TestRepositoryConfigureRejectsUnknownBackend(t *testing.T) {
	cfg := config.NewRepositoryForTest("dynamodb", "", "")

	_, err := cfg.Configure(context.Background())
	gt.Error(t, err)
}
