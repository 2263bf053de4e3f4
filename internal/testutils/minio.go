//go:build integration

// Package testutils starts the external services used by integration tests.
package testutils

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	minioImage     = "minio/minio:latest"
	minioAccessKey = "minioadmin"
	minioSecretKey = "minioadmin"
)

// Minio is a running MinIO server reachable through the s3blob driver.
type Minio struct {
	container testcontainers.Container
	endpoint  string
}

// StartMinio starts a MinIO container and points the AWS environment
// variables at its credentials. The container is terminated when the test
// ends.
func StartMinio(t *testing.T, ctx context.Context) *Minio {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        minioImage,
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     minioAccessKey,
				"MINIO_ROOT_PASSWORD": minioSecretKey,
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/ready").WithPort("9000"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start minio container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate minio container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "9000")
	if err != nil {
		t.Fatalf("get container port: %v", err)
	}

	t.Setenv("AWS_ACCESS_KEY_ID", minioAccessKey)
	t.Setenv("AWS_SECRET_ACCESS_KEY", minioSecretKey)

	return &Minio{
		container: container,
		endpoint:  fmt.Sprintf("%s:%s", host, port.Port()),
	}
}

// CreateBucket creates name with the mc client shipped in the server image
// and returns its s3blob URL.
func (m *Minio) CreateBucket(t *testing.T, ctx context.Context, name string) string {
	t.Helper()

	script := fmt.Sprintf("mc alias set local http://127.0.0.1:9000 %s %s >/dev/null && mc mb local/%s",
		minioAccessKey, minioSecretKey, name)
	code, out, err := m.container.Exec(ctx, []string{"/bin/sh", "-c", script})
	if err != nil {
		t.Fatalf("create bucket %s: %v", name, err)
	}
	if code != 0 {
		msg, _ := io.ReadAll(out)
		t.Fatalf("create bucket %s: exit code %d: %s", name, code, msg)
	}

	return fmt.Sprintf("s3://%s?endpoint=http://%s&use_path_style=true&disable_https=true&region=us-east-1",
		name, m.endpoint)
}
