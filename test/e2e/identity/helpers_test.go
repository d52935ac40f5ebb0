package identity_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helpers for identity service end-to-end tests:
 * container setup, account creation, and assertions.
 */

const (
	testImageName = "gatehouse-identity-test:latest"

	testSigningKey = "e2e-signing-key-0123456789abcdef-0123"
	testPassword   = "CorrectHorse9!"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Identity Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Identity Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/identity/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

// setupIdentityContainer starts the identity service with relaxed rate
// limits so rapid test requests don't trip the production defaults.
func setupIdentityContainer(t *testing.T) (string, func()) {
	t.Helper()

	return startContainer(t, map[string]string{
		"IDENTITY_SIGNING_KEY":   testSigningKey,
		"IDENTITY_DATABASE_FILE": "identity.db",
		"IDENTITY_PEPPER_FILE":   "pepper",
		"IDENTITY_ISSUER":        "gatehouse",
		"IDENTITY_AUDIENCE":      "gatehouse-api",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",

		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	})
}

// setupIdentityContainerWithDefaultRateLimits starts the service with
// production rate limits, for the rate limiting tests only.
func setupIdentityContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()

	return startContainer(t, map[string]string{
		"IDENTITY_SIGNING_KEY":   testSigningKey,
		"IDENTITY_DATABASE_FILE": "identity.db",
		"IDENTITY_PEPPER_FILE":   "pepper",
		"IDENTITY_ISSUER":        "gatehouse",
		"IDENTITY_AUDIENCE":      "gatehouse-api",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
	})
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerAccount creates an account and returns its first token pair.
func registerAccount(t *testing.T, client *idsdk.Client, email string) *idsdk.AuthResponse {
	t.Helper()

	pair, err := client.Register(context.Background(), email, testPassword)
	require.NoError(t, err, "Registration should succeed")
	assertAuthResponse(t, pair)

	return pair
}

// assertAuthResponse verifies a token pair has all required fields.
func assertAuthResponse(t *testing.T, pair *idsdk.AuthResponse) {
	t.Helper()
	require.NotNil(t, pair)
	require.NotEmpty(t, pair.UserID, "User ID should not be empty")
	require.NotEmpty(t, pair.AccessToken, "Access token should not be empty")
	require.NotEmpty(t, pair.RefreshToken, "Refresh token should not be empty")
}

// assertUnauthorized checks that an error indicates rejected credentials.
func assertUnauthorized(t *testing.T, err error, context string) {
	t.Helper()
	require.Error(t, err, context)
	errMsg := err.Error()
	hasUnauthorized := strings.Contains(errMsg, "401") ||
		strings.Contains(errMsg, "invalid_grant") ||
		strings.Contains(errMsg, "invalid credentials") ||
		strings.Contains(errMsg, "invalid_token")
	require.True(t, hasUnauthorized, "%s - error should indicate unauthorized access, got: %s", context, errMsg)
}
