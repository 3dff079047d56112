package platform_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/chambershq/chambers/pkg/jwtx"
	"github.com/chambershq/chambers/pkg/platformsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for platform service end-to-end
 * tests. This includes container setup, token minting, and assertions.
 */

const (
	testImageName = "chambers-platform-test:latest"

	// The container and the tests share this secret so tokens minted here
	// verify inside the service.
	tokenSecret = "e2e-platform-token-secret-0123456789"
	tokenIssuer = "chambers-platform"

	// servingDomain is the shared domain tenants get subdomains under.
	// Purely a Host-header construct; no DNS involved.
	servingDomain = "chambers.example"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Platform Service Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	// Run all tests
	exitCode := m.Run()

	// Clean up the Docker image after all tests complete
	fmt.Fprintf(os.Stdout, "Cleaning up Platform Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/chambers/Dockerfile",
		"../../../")
	cmd.Dir = "." // Ensure we're in the test directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupPlatformContainer starts the platform service in a container and
// returns the base URL.
func setupPlatformContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"CHAMBERS_ISSUER":        tokenIssuer,
			"CHAMBERS_TOKEN_SECRET":  tokenSecret,
			"CHAMBERS_DB_DRIVER":     "sqlite",
			"CHAMBERS_DATABASE_FILE": "/chambers.db",
			"CHAMBERS_DATA_DIR":      "/data/tenants",
			"ENV":                    "test",
			"LOG_LEVEL":              "info",
			"LOG_FORMAT":             "json",
			// Increase rate limits for E2E tests to prevent test failures
			// Tests often make many rapid requests which would otherwise hit the strict production limits
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
			"RATELIMIT_LENIENT_REQUESTS":  "1000",
			"RATELIMIT_LENIENT_BURST":     "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get the mapped port
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

// mintToken signs an admin token with the shared secret the container runs
// with, so the service's verifier accepts it.
func mintToken(t *testing.T, subject string, scopes ...string) string {
	t.Helper()

	signer, err := jwtx.NewHS256Signer([]byte(tokenSecret), tokenIssuer)
	require.NoError(t, err)

	claims := jwtx.NewServiceClaims(subject, scopes, time.Hour, tokenIssuer, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	return token
}

// adminClient returns a client holding a token with full platform scopes.
func adminClient(t *testing.T, baseURL string) *platformsdk.Client {
	t.Helper()
	return platformsdk.NewClient(baseURL, mintToken(t, "e2e-admin", "platform:read", "platform:write"))
}

// tenantClient returns an unauthenticated client whose requests carry the
// given Host header, the way a firm's staff would reach their workspace.
func tenantClient(baseURL, host string) *platformsdk.Client {
	c := platformsdk.NewClient(baseURL, "")
	c.Host = host
	return c
}

// createTenant registers a firm and fails the test on any error.
func createTenant(t *testing.T, admin *platformsdk.Client, req platformsdk.CreateTenantRequest) *platformsdk.TenantResponse {
	t.Helper()

	tenant, err := admin.CreateTenant(t.Context(), req)
	require.NoError(t, err, "CreateTenant should succeed")
	require.NotEmpty(t, tenant.ID, "Tenant ID should not be empty")

	return tenant
}

// assertAPIError verifies err is an *APIError with the expected status code.
func assertAPIError(t *testing.T, err error, statusCode int, context string) *platformsdk.APIError {
	t.Helper()

	require.Error(t, err, context)
	apiErr, ok := err.(*platformsdk.APIError)
	require.True(t, ok, "%s - expected *platformsdk.APIError, got %T: %v", context, err, err)
	require.Equal(t, statusCode, apiErr.StatusCode, "%s - unexpected status code", context)

	return apiErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *platformsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
