/*
Package platformsdk provides a client SDK for the Chambers platform API.

# Overview

The platform API is the write side of the tenant directory: operators
register firms, change plans and domains, suspend tenants, and inspect the
tenant connection pool. This package holds the request/response types the
HTTP layer serves (so server and clients always agree on the wire shapes)
and a small client for driving the API from provisioning tools and tests.

# Authentication

Tenant administration endpoints require a bearer JWT carrying the
platform:read scope (reads) or platform:write scope (mutations):

	client := platformsdk.NewClient("https://api.chambers.example", token)

	tenant, err := client.CreateTenant(ctx, platformsdk.CreateTenantRequest{
		Name:      "Pearson Hardman",
		Subdomain: "pearson",
		Plan:      "professional",
	})

The health probes and the whoami probe need no token:

	probe := platformsdk.NewClient("https://api.chambers.example", "")
	health, err := probe.GetReadiness(ctx)

# Tenant Resolution Probes

GET /v1/whoami answers with the tenant the request resolved to, which makes
it the natural smoke test for host-based routing. Resolution reads the Host
header, so point the client at the server and override the host:

	probe := platformsdk.NewClient(serverURL, "")
	probe.Host = "pearson.chambers.example"

	who, err := probe.Whoami(ctx) // who.TenantID is pearson's ID

# Error Handling

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the wire-level error code:

	_, err := client.CreateTenant(ctx, req)
	if platformsdk.IsConflict(err) {
		// subdomain or custom domain already taken
	}
*/
package platformsdk
