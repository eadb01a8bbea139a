/*
Package auth provides gw.AuthFuncs for common ways of authorizing requests to a gateway Resource.

# JWT

Service.JWT verifies HS256 tokens signed with the Service's key,
read from an "Authorization: Bearer" header or a "jwt" query param.

# Google

Service.Google verifies Google OAuth2 access tokens by fetching the account they were issued for,
allowing accounts by email address or domain.
The lookup honors the request's context, so it stops when the gateway's authorization deadline passes.

# API keys

APIKey compares the "X-Api-Key" header against a fixed set of keys.
*/
package auth
