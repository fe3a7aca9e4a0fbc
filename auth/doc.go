// Package auth implements the credential and session subsystem for the shop
// API: durable user records with hashed passwords, signed access/refresh
// token pairs carried in cookies, and the authentication and authorization
// gates that protect catalog routes.
//
// Session revocation:
//   - Every User carries a token_version counter (the session epoch). Refresh
//     tokens embed the epoch at issuance and are rejected once the stored
//     counter moves past it. LogoutAll bumps the counter atomically, cutting
//     every outstanding refresh token for that user in one write.
//   - Access tokens are validated statelessly (signature + expiry only) and
//     are never checked against the epoch. A global logout therefore blocks
//     new token pairs but lets already-issued access tokens run out their
//     short TTL. This is the intended contract, not an oversight.
//
// Gates:
//   - Authenticate extracts and verifies the access cookie and threads the
//     resolved claims through the request context.
//   - RequireRole and RequireOwnerOrRole compose after Authenticate and
//     short-circuit with typed failures; the first failure wins.
package auth
