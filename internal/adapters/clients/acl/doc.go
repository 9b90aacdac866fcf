// Package acl is the anti-corruption layer between QuoteVault and the
// generative language API that classifies, extracts and ranks quotes.
//
// Wire types for the API stay unexported here. Every model response is
// validated against a JSON Schema before it is translated into domain
// types, and every transport or API failure is mapped onto a domain error:
//
//   - circuit open, retries exhausted, 429, 5xx → [domain.ErrUnavailable]
//   - 401, 403 → [domain.ErrUnavailable] (credentials are configuration)
//   - 400 → [domain.ErrValidation]
//   - blocked prompts, empty or schema-invalid output → [ErrInvalidOutput]
package acl
