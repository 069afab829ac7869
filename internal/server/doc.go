// Package server implements the bookshelf HTTP API surface.
//
// Owns:
//   - Routing (exact method + path table, Not-Found fallback)
//   - Request body accumulation and form decoding
//   - JSON response emission with exact Content-Length
//   - Book and user handlers and the Store they read and write
//
// Does not own:
//   - Configuration loading (internal/config)
//   - Seed file parsing (internal/seed)
//
// Invariants:
//   - A POST handler never runs before its whole body has been read
//   - Every response goes through respondJSON or respondBytes, which write
//     headers before any body bytes and never write a body for HEAD or 204
//   - Upserts check existence and write in one Store call
package server
