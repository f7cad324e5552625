// Package cache stores raw PokeAPI response bodies with a TTL.
//
// Two backends implement Store:
//   - FileStore keeps one JSON file per entry under ~/.pokedex/cache/, named by
//     the SHA256 of the key so request URLs map to safe file names.
//   - RedisStore keeps entries in Redis under a key prefix and lets Redis expire them.
//
// PokeAPI content changes rarely and the service asks clients to cache, so the
// default TTL is one day. Callers treat every cache error as a miss.
package cache
