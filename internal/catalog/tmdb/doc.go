// Package tmdb is the movie catalog behind the API.
//
// Client talks to TMDB v3 with an API key and an outbound rate limit. Fallback
// serves ten fixed movies when no key is configured so a fresh checkout runs
// offline. Cached puts a Redis read-through cache in front of either. New picks
// the right combination from the process configuration.
package tmdb
