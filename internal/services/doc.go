// Package services defines the [Service] interface for track metadata providers and implements it for Spotify.
//
// # Service Interface
//
// A provider exposes three operations: token acquisition, free-text track search,
// and detail lookup for a single selected result.
//
// # Spotify Implementation
//
// [SpotifyService] authenticates with the OAuth2 client-credentials grant via
// [golang.org/x/oauth2/clientcredentials]. The token is fetched once and held in
// memory; there is no refresh logic, so a long-lived service whose token expires
// will start failing with [shared.ErrNotAuthenticated].
//
// GetTrackInfo performs two dependent calls (track, then album) and denormalizes
// the result into a single [models.TrackInfo].
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called, or token rejected
//   - [shared.ErrAuthFailed] : token endpoint returned no usable access token
//   - [shared.ErrAPIRequest] : HTTP request failed or non-success status
//   - [shared.ErrTrackNotFound] : track or album ID not found
//   - [shared.ErrMalformedResponse] : undecodable body or missing fields
//   - [shared.ErrUnsupportedPrecision] : unrecognized release date precision
//
// # API Mappings
//
// Provider JSON is converted to domain types: search items become
// [models.TrackSummary] rows with 1-based positions, and the track + album pair
// becomes a [models.TrackInfo] with formatted release date and MM:SS duration.
package services
