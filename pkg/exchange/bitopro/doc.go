// Package bitopro is a client for the BitoPro spot exchange.
//
// Public market data is fetched without authentication. Account and order
// calls are signed with HMAC-SHA384 over a base64 JSON payload carrying a
// millisecond nonce, and fail with a signing error when the client was built
// without credentials. Streams are opened per channel and reconnect on their
// own until unsubscribed.
//
// BitoPro API Documentation: https://github.com/bitoex/bitopro-offical-api-docs
package bitopro
