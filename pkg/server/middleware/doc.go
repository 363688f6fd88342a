// Package middleware holds HTTP middleware shared by the autocrud routes.
package middleware
