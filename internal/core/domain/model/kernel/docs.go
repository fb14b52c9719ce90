// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain:
//   - UUID: identity of orders, users and products
//   - GeoPoint: latitude/longitude of a shipping address
//   - Money: non-negative decimal amount used for prices
//
// All of them are immutable and validate on construction; the zero value of
// each is detectable through Validate.
package kernel
