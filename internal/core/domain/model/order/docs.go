// Package order provides the Order aggregate of the fulfillment system and the
// state machine that governs it.
//
// An order is created in Processing once stock has been reserved. From there two
// authorities write its status: an admin may set any status, and the assigned
// delivery agent may move it between Prepared, Shipped and Out for Delivery.
// Delivery is finalized either by the admin directly or through the completion
// handshake, in which the agent requests completion and an admin confirms it.
//
// Key business rules:
//   - Delivered and Cancelled are terminal; nothing moves an order out of them
//   - An order is assigned to at most one delivery agent, and never reassigned
//   - Delivery notes are append-only and capped per order
//   - Only delivered orders may be deleted
//
// Every mutating method returns one of the sentinel errors declared in
// errors.go, each of which also matches its category from package errs.
package order
