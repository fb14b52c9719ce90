// Package services provides domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - RoleGate: the single authorization table for every order action
//   - InventoryLedger: stock reservation at order creation and its release on
//     cancellation
package services
