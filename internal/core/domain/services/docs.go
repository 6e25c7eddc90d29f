// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the marketplace system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - SettlementEngine: the one-time ledger adjustment applied when an order
//     completes, moving funds between the store's and the courier's wallets
//   - DeliveryFee: the single definition of the effective fee, shared by the
//     escrow deposit and the settlement so both always compute the same amount
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
