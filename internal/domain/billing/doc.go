// Package billing provides domain models for counter sales and customer credit.
//
// This package implements the billing bounded context, which is responsible for:
//   - Issuing invoices for same-day counter sales (quick billing)
//   - Recording sale lines and payment legs against a business day
//   - Appending immutable ledger events for every sale and payment
//
// Key Aggregates:
//   - Invoice: A finalized bill for one customer on one business day
//   - LedgerEvent: Immutable record of a credit or debit on a customer account
//
// A customer's outstanding dues are never stored directly; they are replayed
// from the ledger event stream, which makes the ledger the single source of
// truth for credit balances.
//
// The billing domain integrates with:
//   - Day operations domain: Sales are only permitted while a day is OPEN
//   - Catalog domain: For product rates and per-customer price overrides
package billing
