// Package stockledger reconciles warehouse inventory against open sales
// demand and incoming supply. It rebuilds, on every run, a time-phased
// projection of stock per item and reports where and when the projection
// goes negative.
//
// The core functionalities include:
//   - Bundle Expansion: decomposing "pre-installed" shipment lines into
//     their constituent component supply, using the free-text description
//     of the shipment ("PARENT, including COMP, 2x COMP...").
//   - Event Building: merging sales-order demand and expanded supply into a
//     single signed-delta event stream per item, chronologically ordered
//     with a deterministic same-day rule (inbound covers same-day outbound).
//   - Ledger Projection: seeding each item from its on-hand snapshot and
//     walking the event stream to a running projected balance, flagging
//     shortage violations and summarizing per-item readiness.
//   - Data Exchange: decoding demand/supply/stock tables from JSONL and
//     encoding the resulting ledger, summary, violation and readiness
//     tables back out in a stable, human-readable form.
//
// This package serves as the foundational logic for the `slg` command-line
// tool. It performs no I/O of its own beyond the explicit codecs: all
// projections are pure functions over in-memory tables.
package stockledger
