// Package storage provides durable file-backed key-value persistence for
// agent-teams state. It is the only shared mutable state in the system:
// every CLI process coordinates with every other process exclusively
// through this layer.
//
// # Architecture
//
// Keys map to files under a base directory, with "/" in keys acting as a
// path separator. Three write primitives cover all higher-level needs:
//
//   - [Store.Write]: atomic whole-file replace via temp file + rename
//   - [Store.Append]: O_APPEND line append for JSONL logs
//   - [Store.WithLock]: a read-modify-write critical section under an
//     exclusive flock(2), for multi-step mutations (team merge, cursor
//     advance, task claim)
//
// No cross-key transactions are provided. Higher components scope each
// invariant to a single key (one team config, one member inbox, one team
// task board) so per-key atomicity is sufficient.
//
// # Thread Safety
//
// [Store] is safe for concurrent use within a process via an internal
// mutex; cross-process safety comes from flock and atomic renames.
package storage
