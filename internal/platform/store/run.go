package store

import (
	"context"
	"errors"
	"hash/fnv"
)

// ErrLockHeld signals another worker holds the advisory lock for the key
var ErrLockHeld = errors.New("store: advisory lock held")

// LockKey folds a name into a pg advisory lock key. Stable across processes
// so cooperating workers contend on the same key
func LockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}

// RunExclusive executes fn inside a transaction that holds the advisory lock
// for key. The lock is try-acquired: when another transaction holds it the
// call returns ErrLockHeld without waiting, which lets overlapping sweepers
// skip work instead of piling up. The lock releases with the transaction
func RunExclusive(ctx context.Context, tx TxRunner, key int64, fn func(ctx context.Context, q RowQuerier) error) error {
	return tx.Tx(ctx, func(q RowQuerier) error {
		var got bool
		if err := q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1)`, key).Scan(&got); err != nil {
			return err
		}
		if !got {
			return ErrLockHeld
		}
		return fn(ctx, q)
	})
}
