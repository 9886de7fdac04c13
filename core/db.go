package core

import (
	"context"
	"database/sql"
	"sync"
)

type (
	DBExecutor interface {
		Exec(query string, args ...interface{}) (sql.Result, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		Query(query string, args ...interface{}) (*sql.Rows, error)
		QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
		QueryRow(query string, args ...interface{}) *sql.Row
		QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	}

	DB interface {
		DBExecutor

		Begin() (*sql.Tx, error)
		BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error)
	}

	DBTransactor interface {
		DBExecutor

		Commit() error
		Rollback() error
	}
)

type commitHooksKey struct{}

// CommitHooks holds the callbacks registered with AfterCommit during a transaction.
type CommitHooks struct {
	mu  sync.Mutex
	fns []func()
}

// WithCommitHooks returns a copy of ctx that collects AfterCommit callbacks into the returned CommitHooks.
func WithCommitHooks(ctx context.Context) (context.Context, *CommitHooks) {
	hooks := new(CommitHooks)
	return context.WithValue(ctx, commitHooksKey{}, hooks), hooks
}

// AfterCommit defers fn until the transaction carried by ctx commits.
// Without one, fn runs right away.
func AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(commitHooksKey{}).(*CommitHooks)
	if !ok {
		fn()
		return
	}
	hooks.mu.Lock()
	hooks.fns = append(hooks.fns, fn)
	hooks.mu.Unlock()
}

// Run calls the collected callbacks in registration order and forgets them.
func (h *CommitHooks) Run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
