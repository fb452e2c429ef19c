package pg

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx used by SubmissionStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Columns with a dedicated place in contact_submissions. Every value, these
// included, also lands in the fields JSON document.
var submissionColumns = []string{"name", "email", "phone", "message"}

const insertSubmission = `INSERT INTO contact_submissions (id, name, email, phone, message, fields)
VALUES ($1, $2, $3, $4, $5, $6)`

// SubmissionStore persists contact form submissions. It satisfies
// form.Submitter and joins a transaction stored in the context with WithTx.
type SubmissionStore struct {
	db    DBTX
	newID func() uuid.UUID
}

// NewSubmissionStore creates a store writing through db.
func NewSubmissionStore(db DBTX) *SubmissionStore {
	return &SubmissionStore{db: db, newID: uuid.New}
}

// Submit inserts one row for values.
func (s *SubmissionStore) Submit(ctx context.Context, values map[string]string) error {
	doc, err := json.Marshal(sortedValues(values))
	if err != nil {
		return errors.Join(ErrFailedToStoreSubmission, err)
	}

	args := []any{s.newID()}
	for _, col := range submissionColumns {
		args = append(args, values[col])
	}
	args = append(args, doc)

	var db DBTX = s.db
	if tx, ok := TxFromContext(ctx); ok {
		db = tx
	}
	if _, err := db.Exec(ctx, insertSubmission, args...); err != nil {
		return errors.Join(ErrFailedToStoreSubmission, err)
	}
	return nil
}

type field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedValues(values map[string]string) []field {
	out := make([]field, 0, len(values))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		out = append(out, field{Name: name, Value: values[name]})
	}
	return out
}
