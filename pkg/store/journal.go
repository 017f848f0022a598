package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/thrivesense/pkg/account"
	"tableflip.dev/thrivesense/pkg/entry"
)

// Journal stores each account's entries as one ordered list, newest first.
type Journal struct {
	s *Store
}

// List returns the account's entries, newest first. An account without a
// journal has an empty list.
func (j *Journal) List(ctx context.Context, accountID string) ([]*entry.Entry, error) {
	var entries []*entry.Entry
	if _, err := j.s.readJSON(ctx, journalKey(account.NormalizeEmail(accountID)), &entries); err != nil {
		return nil, err
	}
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

// Append prepends e and persists the whole list in one write.
func (j *Journal) Append(ctx context.Context, accountID string, e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if accountID == "" {
		return errors.New("store: account required")
	}
	current, err := j.List(ctx, accountID)
	if err != nil {
		return err
	}
	updated := make([]*entry.Entry, 0, len(current)+1)
	updated = append(updated, e)
	updated = append(updated, current...)
	if err := j.s.writeJSON(ctx, journalKey(account.NormalizeEmail(accountID)), updated); err != nil {
		return err
	}
	j.s.log.Debug("appended entry",
		zap.String("account", accountID),
		zap.String("id", e.ID),
		zap.Int("entries", len(updated)))
	return nil
}
