// Package tokenstore persists the bearer token issued by the game server in
// the local SQLite metadata table. The token survives restarts; absence of
// the key means the user is not logged in.
package tokenstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/aztectemple/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/aztectemple/internal/common"
	"github.com/dmitrijs2005/aztectemple/internal/dbx"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Load returns the stored token, or "" when none is stored.
func (s *Store) Load(ctx context.Context) (string, error) {
	e, _, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

// Save writes the token. Saving the token already stored keeps its original
// save time.
func (s *Store) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		cur, ok, err := repo.Get(ctx, common.TokenStorageKey)
		if err != nil {
			return err
		}
		if ok && cur.Value == token {
			return nil
		}
		return repo.Put(ctx, common.TokenStorageKey, token, s.now())
	})
}

// Delete clears every entry the client owns, the token included.
func (s *Store) Delete(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		entries, err := repo.ListPrefix(ctx, common.StoragePrefix)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		_, err = repo.Delete(ctx, keys...)
		return err
	})
}

// Info describes the stored token without contacting the server.
func (s *Store) Info(ctx context.Context) (Info, error) {
	e, ok, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenStorageKey)
	if err != nil || !ok || e.Value == "" {
		return Info{}, err
	}

	info := Inspect(e.Value, s.now())
	info.SavedAt = e.UpdatedAt
	return info, nil
}
