// Package entries persists encrypted vault entries in the local SQLite vault.
//
// Each row stores the encrypted overview (title, type, URIs) and the
// encrypted envelope, each next to its AEAD nonce, plus a soft-delete flag.
// Listings read overviews only; the envelope is loaded per entry.
//
// SQLiteRepository works over a dbx.DBTX, so the same code runs on a plain
// *sql.DB or inside dbx.WithTx when an import stores many entries at once.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return entries.NewSQLiteRepository(tx).CreateOrUpdate(ctx, e)
//	})
package entries
