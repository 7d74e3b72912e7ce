package eventlog

import "context"

// BumpSchemaVersionForTest rewrites the stored schema version so tests can
// exercise the mismatch path.
func (s *Store) BumpSchemaVersionForTest(ctx context.Context, version int) error {
	_, err := s.db.ExecContext(ctx, "UPDATE schema_version SET version = ?", version)
	return err
}
