// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	// Single-row state table: the client keeps exactly one session and one
	// encoded key at a time.
	createLocalState = `
		CREATE TABLE IF NOT EXISTS local_state (
			id           INTEGER PRIMARY KEY CHECK (id = 1),
			user_id      INTEGER NOT NULL DEFAULT 0,
			token        TEXT NOT NULL DEFAULT '',
			key_material TEXT NOT NULL DEFAULT '',
			saved_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`

	saveLocalSession = `
		INSERT INTO local_state (id, user_id, token, saved_at)
		VALUES (1, $1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			user_id  = excluded.user_id,
			token    = excluded.token,
			saved_at = excluded.saved_at;`

	getLocalSession = `SELECT user_id, token FROM local_state WHERE id = 1;`

	clearLocalSession = `
		UPDATE local_state
		SET user_id = 0, token = '', saved_at = CURRENT_TIMESTAMP
		WHERE id = 1;`

	saveLocalKey = `
		INSERT INTO local_state (id, key_material, saved_at)
		VALUES (1, $1, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			key_material = excluded.key_material,
			saved_at     = excluded.saved_at;`

	getLocalKey = `SELECT key_material FROM local_state WHERE id = 1;`
)
