// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-slice-keeper/models"
)

const (
	createUser = `INSERT INTO users (login, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, login, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, created_at
    FROM users
    WHERE login = $1;`

	saveSlice = `
		INSERT INTO slices (
			user_id,
			client_side_id,
			type,
			content,
			search_tokens,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at;`

	updateSlice = `
		UPDATE slices
		SET type = $3, content = $4, search_tokens = $5, updated_at = NOW()
		WHERE user_id = $1 AND client_side_id = $2
		RETURNING id, created_at, updated_at;`

	getAllSlices = `
		SELECT id, user_id, client_side_id, type, content, search_tokens, created_at, updated_at
		FROM slices
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;`

	// Content-only projection for key validation. No other columns: the
	// sample endpoint must never turn into a listing path.
	getContentSample = `
		SELECT content
		FROM slices
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2;`

	getAllRecords = `
		SELECT id, content
		FROM slices
		WHERE user_id = $1
		ORDER BY id;`

	countSlices = `SELECT COUNT(*) FROM slices WHERE user_id = $1;`

	stageRotation = `
		UPDATE slices
		SET pending_content = $3, pending_tokens = $4
		WHERE user_id = $1 AND id = $2;`

	countStaged = `
		SELECT COUNT(*) FROM slices
		WHERE user_id = $1 AND pending_content IS NOT NULL;`

	// The commit is the single visible state change of a rotation: one
	// statement promotes every staged value and clears staging.
	commitRotation = `
		UPDATE slices
		SET content = pending_content,
			search_tokens = pending_tokens,
			pending_content = NULL,
			pending_tokens = NULL,
			updated_at = NOW()
		WHERE user_id = $1 AND pending_content IS NOT NULL;`

	rollbackRotation = `
		UPDATE slices
		SET pending_content = NULL, pending_tokens = NULL
		WHERE user_id = $1;`
)

var sliceColumns = []string{
	"id", "user_id", "client_side_id", "type", "content",
	"search_tokens", "created_at", "updated_at",
}

// buildSearchSlicesQuery builds the SELECT for [SliceRepository.SearchSlices].
//
// Token search uses jsonb_exists_any (the function behind the `?|` operator;
// the operator itself would collide with squirrel's placeholder rewriting).
// The token list is passed as a text[] literal - tokens are fixed-alphabet
// hex, so the literal needs no quoting.
func buildSearchSlicesQuery(search models.SearchRequest) (string, []any, error) {
	builder := sq.Select(sliceColumns...).
		From("slices").
		Where(sq.Eq{"user_id": search.UserID}).
		OrderBy("created_at DESC, id DESC").
		PlaceholderFormat(sq.Dollar)

	if len(search.SearchTokens) > 0 {
		builder = builder.Where(
			sq.Expr("jsonb_exists_any(search_tokens, ?::text[])", textArrayLiteral(search.SearchTokens)),
		)
	} else if search.Query != "" {
		builder = builder.Where(sq.ILike{"content": "%" + search.Query + "%"})
	}

	if len(search.Types) > 0 {
		// squirrel expands a slice value into IN ($n,$n+1,...).
		builder = builder.Where(sq.Eq{"type": search.Types})
	}

	return builder.ToSql()
}

// buildDeleteSlicesQuery builds the DELETE for [SliceRepository.DeleteSlices].
func buildDeleteSlicesQuery(userID int64, clientSideIDs []string) (string, []any, error) {
	return sq.Delete("slices").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"client_side_id": clientSideIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// textArrayLiteral renders values as a PostgreSQL array literal, e.g.
// {a1b2,c3d4}. Callers must only pass values from a fixed safe alphabet.
func textArrayLiteral(values []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v)
	}
	b.WriteByte('}')
	return b.String()
}
