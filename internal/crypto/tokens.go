// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Token-scheme contract constants. Like the envelope layout, these are fixed:
// changing either one silently invalidates every previously generated token.
const (
	// bigramWindow is the substring width indexed per token.
	bigramWindow = 2

	// tokenLength is the number of hex characters kept from each keyed
	// hash. Truncation bounds what the index reveals: tokens collide
	// across bigrams, so server-side matches are a superset of true
	// matches and clients re-filter after decryption.
	tokenLength = 16

	// MinQueryLength is the shortest search query, in runes after
	// trimming, that can match anything: shorter input produces no bigram
	// and therefore no token. Callers reject shorter queries instead of
	// sending a search that cannot filter.
	MinQueryLength = bigramWindow
)

// searchTokenizer is the private implementation of [SearchTokenizer].
type searchTokenizer struct{}

// NewSearchTokenizer constructs a stateless [SearchTokenizer], safe for
// concurrent use.
func NewSearchTokenizer() SearchTokenizer {
	return &searchTokenizer{}
}

// TokensForContent implements [SearchTokenizer].
func (t *searchTokenizer) TokensForContent(text string, key KeyMaterial) []string {
	return bigramTokens(text, key)
}

// TokensForQuery implements [SearchTokenizer]. Identical to
// TokensForContent: queries and content must tokenize the same way or they
// could never intersect.
func (t *searchTokenizer) TokensForQuery(query string, key KeyMaterial) []string {
	return bigramTokens(query, key)
}

// bigramTokens slides a bigramWindow-rune window over the normalized text
// and HMAC-SHA256-hashes every window under key. Deterministic for a given
// (text, key); unrelated across different keys, which is what forces a
// full-corpus re-tokenization on key change.
func bigramTokens(text string, key KeyMaterial) []string {
	if len(key) == 0 {
		return nil
	}

	normalized := []rune(strings.ToLower(strings.TrimSpace(text)))
	if len(normalized) < bigramWindow {
		return nil
	}

	mac := hmac.New(sha256.New, key)
	seen := make(map[string]struct{}, len(normalized))
	tokens := make([]string, 0, len(normalized))

	for i := 0; i+bigramWindow <= len(normalized); i++ {
		mac.Reset()
		mac.Write([]byte(string(normalized[i : i+bigramWindow])))
		token := hex.EncodeToString(mac.Sum(nil))[:tokenLength]

		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	// Sorted so the stored set is stable regardless of bigram order.
	sort.Strings(tokens)
	return tokens
}
