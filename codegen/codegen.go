// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codegen emits byte-exact pack/unpack source for a set of
// entries.MemoryFormat layouts, self-signing the output so unintended
// edits to the generated artifact can be detected.
package codegen

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gotrace/profilo/entries"
)

// Language is the target language for a Codegen. The set is closed and
// known at generate time; only LanguageGo has a concrete, compilable
// generator in this module.
type Language int

const (
	LanguageGo Language = iota + 1
	LanguageCpp
	LanguageJava
)

func (l Language) String() string {
	switch l {
	case LanguageGo:
		return "go"
	case LanguageCpp:
		return "cpp"
	case LanguageJava:
		return "java"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// ErrUnsupportedLanguage is returned by Generate for any Language other
// than LanguageGo.
var ErrUnsupportedLanguage = errors.New("codegen: unsupported target language")

// sentinelToken is the placeholder the generator replaces with a real
// digest. Built from parts so the source of this package does not itself
// trip a "signed source" scanner.
var sentinelToken = "@" + "generated SignedSource<<>>"

// signedSourcePrefix is the fixed prefix of a self-signed digest line.
const signedSourcePrefix = "@" + "generated SignedSource<<"
const signedSourceSuffix = ">>"

// Codegen emits the pack/unpack artifact for a set of entry descriptions.
type Codegen interface {
	// PreferredFilename is the suggested output filename for this
	// generator's artifact.
	PreferredFilename() string

	// Generate renders the artifact, including an embedded signed-source
	// sentinel (unsigned -- call Sign to finish the artifact).
	Generate() (string, error)
}

// Sign replaces the sentinel SignedSource placeholder in text with the
// MD5 digest of text-with-the-sentinel-masked-to-empty, producing a
// self-signed artifact. Calling Sign twice on an already-signed artifact
// first masks the existing digest back to empty, so re-signing is
// idempotent.
func Sign(text string) (string, error) {
	masked, err := maskSignedSource(text)
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(masked))
	digest := hex.EncodeToString(sum[:])
	return strings.Replace(masked, sentinelToken, signedSourcePrefix+digest+signedSourceSuffix, 1), nil
}

// Verify reports whether text carries a valid digest for its content.
func Verify(text string) (bool, error) {
	start := strings.Index(text, signedSourcePrefix)
	if start == -1 {
		return false, fmt.Errorf("codegen: no SignedSource marker found")
	}
	rest := text[start+len(signedSourcePrefix):]
	end := strings.Index(rest, signedSourceSuffix)
	if end == -1 {
		return false, fmt.Errorf("codegen: malformed SignedSource marker")
	}
	digest := rest[:end]

	masked := text[:start] + sentinelToken + rest[end+len(signedSourceSuffix):]
	sum := md5.Sum([]byte(masked))
	return digest == hex.EncodeToString(sum[:]), nil
}

// maskSignedSource replaces any existing digest with the empty sentinel,
// or leaves text untouched if it doesn't contain one yet.
func maskSignedSource(text string) (string, error) {
	start := strings.Index(text, signedSourcePrefix)
	if start == -1 {
		// No digest yet; the sentinel token must already be present
		// verbatim for Sign to have anything to replace.
		if !strings.Contains(text, sentinelToken) {
			return "", fmt.Errorf("codegen: text contains no SignedSource sentinel")
		}
		return text, nil
	}
	rest := text[start+len(signedSourcePrefix):]
	end := strings.Index(rest, signedSourceSuffix)
	if end == -1 {
		return "", fmt.Errorf("codegen: malformed SignedSource marker")
	}
	return text[:start] + sentinelToken + rest[end+len(signedSourceSuffix):], nil
}

// uniqueFormats keeps only one MemoryFormat per distinct typename, in
// first-seen order. Several entry descriptions can share one wire
// layout; each layout is emitted once.
func uniqueFormats(descs []*entries.EntryDescription) []*entries.MemoryFormat {
	seen := make(map[string]bool)
	var out []*entries.MemoryFormat
	for _, d := range descs {
		if seen[d.Format.Typename] {
			continue
		}
		seen[d.Format.Typename] = true
		out = append(out, d.Format)
	}
	return out
}
