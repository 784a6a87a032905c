// internals/helpers/refcode/refcode.go
package refcode

import (
	"fmt"
	"strconv"
	"strings"

	"quest4knowledge_backend/internals/apperr"
)

/* =========================================================
   Human-readable reference codes derived from numeric PKs.

   Format: PREFIX-0001. Parsing accepts the dashed form
   ("GIG-12"), the bare prefixed form ("GIG12") and a plain
   numeric id ("12"); anything else is a validation error.
========================================================= */

const (
	PrefixGig     = "GIG"
	PrefixSession = "SES"
	PrefixTutor   = "TUT"
	PrefixOnline  = "OLS"
)

func Format(prefix string, id uint) string {
	return fmt.Sprintf("%s-%04d", prefix, id)
}

func Parse(prefix, raw string) (uint, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, apperr.Validation("empty %s id", prefix)
	}

	upper := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(upper, prefix+"-"):
		s = upper[len(prefix)+1:]
	case strings.HasPrefix(upper, prefix):
		s = upper[len(prefix):]
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, apperr.Validation("invalid %s id format: %q", prefix, raw)
	}
	return uint(n), nil
}

/* =========================
   Per-entity shorthands
========================= */

func Gig(id uint) string     { return Format(PrefixGig, id) }
func Session(id uint) string { return Format(PrefixSession, id) }
func Tutor(id uint) string   { return Format(PrefixTutor, id) }
func Online(id uint) string  { return Format(PrefixOnline, id) }

func ParseGig(raw string) (uint, error)     { return Parse(PrefixGig, raw) }
func ParseSession(raw string) (uint, error) { return Parse(PrefixSession, raw) }
func ParseTutor(raw string) (uint, error)   { return Parse(PrefixTutor, raw) }
func ParseOnline(raw string) (uint, error)  { return Parse(PrefixOnline, raw) }
