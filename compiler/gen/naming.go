package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/graphforge/graphforge"
)

var (
	rules      = inflect.NewDefaultRuleset()
	titleCaser = cases.Title(language.Und, cases.NoLower)
)

// snake converts an identifier to snake_case: "UserToken" becomes
// "user_token", "HTTPLog" becomes "http_log".
func snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pascal converts a snake_case identifier to PascalCase.
func pascal(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "")
}

// camel converts a snake_case identifier to camelCase.
func camel(s string) string {
	p := pascal(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// plural returns the plural form of an identifier, used for collection
// query names ("user" becomes "users", "category" becomes "categories").
func plural(s string) string {
	return rules.Pluralize(s)
}

// EnumTypeName derives the name of the enum type generated for a field:
// the snake_case of the schema identity's last segment joined to the
// field name. Schema "accounts.User" field "status" yields "user_status".
// Two schemas whose last segments collapse to the same snake_case root
// can collide; no disambiguation is attempted.
func EnumTypeName(schemaIdentity, fieldName string) string {
	return snake(graphforge.LastSegment(schemaIdentity)) + "_" + fieldName
}

// RelationTypeName derives the target type name of an association: the
// snake_case of the related schema identity's last segment.
func RelationTypeName(relatedIdentity string) string {
	return snake(graphforge.LastSegment(relatedIdentity))
}
