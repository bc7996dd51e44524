// Package columntype classifies raw backend column type tags into the
// semantic categories the filter compiler dispatches on.
package columntype

import "strings"

// Category is the semantic category of a column type.
type Category string

const (
	Boolean  Category = "boolean"
	Char     Category = "char"
	DateTime Category = "datetime"
	Decimal  Category = "decimal"
	Integer  Category = "int"
	String   Category = "string"
	Unknown  Category = "unknown"
)

// IsNumeric reports whether c is Integer or Decimal.
func (c Category) IsNumeric() bool {
	return c == Integer || c == Decimal
}

// IsText reports whether c is String or Char.
func (c Category) IsText() bool {
	return c == String || c == Char
}

// categories maps every known type tag to its category.
// Category names themselves are accepted as tags.
var categories = map[string]Category{
	"boolean":           Boolean,
	"java.lang.Boolean": Boolean,

	"char":                Char,
	"java.lang.Character": Char,

	"string":           String,
	"java.lang.String": String,

	"datetime":                                    DateTime,
	"io.deephaven.db.tables.utils.DBDateTime":     DateTime,
	"io.deephaven.time.DateTime":                  DateTime,
	"com.illumon.iris.db.tables.utils.DBDateTime": DateTime,
	"java.time.Instant":                           DateTime,
	"java.time.ZonedDateTime":                     DateTime,

	"decimal":              Decimal,
	"double":               Decimal,
	"java.lang.Double":     Decimal,
	"float":                Decimal,
	"java.lang.Float":      Decimal,
	"java.math.BigDecimal": Decimal,

	"int":                  Integer,
	"java.lang.Integer":    Integer,
	"long":                 Integer,
	"java.lang.Long":       Integer,
	"short":                Integer,
	"java.lang.Short":      Integer,
	"byte":                 Integer,
	"java.lang.Byte":       Integer,
	"java.math.BigInteger": Integer,
}

// Classify returns the category of a raw type tag. Unmapped tags are Unknown.
func Classify(typeTag string) Category {
	if c, ok := categories[typeTag]; ok {
		return c
	}
	return Unknown
}

// BaseType returns the element type of an array type tag ("int[]" → "int"),
// or the tag unchanged for non-array types.
func BaseType(typeTag string) string {
	base, _, _ := strings.Cut(typeTag, "[]")
	return base
}

// IsCompatible reports whether two type tags share a category.
func IsCompatible(a, b string) bool {
	return Classify(a) == Classify(b)
}

// IsLong reports whether the tag is a 64-bit integer type that needs
// wide integer literals.
func IsLong(typeTag string) bool {
	return typeTag == "long" || typeTag == "java.lang.Long"
}

// IsBigDecimal reports whether the tag is an arbitrary precision decimal.
func IsBigDecimal(typeTag string) bool {
	return typeTag == "java.math.BigDecimal"
}

// IsBigInteger reports whether the tag is an arbitrary precision integer.
func IsBigInteger(typeTag string) bool {
	return typeTag == "java.math.BigInteger"
}
